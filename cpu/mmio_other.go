//go:build !rh850

package cpu

import (
	"sync/atomic"
	"unsafe"
)

// Off target the registers are backed by ordinary memory, e.g. a mapped
// window of /dev/mem or a test buffer. Atomic loads and stores give the same
// guarantees as the target's MMIO accessors.
type cell struct {
	v atomic.Uint32
}

func (c *cell) Store(v uint32) { c.v.Store(v) }

func (c *cell) Load() uint32 { return c.v.Load() }

func (c *cell) Addr() uintptr { return uintptr(unsafe.Pointer(c)) }
