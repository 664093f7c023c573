// Package machine provides the processor level primitives the firmware needs
// before any driver is usable.
package machine

import "github.com/clktmr/rh850/cpu"

// Halt stops the program for good by spinning forever. It's the only way to
// report a fatal condition before any output is available: a debugger or
// watchdog sees the core stuck at this loop.
//
//go:nosplit
func Halt() {
	for {
	}
}

// Delay busy waits by counting to count. It consumes some time for any
// count > 0 but isn't calibrated, so it must not be used for timing.
//
//go:nosplit
func Delay(count uint32) {
	var i cpu.U32
	for i.Store(0); i.Load() < count; i.Store(i.Load() + 1) {
	}
}
