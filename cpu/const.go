package cpu

import "unsafe"

// Frequency of the clock feeding the timer array units (PCLK). The prescaler
// is applied by the unit's CK0 clock select. Both are fixed at build time;
// selecting another clock source means rebuilding.
const (
	ClockHz   = 80_000_000
	Prescaler = 1
)

// Addr represents a physical memory address. The RH850 has no MMU, so
// physical and virtual addresses are the same.
type Addr uint32

// MMIO returns a typed pointer onto the peripheral registers at addr.
func MMIO[T any](addr Addr) *T {
	return (*T)(unsafe.Pointer(uintptr(addr)))
}
