// Package tauj drives channel 0 of the RH850 Timer Array Unit J (TAUJ0) as an
// interval timer.
//
// The driver keeps no state of its own. Every call is a direct load or store
// on the unit's registers, so whether the channel is running or how it is
// configured is only known to the hardware. Interrupts are not handled here;
// the interrupt controller has to be configured elsewhere.
package tauj

import (
	"unsafe"

	"github.com/clktmr/rh850/cpu"
	"github.com/clktmr/rh850/debug"
)

const BaseAddr cpu.Addr = 0xffe5_0000

// TAUJ0 is the register block of the on-chip unit.
var TAUJ0 *Registers = cpu.MMIO[Registers](BaseAddr)

// Channel trigger bits of the TS0 (start) and TT0 (stop) registers. Writing a
// one triggers, reading back a one has no further effect.
type Trigger uint32

const (
	Channel0 Trigger = 1 << iota
)

// Channel mode register (CMOR0) fields.
type Mode uint32

const CKSPos = 14

const (
	MD0         Mode = 1 << 0        // operating mode, 0 selects interval timer mode
	CKS         Mode = 0x3 << CKSPos // operation clock select, 0 selects CK0
	IntervalCK0 Mode = 0             // interval timer clocked by CK0
)

// Registers is the TAUJ0 register block. The blank fields keep the
// registers at their hardware offsets and must never be accessed.
type Registers struct {
	CDR0 cpu.U32 // channel data, the reload value in interval mode
	_    [3]cpu.U32
	TO0  cpu.U32
	TS0  cpu.R32[Trigger]
	TT0  cpu.R32[Trigger]
	TOE0 cpu.U32
	TOL0 cpu.U32
	RDE0 cpu.U32
	RDM0 cpu.U32
	_    [5]cpu.U32
	CSR0 cpu.U32
	CSC0 cpu.U32 // write-only, clears CSR0 flags
	_    [14]cpu.U32

	CMOR0 cpu.R32[Mode]
	_     [15]cpu.U32

	CMUR0 cpu.U32
}

// Size of the register block in bytes.
const Size = unsafe.Sizeof(Registers{})

// Bind returns the register block located at p. It's used to run the driver
// on memory other than the on-chip unit, e.g. a mapped window of /dev/mem.
func Bind(p unsafe.Pointer) *Registers {
	debug.Assert(uintptr(p)&0x3 == 0, "tauj: unaligned register block")
	return (*Registers)(p)
}

// Register describes a named register of the block.
type Register struct {
	Name   string
	Offset uintptr
}

var layout = [...]Register{
	{"CDR0", 0x00},
	{"TO0", 0x10},
	{"TS0", 0x14},
	{"TT0", 0x18},
	{"TOE0", 0x1c},
	{"TOL0", 0x20},
	{"RDE0", 0x24},
	{"RDM0", 0x28},
	{"CSR0", 0x40},
	{"CSC0", 0x44},
	{"CMOR0", 0x80},
	{"CMUR0", 0xc0},
}

// The struct must match the hardware exactly. Each index below is zero only
// if the field sits at its documented offset, anything else fails to compile.
var (
	_ = [1]struct{}{}[Size-0xc4]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.CDR0)-0x00]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.TO0)-0x10]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.TS0)-0x14]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.TT0)-0x18]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.TOE0)-0x1c]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.TOL0)-0x20]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.RDE0)-0x24]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.RDM0)-0x28]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.CSR0)-0x40]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.CSC0)-0x44]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.CMOR0)-0x80]
	_ = [1]struct{}{}[unsafe.Offsetof(Registers{}.CMUR0)-0xc0]
)

// Layout returns the named registers ordered by offset.
func Layout() []Register {
	return layout[:]
}

// Lookup returns the register called name as a plain 32-bit register, or nil
// if the block has no such register. Padding can't be looked up.
func (r *Registers) Lookup(name string) *cpu.U32 {
	for _, reg := range layout {
		if reg.Name == name {
			return (*cpu.U32)(unsafe.Add(unsafe.Pointer(r), reg.Offset))
		}
	}
	return nil
}
