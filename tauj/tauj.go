package tauj

import "github.com/clktmr/rh850/cpu"

// TicksPerMicrosecond is the number of CK0 cycles per microsecond. Requires
// cpu.ClockHz to be a multiple of 1 MHz, otherwise the fraction is lost.
const TicksPerMicrosecond = cpu.ClockHz / cpu.Prescaler / 1_000_000

// Ticks converts an interval to the counter reload value. The multiplication
// wraps for intervals above 2^32/TicksPerMicrosecond microseconds (about 53.7
// seconds at 80 MHz).
func Ticks(intervalUS uint32) uint32 {
	return intervalUS * TicksPerMicrosecond
}

// Init stops channel 0, sets it to interval timer mode clocked by CK0 and
// loads the interval. The channel is left stopped.
func (r *Registers) Init(intervalUS uint32) {
	r.TT0.SetBits(Channel0)
	r.CMOR0.Store(IntervalCK0)
	r.SetInterval(intervalUS)
}

// SetInterval loads the reload value for an interval of intervalUS
// microseconds.
func (r *Registers) SetInterval(intervalUS uint32) {
	r.CDR0.Store(Ticks(intervalUS))
}

// Start starts channel 0. Starting an unconfigured channel is up to the
// hardware.
func (r *Registers) Start() {
	r.TS0.SetBits(Channel0)
}

// Stop stops channel 0. Stopping a stopped channel has no effect.
func (r *Registers) Stop() {
	r.TT0.SetBits(Channel0)
}

// Init initializes channel 0 of TAUJ0, see [Registers.Init].
func Init(intervalUS uint32) { TAUJ0.Init(intervalUS) }

// SetInterval sets the interval of TAUJ0 channel 0.
func SetInterval(intervalUS uint32) { TAUJ0.SetInterval(intervalUS) }

// Start starts TAUJ0 channel 0.
func Start() { TAUJ0.Start() }

// Stop stops TAUJ0 channel 0.
func Stop() { TAUJ0.Stop() }
