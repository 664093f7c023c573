package tauj_test

import (
	"testing"

	"github.com/clktmr/rh850/tauj"
)

func TestTicks(t *testing.T) {
	if tauj.TicksPerMicrosecond != 80 {
		t.Fatalf("%d ticks per microsecond at 80 MHz", tauj.TicksPerMicrosecond)
	}
	for _, us := range []uint32{0, 1, 7, 1000, 53_687_091} {
		if got := tauj.Ticks(us); got != us*80 {
			t.Errorf("Ticks(%d) = %d, expected %d", us, got, us*80)
		}
	}
}

func TestDriverOnPlainMemory(t *testing.T) {
	regs := new(tauj.Registers)
	regs.Init(250)
	regs.Start()

	if regs.CDR0.Load() != 250*80 {
		t.Errorf("CDR0 = %d", regs.CDR0.Load())
	}
	if regs.TS0.LoadBits(tauj.Channel0) == 0 {
		t.Error("start bit not set")
	}
	if regs.TT0.LoadBits(tauj.Channel0) == 0 {
		t.Error("stop bit from Init lost")
	}
}
