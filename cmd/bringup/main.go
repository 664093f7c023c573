// Bringup is the board bring-up firmware. It checks that startup set up
// static storage and then idles in the main loop.
//
// The TAUJ0 interval timer driver is available through package tauj but isn't
// used by the loop.
package main

import (
	"github.com/clktmr/rh850/boot"
	"github.com/clktmr/rh850/cpu"
	"github.com/clktmr/rh850/machine"
)

// Written by startup only, see package boot.
var (
	bssTestVar  uint32
	dataTestVar uint32 = boot.ExpectedData
)

func main() {
	boot.Verify(boot.Invariants{BSS: bssTestVar, Data: dataTestVar}, machine.Halt)

	var counter cpu.U32
	for {
		counter.Store(counter.Load() + 1)

		machine.Delay(10000)

		// periodic tasks go here
	}
}
