// Package boot checks that startup set up static storage before any other
// code relies on it.
//
// The startup code clears zero-initialized storage (.bss) and copies the
// initial values of initialized storage (.data) from flash. The self-test
// can't repair either. It only observes the result and refuses to continue if
// the execution environment can't be trusted.
package boot

import "errors"

// ExpectedData is the value the initialized test variable is declared with.
const ExpectedData = 0x12345678

var (
	ErrBSSNotCleared      = errors.New("boot: zero-initialized storage not cleared")
	ErrDataNotInitialized = errors.New("boot: initialized storage doesn't hold its initial value")
)

// Invariants holds the test variables as startup left them. It's captured
// once, before anything else could write them.
type Invariants struct {
	BSS  uint32 // must read zero
	Data uint32 // must read ExpectedData
}

// Check returns the first violated invariant, checking .bss before .data.
func Check(inv Invariants) error {
	if inv.BSS != 0 {
		return ErrBSSNotCleared
	}
	if inv.Data != ExpectedData {
		return ErrDataNotInitialized
	}
	return nil
}

// Verify returns only if all invariants hold. Otherwise halt is called, which
// must not return. If it does anyway, it's called again, so Verify never
// returns after a failed check.
func Verify(inv Invariants, halt func()) {
	if Check(inv) == nil {
		return
	}
	for {
		halt()
	}
}
