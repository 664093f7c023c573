//go:build !debug

// Package debug provides assertions for internal invariants of the firmware.
// They are active when building with the debug tag and compile to nothing
// otherwise.
//
// Release firmware has nowhere to report a failed assertion, so these must
// never stand in for checks the hardware contract requires.
package debug

// Enabled reports whether assertions are compiled in. Use it to guard checks
// that are expensive to evaluate, so release builds drop them entirely.
const Enabled = false

// Assert panics with message if b is false.
func Assert(b bool, message string) {}
