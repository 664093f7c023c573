//go:build debug

package debug

// Enabled reports whether assertions are compiled in. Use it to guard checks
// that are expensive to evaluate, so release builds drop them entirely.
const Enabled = true

func Assert(b bool, message string) {
	if !b {
		panic(message)
	}
}
