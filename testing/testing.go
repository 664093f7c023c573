//go:build unix

// Package testing provides utilities for testing drivers off target.
package testing

import (
	"testing"

	"github.com/clktmr/rh850/hostmem"
	"github.com/clktmr/rh850/tauj"
)

// NewRegisters returns a zeroed TAUJ0 register block backed by mapped memory,
// together with the raw bytes of the block. The memory is unmapped when the
// test finishes.
func NewRegisters(tb testing.TB) (*tauj.Registers, []byte) {
	tb.Helper()

	w, err := hostmem.Anonymous(int(tauj.Size))
	if err != nil {
		tb.Fatal("map register block:", err)
	}
	tb.Cleanup(func() {
		if err := w.Close(); err != nil {
			tb.Error(err)
		}
	})
	return tauj.Bind(w.Pointer()), w.Bytes()
}
