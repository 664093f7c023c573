//go:build unix

package hostmem_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/clktmr/rh850/hostmem"
)

func TestAnonymous(t *testing.T) {
	w, err := hostmem.Anonymous(0xc4)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	mem := w.Bytes()
	if len(mem) != 0xc4 || w.Size() != 0xc4 {
		t.Fatalf("window size %d, expected %d", len(mem), 0xc4)
	}
	if !bytes.Equal(mem, make([]byte, len(mem))) {
		t.Fatal("anonymous window not zeroed")
	}
	mem[0x80] = 0xa5
	if *(*byte)(w.Pointer()) != 0 || w.Bytes()[0x80] != 0xa5 {
		t.Fatal("window not writable")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// Unaligned base to exercise the page offset
	const base = 0x1010
	w, err := hostmem.Open(path, base, 8)
	if err != nil {
		t.Fatal(err)
	}
	copy(w.Bytes(), "register")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != base+8 {
		t.Fatalf("file size %d, expected %d", len(data), base+8)
	}
	if got := string(data[base:]); got != "register" {
		t.Fatalf("got %q at base", got)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := hostmem.Open(filepath.Join(t.TempDir(), "missing"), 0, 4)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestClose(t *testing.T) {
	w, err := hostmem.Anonymous(16)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); !errors.Is(err, hostmem.ErrClosed) {
		t.Fatalf("second close: expected ErrClosed, got %v", err)
	}
	if w.Bytes() != nil || w.Pointer() != nil {
		t.Fatal("closed window still exposes memory")
	}
}
