//go:build unix

// Package hostmem maps memory windows on a development host, so register
// blocks can be driven without the target. A window is either anonymous
// memory, a register snapshot file or a region of /dev/mem.
package hostmem

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

var ErrClosed = errors.New("hostmem: window closed")

// Window is a mapped memory region. It must be closed by its owner.
type Window struct {
	mapped []byte // whole mapping, page aligned
	off    int    // start of the window inside mapped
	size   int
}

// Anonymous maps size bytes of zeroed memory.
func Anonymous(size int) (*Window, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("hostmem: map anonymous: %w", err)
	}
	return &Window{mapped: mem, size: size}, nil
}

// Open maps size bytes at offset base of the file at path, e.g. /dev/mem with
// the physical base address of a peripheral. Regular files are grown if they
// are too short to hold the window. Stores are shared with the file.
func Open(path string, base int64, size int) (*Window, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("hostmem: open %s: %w", path, err)
	}
	// The mapping stays valid after closing fd
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("hostmem: stat %s: %w", path, err)
	}
	if st.Mode&unix.S_IFMT == unix.S_IFREG && st.Size < base+int64(size) {
		if err := unix.Ftruncate(fd, base+int64(size)); err != nil {
			return nil, fmt.Errorf("hostmem: grow %s: %w", path, err)
		}
	}

	pageSize := int64(unix.Getpagesize())
	pageBase := base &^ (pageSize - 1)
	off := int(base - pageBase)

	mem, err := unix.Mmap(fd, pageBase, off+size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("hostmem: map %s at %#x: %w", path, base, err)
	}
	return &Window{mapped: mem, off: off, size: size}, nil
}

// Bytes returns the window's memory. It's invalid after Close.
func (w *Window) Bytes() []byte {
	if w.mapped == nil {
		return nil
	}
	return w.mapped[w.off : w.off+w.size]
}

// Pointer returns the start of the window.
func (w *Window) Pointer() unsafe.Pointer {
	if w.mapped == nil {
		return nil
	}
	return unsafe.Pointer(&w.mapped[w.off])
}

// Size returns the window's size in bytes.
func (w *Window) Size() int { return w.size }

func (w *Window) Close() error {
	if w.mapped == nil {
		return ErrClosed
	}
	err := unix.Munmap(w.mapped)
	w.mapped = nil
	if err != nil {
		return fmt.Errorf("hostmem: unmap: %w", err)
	}
	return nil
}
