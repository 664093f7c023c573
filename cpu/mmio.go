// Package cpu provides the RH850 basics every driver needs: physical
// addresses, the build-time clock configuration and register cells for memory
// mapped I/O.
//
// Register cells always perform a real load or store. The compiler may not
// merge, drop or reorder them, since the peripheral can change a register's
// value on its own.
package cpu

// U32 is a 32-bit memory mapped register.
type U32 struct {
	r cell
}

func (r *U32) Store(v uint32) { r.r.Store(v) }

func (r *U32) Load() uint32 { return r.r.Load() }

func (r *U32) Addr() uintptr { return r.r.Addr() }

// R32 is a 32-bit memory mapped register holding flags of type T.
type R32[T ~uint32] struct {
	r cell
}

func (r *R32[T]) Store(v T) { r.r.Store(uint32(v)) }

func (r *R32[T]) Load() T { return T(r.r.Load()) }

func (r *R32[T]) Addr() uintptr { return r.r.Addr() }

// LoadBits returns the bits of the register selected by mask.
func (r *R32[T]) LoadBits(mask T) T {
	return r.Load() & mask
}

// SetBits sets the bits in mask with a read-modify-write, leaving all other
// bits as they are.
func (r *R32[T]) SetBits(mask T) {
	r.Store(r.Load() | mask)
}

// ClearBits clears the bits in mask with a read-modify-write.
func (r *R32[T]) ClearBits(mask T) {
	r.Store(r.Load() &^ mask)
}
