// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitvec defines a bit vector type used to mark
// elements (e.g., cells visited during a locator query).
package bitvec

import (
	"iter"
	"math/bits"
	"unsafe"
)

// Uint represents the granularity of a bit vector.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// V is a growable bit vector with custom granularity.
type V[T Uint] struct {
	s   []T
	set int
}

// nbit returns the number of bits in T.
func (*V[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// Count returns the number of set bits in the vector.
func (v *V[_]) Count() int { return v.set }

// Grow resizes the vector such that it holds at least
// n bits. New bits are unset.
// It never shrinks the vector.
func (v *V[T]) Grow(n int) {
	nb := v.nbit()
	if need := (n + nb - 1) / nb; need > len(v.s) {
		v.s = append(v.s, make([]T, need-len(v.s))...)
	}
}

// Set sets a given bit.
func (v *V[T]) Set(index int) {
	n := v.nbit()
	i := index / n
	b := T(1) << (index & (n - 1))
	if v.s[i]&b == 0 {
		v.s[i] |= b
		v.set++
	}
}

// IsSet checks whether a given bit is set.
func (v *V[T]) IsSet(index int) bool {
	n := v.nbit()
	i := index / n
	b := T(1) << (index & (n - 1))
	return v.s[i]&b != 0
}

// Clear unsets every bit in the vector.
func (v *V[T]) Clear() {
	if v.set == 0 {
		return
	}
	clear(v.s)
	v.set = 0
}

// Ones returns an iterator over the indices of the set
// bits of the vector, in increasing order.
func (v *V[T]) Ones() iter.Seq[int] {
	return func(yield func(int) bool) {
		n := v.nbit()
		for i, x := range v.s {
			for x != 0 {
				b := bits.TrailingZeros64(uint64(x))
				if !yield(i*n + b) {
					return
				}
				x &^= T(1) << b
			}
		}
	}
}
