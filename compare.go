package fixedvec

import (
	"cmp"
	"hash/maphash"
	"slices"
)

// Equal reports whether two vectors hold equal live contents in the same
// order. Capacity is not compared: vectors of different fixed capacities
// with equal live contents are equal.
func Equal[T comparable](a, b *Vector[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is Equal with elements compared through eq.
func EqualFunc[T any](a, b *Vector[T], eq func(T, T) bool) bool {
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}

// Compare orders two vectors lexicographically over their live contents,
// independent of capacity. The result follows slices.Compare semantics:
// -1, 0, or +1.
func Compare[T cmp.Ordered](a, b *Vector[T]) int {
	return slices.Compare(a.Slice(), b.Slice())
}

// CompareFunc is Compare with elements ordered through cmpFn.
func CompareFunc[T any](a, b *Vector[T], cmpFn func(T, T) int) int {
	return slices.CompareFunc(a.Slice(), b.Slice(), cmpFn)
}

// Hash returns a seed-dependent hash of the live contents. Vectors that
// are Equal produce equal hashes under the same seed regardless of their
// capacities.
func Hash[T comparable](seed maphash.Seed, v *Vector[T]) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, item := range v.Slice() {
		maphash.WriteComparable(&h, item)
	}
	return h.Sum64()
}
