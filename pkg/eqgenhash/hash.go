// Package eqgenhash provides hash functions for code generated by Eqgen.
//
// Generated Hash methods start from a per-type [Seed], fold each member hash
// into the accumulator with [Mix] in declaration order, and close with
// [Finish]:
//
//	func (p Point) Hash() uint64 {
//		h := uint64(0x5bd1e9955bd1e995) // eqgenhash.Seed("example.com/shapes.Point")
//		h = eqgenhash.Mix(h, eqgenhash.Int(p.X))
//		h = eqgenhash.Mix(h, eqgenhash.Int(p.Y))
//		return eqgenhash.Finish(h, 2)
//	}
//
// Every function here agrees with the equality Eqgen generates: values equal
// by ==, slices.Equal, or maps.Equal always have the same hash.
package eqgenhash

import (
	"hash/maphash"
	"math"
	"math/bits"
)

// Murmur3 128-bit constants.
const (
	c1 = 0x87c37b91114253d5
	c2 = 0x4cf5ad432745937f
)

// Seed returns the initial accumulator for the type identified by name,
// usually "pkgpath.TypeName". Different types get different seeds so that
// equal member values of different types do not collide.
func Seed(name string) uint64 {
	return String(name)
}

// Mix folds k into the accumulator h. The result depends on the order of
// mixed values.
func Mix(h, k uint64) uint64 {
	k *= c1
	k = bits.RotateLeft64(k, 31)
	k *= c2

	h ^= k
	h = bits.RotateLeft64(h, 27)
	return h*5 + 0x52dce729
}

// Finish avalanches the accumulator. n is the number of mixed values.
func Finish(h uint64, n int) uint64 {
	h ^= uint64(n)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// Int hashes a signed integer.
func Int[T ~int | ~int8 | ~int16 | ~int32 | ~int64](v T) uint64 {
	return uint64(int64(v))
}

// Uint hashes an unsigned integer.
func Uint[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr](v T) uint64 {
	return uint64(v)
}

// Float hashes a floating-point number. +0 and -0 hash the same because they
// are equal by ==.
func Float[T ~float32 | ~float64](v T) uint64 {
	f := float64(v)
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// Complex hashes a complex number.
func Complex[T ~complex64 | ~complex128](v T) uint64 {
	c := complex128(v)
	return Mix(Float(real(c)), Float(imag(c)))
}

// Bool hashes a boolean.
func Bool[T ~bool](v T) uint64 {
	if v {
		return 1
	}
	return 0
}

// String hashes a string. Unlike [Comparable], the result is stable across
// processes.
func String[T ~string](v T) uint64 {
	s := string(v)
	h := uint64(len(s))

	i := 0
	for ; i+8 <= len(s); i += 8 {
		k := uint64(s[i]) |
			uint64(s[i+1])<<8 |
			uint64(s[i+2])<<16 |
			uint64(s[i+3])<<24 |
			uint64(s[i+4])<<32 |
			uint64(s[i+5])<<40 |
			uint64(s[i+6])<<48 |
			uint64(s[i+7])<<56
		h = Mix(h, k)
	}

	var tail uint64
	for j := len(s) - 1; j >= i; j-- {
		tail = tail<<8 | uint64(s[j])
	}
	h = Mix(h, tail)

	return Finish(h, len(s))
}

// seed is shared by all Comparable hashes in the process.
var seed = maphash.MakeSeed()

// Comparable hashes any comparable value such as a pointer, a channel, an
// interface, or a struct. The result is consistent with == within a process
// but differs across processes.
func Comparable[T comparable](v T) uint64 {
	return maphash.Comparable(seed, v)
}

// Slice hashes a slice by hashing its elements in order. A nil slice and an
// empty slice hash the same.
func Slice[S ~[]E, E any](s S, hash func(E) uint64) uint64 {
	h := uint64(len(s))
	for _, e := range s {
		h = Mix(h, hash(e))
	}
	return Finish(h, len(s))
}

// Map hashes a map regardless of its iteration order. A nil map and an empty
// map hash the same.
func Map[M ~map[K]V, K comparable, V any](m M, hash func(V) uint64) uint64 {
	var sum uint64
	for k, v := range m {
		sum += Finish(Mix(Comparable(k), hash(v)), 2)
	}
	return Finish(sum, len(m))
}
