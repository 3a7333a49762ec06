//go:build eqgen

package main

import "github.com/sublee/eqgen"

type Point struct{ X, Y int }

func (p Point) Hash() uint64 { return eqgen.Hash(p) }

type Vec struct{ X, Y float64 }

// Equal is written by hand. Hash cannot follow it.
func (v Vec) Equal(other any) bool {
	o, ok := other.(Vec)
	return ok && v == o
}

func (v Vec) Hash() uint64 { return eqgen.Hash(v) }

func main() {}
