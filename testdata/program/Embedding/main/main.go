//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

type Point struct {
	X, Y int
}

func (p Point) Equal(other any) bool    { return eqgen.Equal(p, other) }
func (p Point) CanEqual(other any) bool { return eqgen.CanEqual(p, other) }
func (p Point) Hash() uint64            { return eqgen.Hash(p) }

// ColorPoint delegates the equality of X and Y to Point.
type ColorPoint struct {
	Point
	Color string
}

func (p ColorPoint) Equal(other any) bool    { return eqgen.Equal(p, other) }
func (p ColorPoint) CanEqual(other any) bool { return eqgen.CanEqual(p, other) }
func (p ColorPoint) Hash() uint64            { return eqgen.Hash(p) }
func (p ColorPoint) String() string          { return eqgen.String(p) }

func main() {
	p := Point{1, 2}
	red := ColorPoint{Point{1, 2}, "red"}
	red2 := ColorPoint{Point{1, 2}, "red"}
	blue := ColorPoint{Point{1, 2}, "blue"}
	moved := ColorPoint{Point{2, 2}, "red"}

	fmt.Println(p.Equal(p), red.Equal(red2), red.Equal(blue), red.Equal(moved))
	fmt.Println(p.Equal(red), red.Equal(p))
	fmt.Println(red.Hash() == red2.Hash())
	fmt.Println(red)
}
