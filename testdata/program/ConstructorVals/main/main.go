//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

type Point struct {
	X, Y int
	note string `eqgen:"-"`
}

func (p Point) Equal(other any) bool { return eqgen.Equal(p, other) }
func (p Point) Hash() uint64         { return eqgen.Hash(p) }
func (p Point) String() string       { return eqgen.String(p) }

func main() {
	a := Point{X: 1, Y: 2, note: "a"}
	b := Point{X: 1, Y: 2, note: "b"}
	c := Point{X: 1, Y: 3}
	fmt.Println(a.Equal(b), a.Equal(c), a.Equal(&b), a.Equal("Point(X=1, Y=2)"))
	fmt.Println(a.Hash() == b.Hash())
	fmt.Println(a)
}
