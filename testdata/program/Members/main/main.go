//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

type Test struct {
	W, X, Y, Z int
}

func (t Test) Equal(other any) bool { return eqgen.Equal(t, other, eqgen.Members(t.W, t.Z)) }
func (t Test) Hash() uint64         { return eqgen.Hash(t) }
func (t Test) String() string       { return eqgen.String(t) }

type Circle struct {
	R float64
}

func (c Circle) Area() float64 { return 3 * c.R * c.R }

func (c Circle) Equal(other any) bool { return eqgen.Equal(c, other, eqgen.Members(c.Area)) }
func (c Circle) String() string       { return eqgen.String(c, eqgen.Members(c.R, c.Area)) }

func main() {
	a := Test{1, 2, 2, 4}
	b := Test{1, 1, 2, 4}
	fmt.Println(a.Equal(b), a.Hash() == b.Hash())
	c := Test{2, 1, 2, 4}
	fmt.Println(a.Equal(c), a.Hash() == c.Hash(), a.Equal(Test{1, 2, 2, 3}))
	fmt.Println(a)

	fmt.Println(Circle{1}.Equal(Circle{-1}), Circle{1}.Equal(Circle{2}))
	fmt.Println(Circle{2})
}
