//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

// Base compares through a pointer receiver. Its Equal asserts *Base.
type Base struct {
	ID int
}

func (b *Base) Equal(other any) bool { return eqgen.Equal(b, other) }
func (b *Base) Hash() uint64         { return eqgen.Hash(b) }

type Derived struct {
	Base
	Name string
}

func (d Derived) Equal(other any) bool { return eqgen.Equal(d, other) }
func (d Derived) Hash() uint64         { return eqgen.Hash(d) }

type Holder struct {
	B     Base
	Items []Base
}

func (h Holder) Equal(other any) bool { return eqgen.Equal(h, other) }
func (h Holder) Hash() uint64         { return eqgen.Hash(h) }

func main() {
	d1 := Derived{Base{1}, "a"}
	d2 := Derived{Base{1}, "a"}
	d3 := Derived{Base{2}, "a"}
	fmt.Println(d1.Equal(d2), d1.Equal(d1), d1.Equal(d3))
	fmt.Println(d1.Hash() == d2.Hash())

	h1 := Holder{Base{1}, []Base{{2}, {3}}}
	h2 := Holder{Base{1}, []Base{{2}, {3}}}
	h3 := Holder{Base{1}, []Base{{2}, {4}}}
	fmt.Println(h1.Equal(h1), h1.Equal(h2), h1.Equal(h3))
	fmt.Println(h1.Hash() == h2.Hash())
}
