//go:build eqgen

package testdata

import "github.com/sublee/eqgen"

type Inner struct{ Z int }

type Outer struct {
	Inner
	W int
}

func (o Outer) Equal(other any) bool { return eqgen.Equal(o, other, eqgen.Members(o.W, o.Z)) } // want `Z is promoted from Inner`

func (o Outer) String() string { return eqgen.String(o, eqgen.Members(o.W, o.W)) } // want `W is referenced more than once`

type Callback struct {
	ID int
	Fn func() // want `func\(\) is neither comparable nor has an Equal method`
}

func (c Callback) Equal(other any) bool { return eqgen.Equal(c, other) }

type Shape struct{ R float64 }

func (s Shape) Scale(k float64) Shape { return Shape{s.R * k} }

func (s Shape) Equal(other any) bool { return eqgen.Equal(s, other, eqgen.Members(s.Scale)) } // want `method Scale takes 1 parameters`

type Named interface{ Name() string }

type Animal struct {
	Named
	Legs int
}

func (a Animal) Equal(other any) bool { return eqgen.Equal(a, other) } // want `equality over an open type's members is unsound`

type P struct{ X int }

func (p P) Hash() uint64 { return eqgen.Hash(p) } // want `eqgen.Hash requires eqgen.Equal`
