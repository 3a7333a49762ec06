//go:build eqgen

package testdata

import "github.com/sublee/eqgen"

type T struct{ N int }

func (t T) Equal(other int) bool { return eqgen.Equal(t, other) } // want `parameter must be T or an interface it implements`

func (t T) Same(other any) bool { return eqgen.Equal(t, other) } // want `method name is Same, not Equal`

func (t T) String(n int) string { return eqgen.String(t) } // want `String takes no parameters, not 1`

func (t T) Hash() float64 { return float64(eqgen.Hash(t)) } // want `result must be an integer`

type U struct{ N int }

func (u U) Equal(other any) bool { return eqgen.Equal(U{}, other) } // want `first argument must be the receiver u`

func (u U) CanEqual(other any) bool { return eqgen.CanEqual(u, nil) } // want `second argument must be the parameter other`

func (u U) String() string {
	s := eqgen.String(u) // want `eqgen.String must be returned directly by the only statement of the method`
	return s
}

type V struct{ N int }

func (v V) Equal(other any) bool { return eqgen.Equal(v, other, eqgen.AllVals(), eqgen.ConstructorVals()) } // want `ConstructorVals conflicts with AllVals`

func (v V) String() string { return (eqgen.String(v, eqgen.LowerNames())) } // ok
