//go:build eqgen

package testdata

import "github.com/sublee/eqgen"

type T struct{ N int }

var opt = eqgen.AllVals() // want `eqgen.AllVals can only be an argument of a directive`

var _ = eqgen.Hash(T{}) // want `eqgen.Hash is not called by a method`

func equal(a, b T) bool {
	return eqgen.Equal(a, b) // want `eqgen.Equal is not called by a method`
}

func (t T) Equal(other any) bool { return eqgen.Equal(t, other, opt) } // want `options must be written in place`
