//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

type Test struct {
	A, B, C int
	D       int `eqgen:"body"`
	E       int `eqgen:"body,var"`
}

func (t Test) Equal(other any) bool { return eqgen.Equal(t, other, eqgen.AllVals()) }
func (t Test) String() string       { return eqgen.String(t) }

// Loose compares the constructor members only.
type Loose struct {
	A int
	D int `eqgen:"body"`
}

func (l Loose) Equal(other any) bool { return eqgen.Equal(l, other) }

func main() {
	fmt.Println(Test{1, 1, 2, 3, 5}.Equal(Test{1, 1, 2, 4, 5}))
	fmt.Println(Test{1, 1, 2, 3, 5}.Equal(Test{1, 1, 2, 3, 6}))
	fmt.Println(Loose{1, 2}.Equal(Loose{1, 3}))
	fmt.Println(Test{1, 1, 2, 3, 5})
}
