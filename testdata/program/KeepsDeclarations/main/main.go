//go:build eqgen

package main

import (
	"fmt"
	"strings"

	"github.com/sublee/eqgen"
)

const unit = "cm"

type Size struct {
	W, H int
}

func (s Size) Equal(other Size) bool    { return eqgen.Equal(s, other) }
func (s Size) CanEqual(other Size) bool { return eqgen.CanEqual(s, other) }
func (s Size) Hash() int32              { return int32(eqgen.Hash(s)) }

// Label is not a directive. It is copied as is.
func (s Size) Label() string {
	return strings.Join([]string{fmt.Sprint(s.W), fmt.Sprint(s.H)}, "x") + unit
}

func main() {
	a, b := Size{2, 3}, Size{2, 3}
	fmt.Println(a.Equal(b), a.Equal(Size{3, 2}), a.CanEqual(b))
	fmt.Println(a.Hash() == b.Hash())
	fmt.Println(a.Label())
}
