//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

type Bag struct {
	Items []int
	Tags  map[string]bool
}

// Hash is declared before Equal. It still hashes the members Equal selects.
func (b *Bag) Hash() uint64         { return eqgen.Hash(b) }
func (b *Bag) Equal(other any) bool { return eqgen.Equal(b, other) }
func (b *Bag) String() string       { return eqgen.String(b) }

func main() {
	a := &Bag{Items: []int{1, 2}, Tags: map[string]bool{"x": true}}
	b := &Bag{Items: []int{1, 2}, Tags: map[string]bool{"x": true}}
	c := &Bag{Items: []int{2, 1}}
	var none *Bag

	fmt.Println(a.Equal(b), none.Equal(none), a.Equal(none))
	fmt.Println(a.Hash() == b.Hash(), a.Hash() == c.Hash(), none.Hash())
	fmt.Println(c)
	fmt.Println(none.String())
}
