//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

type Event struct {
	Kind    string
	Payload any
}

func (e Event) Equal(other any) bool { return eqgen.Equal(e, other) }
func (e Event) Hash() uint64         { return eqgen.Hash(e) }

func main() {
	a := Event{"click", 1}
	b := Event{"click", 1}
	c := Event{"click", "1"}
	none := Event{"click", nil}
	fmt.Println(a.Equal(b), a.Equal(c), none.Equal(Event{Kind: "click"}), a.Equal(none))
	fmt.Println(a.Hash() == b.Hash(), none.Hash() == Event{Kind: "click"}.Hash())

	// Like ==, payloads of a non-comparable type panic.
	defer func() { fmt.Println(recover()) }()
	Event{"keys", []int{1}}.Equal(Event{"keys", []int{1}})
}
