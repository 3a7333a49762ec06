//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

type User struct {
	ID       int
	HTTPAddr string
}

func (u User) String() string { return eqgen.String(u, eqgen.LowerNames()) }

type Pair struct {
	Left, Right string
}

func (p *Pair) String() string { return eqgen.String(p, eqgen.Members(p.Right)) }

type Empty struct{}

func (e Empty) String() string { return eqgen.String(e) }

func main() {
	fmt.Println(User{ID: 1, HTTPAddr: ":80"})
	fmt.Println(&Pair{"a", "b"})

	var none *Pair
	fmt.Println(none.String())
	fmt.Println(Empty{})
}
