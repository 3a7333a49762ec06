//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

type Node struct {
	Name     string
	Children []*Node
}

func (n *Node) Equal(other *Node) bool { return eqgen.Equal(n, other) }
func (n *Node) Hash() uint64           { return eqgen.Hash(n) }

func tree(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

func main() {
	a := tree("root", tree("a"), tree("b", tree("c")))
	b := tree("root", tree("a"), tree("b", tree("c")))
	c := tree("root", tree("a"), tree("b", tree("d")))
	d := tree("root", tree("a"), nil)

	fmt.Println(a.Equal(b), a.Equal(c), a.Equal(d), d.Equal(d))
	fmt.Println(a.Hash() == b.Hash(), a.Hash() == c.Hash())

	var none *Node
	fmt.Println(none.Equal(nil), a.Equal(nil), none.Hash())
}
