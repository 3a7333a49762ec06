// Package member models the members of a type from Eqgen's perspective and
// resolves which of them take part in generated equality, hashing, and
// formatting.
//
// The model is host-supplied: a [Type] is built once from static type
// information and never from a running value.
package member

import (
	"fmt"
	"go/token"
	"go/types"
)

// Site tells where a member is declared.
type Site uint8

const (
	// SiteConstructor members form the primary state of a type. In Go, these
	// are ordinary struct fields.
	SiteConstructor Site = iota
	// SiteBody members are declared outside the primary state, such as
	// derived fields or methods.
	SiteBody
)

func (s Site) String() string {
	switch s {
	case SiteConstructor:
		return "constructor"
	case SiteBody:
		return "body"
	}
	return fmt.Sprintf("Site(%d)", uint8(s))
}

// Kind tells the mutability of a member, or whether it is a method.
type Kind uint8

const (
	Val Kind = iota
	Var
	Lazy
	Method
)

func (k Kind) String() string {
	switch k {
	case Val:
		return "val"
	case Var:
		return "var"
	case Lazy:
		return "lazy"
	case Method:
		return "method"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Visibility of a member. Go has no protected members but other hosts do.
type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return fmt.Sprintf("Visibility(%d)", uint8(v))
}

// Member describes a named value or a method of a type.
type Member struct {
	Name       string
	Type       types.Type // field type or method result type
	Site       Site
	Kind       Kind
	Visibility Visibility

	// Arity is the number of parameters of a method. Always 0 for fields.
	Arity int

	// Trait reports that the member is declared on an open trait (an
	// interface in Go) without a concrete owner.
	Trait bool

	Pos token.Pos
}

// IsMethod reports whether the member is a method.
func (m Member) IsMethod() bool { return m.Kind == Method }

// Super is a reference to the supertype of a [Type]. In Go, this is an
// embedded struct field.
type Super struct {
	// Field is the name to access the supertype value from the type, e.g.
	// "Base" for an embedded Base field.
	Field string
	Type  types.Type

	// Equal reports that the supertype defines equality which the type's
	// equality must delegate to.
	Equal bool
	// ByPointer reports that the Equal method of the supertype is declared on
	// a pointer receiver and takes the address of the other supertype value.
	ByPointer bool
	// Hash reports that the supertype defines a hash which the type's hash
	// may fold in.
	Hash bool
}

// Type describes a type whose members take part in generation.
type Type struct {
	Name  string
	Scope string // package path

	Super   *Super
	Members []Member

	// Trait reports that the type is open: its state may be extended by
	// independent implementations.
	Trait bool

	Pos token.Pos
}

// Key returns the identity of the type in a generation session.
func (t *Type) Key() string {
	if t.Scope == "" {
		return t.Name
	}
	return t.Scope + "." + t.Name
}

// Member returns the first member with the given name.
func (t *Type) Member(name string) (Member, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Ref is a reference to a member written by the user, already resolved to a
// symbol by the host.
type Ref struct {
	Name string

	// Arity is the number of parameters when the referenced symbol is a
	// method, or -1 otherwise.
	Arity int

	// Owner is the name of the type declaring the symbol. It differs from the
	// referencing type when the symbol is promoted from an embedded field.
	Owner string

	// Expr is the source text of the reference, e.g. "p.X".
	Expr string

	Pos token.Pos
}

func (r Ref) String() string {
	if r.Expr != "" {
		return r.Expr
	}
	return r.Name
}
