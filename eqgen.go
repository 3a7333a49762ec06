// Package eqgen provides directives for generating Equal, Hash, CanEqual, and
// String methods.
//
// Hand-written equality drifts. A field added to a struct but forgotten in
// Equal silently breaks maps, sets, and tests. A Hash that disagrees with Equal
// breaks them louder. Eqgen derives all of them from the declared members of
// a type at generation time, so they stay consistent by construction.
//
// To start with Eqgen, add a build constraint to files containing Eqgen
// directives:
//
//	//go:build eqgen
//
// Then write methods whose bodies return a directive:
//
//	// source:
//	type Point struct{ X, Y int }
//
//	func (p Point) Equal(other any) bool { return eqgen.Equal(p, other) }
//	func (p Point) Hash() uint64         { return eqgen.Hash(p) }
//	func (p Point) String() string       { return eqgen.String(p) }
//
//	// generated: (simplified)
//	func (p Point) Equal(other any) bool {
//		o, ok := other.(Point)
//		if !ok {
//			return false
//		}
//		return p.X == o.X &&
//			p.Y == o.Y
//	}
//	func (p Point) Hash() uint64 {
//		h := uint64(0x53a4c6a9b1ce3f0d) // seed of example.com/shapes.Point
//		h = eqgenhash.Mix(h, eqgenhash.Int(p.X))
//		h = eqgenhash.Mix(h, eqgenhash.Int(p.Y))
//		return eqgenhash.Finish(h, 2)
//	}
//	func (p Point) String() string {
//		return fmt.Sprintf("Point(X=%v, Y=%v)", p.X, p.Y)
//	}
//
// After declaring methods, run the eqgen command. It will generate eqgen_gen.go
// for your package:
//
//	go run github.com/sublee/eqgen/cmd/eqgen
//
// # Members
//
// The fields of a struct are its constructor members. A struct tag changes how
// a field takes part:
//
//	type Account struct {
//		ID      int
//		Owner   string
//		Balance int    `eqgen:"var"`       // mutable
//		Cache   []byte `eqgen:"-"`         // never compared
//		Digest  string `eqgen:"body,lazy"` // derived, compared by AllVals
//	}
//
// Methods without parameters are body members. They are compared only when
// selected by [Members].
//
// By default, [Equal] compares the constructor members ([ConstructorVals]).
// [AllVals] adds immutable and lazy body members. [Members] selects members
// explicitly:
//
//	func (a Account) Equal(other any) bool {
//		return eqgen.Equal(a, other, eqgen.Members(a.ID, a.Owner))
//	}
//
// [Hash] always hashes the members selected by [Equal] of the same type. So
// equal values have the same hash regardless of the selection. Hash without
// Equal is an error.
//
// # Embedding
//
// The first embedded struct that has an Equal method is the supertype. Equal
// delegates to it before comparing the own members, and Hash folds its hash
// in. When a type declares CanEqual, Equal also asks the other value whether
// it can be equal to the receiver:
//
//	func (p ColorPoint) Equal(other any) bool    { return eqgen.Equal(p, other) }
//	func (p ColorPoint) CanEqual(other any) bool { return eqgen.CanEqual(p, other) }
//
// A struct embedding an interface is open: independent implementations of the
// interface may disagree on the equality. Eqgen warns about it but still
// generates the methods.
package eqgen

type (
	canUseFor interface{ canUseFor() }
	yes       interface{ canUseFor }
	no        interface{ canUseFor }

	// option for [Equal]
	equalOption interface{ equalOption() yes }

	// option for [String]
	stringOption interface{ stringOption() yes }
)

// Option is a configuration for a directive. There are two kinds of
// directives accepting options:
//
//  1. [Equal] accepts member selection options.
//  2. [String] accepts member selection and formatting options.
//
// The type parameters of [Option] indicate which directives the option can be
// applied to. For example, Option[no, yes] can be applied to [String] but not
// to [Equal].
type Option[Equal, String canUseFor] interface {
	equalOption() Equal
	stringOption() String
}

// Equal generates the body of an Equal method. It must be the only statement
// of the method, returned directly:
//
//	func (p Point) Equal(other any) bool { return eqgen.Equal(p, other) }
//
// The first argument is the receiver and the second argument is the
// parameter. The parameter type is an interface the receiver type implements,
// or the receiver type itself.
//
// The generated code returns true if the other value has exactly the same type
// and all of the selected members are equal. Members are compared by their own
// Equal methods if they have one, by == if they are comparable, or by
// slices.Equal and maps.Equal. For a pointer receiver, two nil pointers are
// equal.
//
// At most one of [ConstructorVals], [AllVals], and [Members] can be given.
func Equal(recv, other any, opts ...equalOption) bool {
	panic("eqgen: not generated")
}

// CanEqual generates the body of a CanEqual method, which reports whether the
// other value has exactly the same type as the receiver:
//
//	func (p *Point) CanEqual(other any) bool { return eqgen.CanEqual(p, other) }
//
// When a type declares CanEqual, the generated Equal of the type calls it on
// the other value.
func CanEqual(recv, other any) bool {
	panic("eqgen: not generated")
}

// Hash generates the body of a Hash method. It hashes the members selected by
// [Equal] of the same type, so the type must have an Equal method generated by
// Eqgen as well:
//
//	func (p Point) Hash() uint64 { return eqgen.Hash(p) }
//
// The result may be converted to any integer type:
//
//	func (p Point) Hash() uint32 { return uint32(eqgen.Hash(p)) }
//
// Members with an Equal method but without a Hash method are not hashed.
func Hash(recv any) uint64 {
	panic("eqgen: not generated")
}

// String generates the body of a String method:
//
//	func (p Point) String() string { return eqgen.String(p) }
//
//	// Point{1, 2}.String() == "Point(X=1, Y=2)"
//
// Without a member selection option, it formats the members selected by
// [Equal] of the same type.
func String(recv any, opts ...stringOption) string {
	panic("eqgen: not generated")
}

// ConstructorVals selects every field that is not in the body. Mutable fields
// are selected too. This is the default.
//
// Accepted by [Equal] and [String].
func ConstructorVals() Option[yes, yes] {
	panic("eqgen: not generated")
}

// AllVals selects every field including immutable and lazy body fields.
// Mutable body fields and methods are not selected.
//
//	type Test struct {
//		A, B, C int
//		D       int `eqgen:"body"`
//	}
//
//	func (t Test) Equal(other any) bool {
//		return eqgen.Equal(t, other, eqgen.AllVals())
//	}
//
// Accepted by [Equal] and [String].
func AllVals() Option[yes, yes] {
	panic("eqgen: not generated")
}

// Member is a reference to a field or a method of the receiver, e.g. p.X or
// p.Area.
type Member = any

// Members selects members explicitly in the given order. Each member must be
// a field or a method without parameters declared by the receiver type:
//
//	func (p Point) Equal(other any) bool {
//		return eqgen.Equal(p, other, eqgen.Members(p.X, p.Norm))
//	}
//
// Promoted fields and methods cannot be selected. A member cannot be selected
// twice.
//
// Accepted by [Equal] and [String].
func Members(members ...Member) Option[yes, yes] {
	panic("eqgen: not generated")
}

// LowerNames renders member names in lowerCamelCase:
//
//	func (u User) String() string {
//		return eqgen.String(u, eqgen.LowerNames())
//	}
//
//	// User{ID: 1, HTTPAddr: ":80"}.String() == "User(id=1, httpAddr=:80)"
//
// Accepted by [String] only.
func LowerNames() Option[no, yes] {
	panic("eqgen: not generated")
}
