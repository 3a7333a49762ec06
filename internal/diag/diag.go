// Package diag defines the diagnostics Eqgen reports when a generation
// request cannot be fulfilled. Each [Kind] maps to one fixed message; context
// such as the type name or the offending member reference is attached to the
// [Diagnostic] separately so that messages stay greppable.
package diag

import (
	"fmt"
	"go/token"
	"strings"
)

// Severity tells whether a diagnostic aborts the generation request.
type Severity uint8

const (
	// SevError aborts the current request. Other requests are unaffected.
	SevError Severity = iota
	// SevWarning is reported but generation proceeds.
	SevWarning
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return fmt.Sprintf("Severity(%d)", uint8(s))
}

// Kind enumerates the failures a generation request may hit.
type Kind uint8

const (
	BadCanEqualCallSite Kind = iota + 1
	BadEqualCallSite
	BadHashCallSite
	BadStringCallSite
	MissingEquals
	AmbiguousMember
	UnsupportedMember
	TraitEquality
)

var kinds = map[Kind]struct {
	name     string
	severity Severity
	message  string
}{
	BadCanEqualCallSite: {"BadCanEqualCallSite", SevError, "eqgen.CanEqual must be called by a method declared as CanEqual(other any) bool"},
	BadEqualCallSite:    {"BadEqualCallSite", SevError, "eqgen.Equal must be called by a method declared as Equal(other any) bool"},
	BadHashCallSite:     {"BadHashCallSite", SevError, "eqgen.Hash must be called by a method declared as Hash() with an integer result"},
	BadStringCallSite:   {"BadStringCallSite", SevError, "eqgen.String must be called by a method declared as String() string"},
	MissingEquals:       {"MissingEquals", SevError, "eqgen.Hash requires eqgen.Equal in the Equal method of the same type"},
	AmbiguousMember:     {"AmbiguousMember", SevError, "member reference does not resolve to exactly one member"},
	UnsupportedMember:   {"UnsupportedMember", SevError, "member cannot take part in generated equality"},
	TraitEquality:       {"TraitEquality", SevWarning, "equality over an open type's members is unsound across independent implementations"},
}

// String returns the name of the kind, e.g. "MissingEquals".
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Severity returns the fixed severity of the kind.
func (k Kind) Severity() Severity {
	return kinds[k].severity
}

// Message returns the fixed message of the kind.
func (k Kind) Message() string {
	return kinds[k].message
}

// Diagnostic is a structured generation failure. It implements error, so it
// can travel through errors.Join and be recovered by errors.As.
type Diagnostic struct {
	Kind Kind

	// Type is the name of the type being generated for.
	Type string

	// Ref is the offending member reference, if any.
	Ref string

	// Details are extra lines explaining how to fix the problem.
	Details []string

	Pos token.Pos
	End token.Pos
}

// New creates a new [Diagnostic] of the kind for the type.
func New(kind Kind, typ string, pos token.Pos) *Diagnostic {
	return &Diagnostic{Kind: kind, Type: typ, Pos: pos}
}

// WithRef sets the offending member reference and its position.
func (d *Diagnostic) WithRef(ref string, pos token.Pos) *Diagnostic {
	d.Ref = ref
	if pos.IsValid() {
		d.Pos = pos
	}
	return d
}

// Detailf appends a detail line.
func (d *Diagnostic) Detailf(format string, args ...any) *Diagnostic {
	d.Details = append(d.Details, fmt.Sprintf(format, args...))
	return d
}

// Severity is a shortcut for d.Kind.Severity().
func (d *Diagnostic) Severity() Severity {
	return d.Kind.Severity()
}

// IsWarning reports whether the diagnostic does not abort generation.
func (d *Diagnostic) IsWarning() bool {
	return d.Severity() == SevWarning
}

// Error formats the diagnostic without its position:
//
//	member reference does not resolve to exactly one member: Point.Z
//		Point has no member Z
func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Kind.Message())

	switch {
	case d.Type != "" && d.Ref != "":
		fmt.Fprintf(&b, ": %s.%s", d.Type, d.Ref)
	case d.Type != "":
		fmt.Fprintf(&b, ": %s", d.Type)
	}

	for _, line := range d.Details {
		b.WriteString("\n\t")
		b.WriteString(line)
	}
	return b.String()
}

// Is makes errors.Is match diagnostics by kind.
func (d *Diagnostic) Is(target error) bool {
	t, ok := target.(*Diagnostic)
	return ok && t.Kind == d.Kind && t.Type == "" && t.Ref == ""
}

// Sentinel diagnostics for errors.Is, e.g. errors.Is(err, diag.ErrMissingEquals).
var (
	ErrBadCanEqualCallSite = &Diagnostic{Kind: BadCanEqualCallSite}
	ErrBadEqualCallSite    = &Diagnostic{Kind: BadEqualCallSite}
	ErrBadHashCallSite     = &Diagnostic{Kind: BadHashCallSite}
	ErrBadStringCallSite   = &Diagnostic{Kind: BadStringCallSite}
	ErrMissingEquals       = &Diagnostic{Kind: MissingEquals}
	ErrAmbiguousMember     = &Diagnostic{Kind: AmbiguousMember}
	ErrUnsupportedMember   = &Diagnostic{Kind: UnsupportedMember}
	ErrTraitEquality       = &Diagnostic{Kind: TraitEquality}
)
