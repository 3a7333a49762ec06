package member

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/sublee/eqgen/internal/diag"
)

// ModeKind enumerates selection modes.
type ModeKind uint8

const (
	ModeConstructorVals ModeKind = iota
	ModeAllVals
	ModeExplicit
)

// Mode is a policy selecting the members that take part in generation.
type Mode struct {
	Kind ModeKind
	Refs []Ref // for ModeExplicit only
}

// ConstructorVals selects every constructor member regardless of its
// visibility or mutability.
func ConstructorVals() Mode { return Mode{Kind: ModeConstructorVals} }

// AllVals selects constructor members and immutable or lazy body members.
// Methods are never selected.
func AllVals() Mode { return Mode{Kind: ModeAllVals} }

// Explicit selects the referenced members in the order of references.
func Explicit(refs ...Ref) Mode { return Mode{Kind: ModeExplicit, Refs: refs} }

func (m Mode) String() string {
	switch m.Kind {
	case ModeConstructorVals:
		return "ConstructorVals"
	case ModeAllVals:
		return "AllVals"
	case ModeExplicit:
		refs := make([]string, len(m.Refs))
		for i, ref := range m.Refs {
			refs[i] = ref.String()
		}
		return fmt.Sprintf("Members(%s)", strings.Join(refs, ", "))
	}
	return fmt.Sprintf("Mode(%d)", uint8(m.Kind))
}

// Set is an ordered selection of members. It never changes once resolved.
type Set struct {
	mode    Mode
	members []Member
}

// Mode returns the mode which has resolved the set.
func (s *Set) Mode() Mode { return s.mode }

// Len returns the number of members.
func (s *Set) Len() int { return len(s.members) }

// All iterates the members in order.
func (s *Set) All() iter.Seq2[int, Member] { return slices.All(s.members) }

// Members returns a copy of the members in order.
func (s *Set) Members() []Member { return slices.Clone(s.members) }

// Names returns the member names in order.
func (s *Set) Names() []string {
	names := make([]string, len(s.members))
	for i, m := range s.members {
		names[i] = m.Name
	}
	return names
}

// Resolve selects the members of the type by the mode. Resolution is purely
// structural: the order of members is the declaration order for
// [ModeConstructorVals] and [ModeAllVals], and the reference order for
// [ModeExplicit].
//
// An empty set is not an error. Equality over no members holds for every pair
// of compatible values.
func Resolve(t *Type, mode Mode) (*Set, *diag.Diagnostic) {
	switch mode.Kind {
	case ModeConstructorVals:
		return resolveBy(t, mode, func(m Member) bool {
			return m.Site == SiteConstructor && !m.IsMethod()
		})

	case ModeAllVals:
		return resolveBy(t, mode, func(m Member) bool {
			if m.IsMethod() {
				return false
			}
			if m.Site == SiteConstructor {
				return true
			}
			return m.Kind == Val || m.Kind == Lazy
		})

	case ModeExplicit:
		return resolveExplicit(t, mode)
	}
	panic(fmt.Sprintf("unexpected mode: %s", mode))
}

// index groups the members by name in declaration order.
func index(members []Member, eligible func(Member) bool) *linkedhashmap.Map {
	idx := linkedhashmap.New()
	for _, m := range members {
		if !eligible(m) {
			continue
		}
		var group []Member
		if v, ok := idx.Get(m.Name); ok {
			group = v.([]Member)
		}
		idx.Put(m.Name, append(group, m))
	}
	return idx
}

func resolveBy(t *Type, mode Mode, eligible func(Member) bool) (*Set, *diag.Diagnostic) {
	idx := index(t.Members, func(m Member) bool {
		return !m.Trait && eligible(m)
	})

	members := make([]Member, 0, idx.Size())
	it := idx.Iterator()
	for it.Next() {
		group := it.Value().([]Member)
		if len(group) != 1 {
			// Duplicate names across the constructor and the body are
			// ambiguous.
			d := diag.New(diag.AmbiguousMember, t.Name, t.Pos).WithRef(group[0].Name, group[1].Pos)
			for _, m := range group {
				d.Detailf("%s %s %s", m.Site, m.Kind, m.Name)
			}
			return nil, d
		}
		members = append(members, group[0])
	}

	return &Set{mode: mode, members: members}, nil
}

func resolveExplicit(t *Type, mode Mode) (*Set, *diag.Diagnostic) {
	idx := index(t.Members, func(Member) bool { return true })
	seen := linkedhashset.New()

	members := make([]Member, 0, len(mode.Refs))
	for _, ref := range mode.Refs {
		fail := func(kind diag.Kind) *diag.Diagnostic {
			return diag.New(kind, t.Name, t.Pos).WithRef(ref.String(), ref.Pos)
		}

		if seen.Contains(ref.Name) {
			return nil, fail(diag.AmbiguousMember).Detailf("%s is referenced more than once", ref.Name)
		}
		seen.Add(ref.Name)

		var group []Member
		if v, ok := idx.Get(ref.Name); ok {
			group = v.([]Member)
		}

		switch {
		case len(group) == 0 && ref.Owner != "" && ref.Owner != t.Name:
			return nil, fail(diag.AmbiguousMember).Detailf("%s is promoted from %s; reference members declared by %s only", ref.Name, ref.Owner, t.Name)
		case len(group) == 0:
			return nil, fail(diag.AmbiguousMember).Detailf("%s has no member %s", t.Name, ref.Name)
		case len(group) > 1:
			return nil, fail(diag.AmbiguousMember).Detailf("%s has %d members named %s", t.Name, len(group), ref.Name)
		}

		m := group[0]
		if m.Trait {
			return nil, fail(diag.UnsupportedMember).Detailf("%s is declared by an open trait without a concrete owner", ref.Name)
		}
		arity := m.Arity
		if ref.Arity > arity {
			arity = ref.Arity
		}
		if m.IsMethod() && arity != 0 {
			return nil, fail(diag.UnsupportedMember).Detailf("method %s takes %d parameters; only methods without parameters can be members", ref.Name, arity)
		}

		members = append(members, m)
	}

	return &Set{mode: mode, members: members}, nil
}
