package synth

import (
	"strings"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
	"github.com/sublee/eqgen/internal/member"
	"github.com/sublee/eqgen/internal/typeinfo"
)

// memberComparer pairs a member with its natural equality.
type memberComparer struct {
	member.Member
	cmp comparer
}

// comparers finds the natural equality of each member in the set.
func comparers(t *member.Type, set *member.Set) ([]memberComparer, *diag.Diagnostic) {
	cmps := make([]memberComparer, 0, set.Len())
	for _, m := range set.All() {
		// Fields are addressable through the receiver. Method results are not.
		cmp, err := natural(typeinfo.TypeOf(m.Type), !m.IsMethod())
		if err != nil {
			return nil, diag.New(diag.UnsupportedMember, t.Name, t.Pos).
				WithRef(m.Name, m.Pos).
				Detailf("%s", err).
				Detailf(`exclude it by a struct tag eqgen:"-" or select members by eqgen.Members`)
		}
		cmps = append(cmps, memberComparer{m, cmp})
	}
	return cmps, nil
}

// Equal synthesizes the body of an Equal method. The resolved member set is
// stored in the cache for the Hash synthesis of the same type.
//
//	o, ok := other.(Point)
//	if !ok {
//		return false
//	}
//	return o.CanEqual(p) &&
//		p.X == o.X &&
//		p.Y == o.Y
//
// For a pointer receiver, nil pointers are equal to each other:
//
//	o, ok := other.(*Point)
//	if !ok || p == nil || o == nil {
//		return ok && p == o
//	}
func (s *Synthesizer) Equal(w *codefmt.Writer, req Request) (Body, []*diag.Diagnostic) {
	var ds []*diag.Diagnostic
	if d := Validate(req.Site, KindEqual); d != nil {
		return "", append(ds, d)
	}

	t := req.Type
	if t.Trait {
		ds = append(ds, diag.New(diag.TraitEquality, t.Name, req.Pos).
			Detailf("%s embeds an interface; implementations of it may not agree on this equality", t.Name))
	}

	set, d := member.Resolve(t, s.modeOf(req))
	if d != nil {
		return "", append(ds, d)
	}
	cmps, d := comparers(t, set)
	if d != nil {
		return "", append(ds, d)
	}

	bw := newBodyWriter(w)
	recv, other := req.Site.RecvName, req.Site.ParamNames[0]
	o, ok := other, ""
	if !req.Site.ParamIsRecv() {
		o, ok = bw.Name("o"), bw.Name("ok")
	}

	var terms []string
	if sup := t.Super; sup != nil && sup.Equal {
		addr := ""
		if sup.ByPointer {
			addr = "&"
		}
		terms = append(terms, bw.Sprintf("%s.%s.Equal(%s%s.%s)", recv, sup.Field, addr, o, sup.Field))
	}
	if req.CanEqual {
		terms = append(terms, bw.Sprintf("%s.CanEqual(%s)", o, recv))
	}
	for _, mc := range cmps {
		terms = append(terms, mc.cmp.writeEqual(bw.Writer, access(recv, mc.Member), access(o, mc.Member)))
	}

	switch {
	case req.Site.ParamIsRecv() && req.Site.IsPointer():
		bw.Printf("if %s == nil || %s == nil {\n", recv, o)
		bw.Printf("return %s == %s\n", recv, o)
		bw.Printf("}\n")

	case req.Site.ParamIsRecv():

	case req.Site.IsPointer():
		bw.Printf("%s, %s := %s.(%t)\n", o, ok, other, req.Site.Recv)
		bw.Printf("if !%s || %s == nil || %s == nil {\n", ok, recv, o)
		bw.Printf("return %s && %s == %s\n", ok, recv, o)
		bw.Printf("}\n")

	case len(terms) == 0:
		bw.Printf("_, %s := %s.(%t)\n", ok, other, req.Site.Recv)
		bw.Printf("return %s\n", ok)
		s.cache.Store(t, set)
		return bw.body(), ds

	default:
		bw.Printf("%s, %s := %s.(%t)\n", o, ok, other, req.Site.Recv)
		bw.Printf("if !%s {\n", ok)
		bw.Printf("return false\n")
		bw.Printf("}\n")
	}

	if len(terms) == 0 {
		// No members. All compatible values are equal.
		bw.Printf("return true\n")
	} else {
		bw.Printf("return %s\n", strings.Join(terms, " &&\n"))
	}

	s.cache.Store(t, set)
	return bw.body(), ds
}
