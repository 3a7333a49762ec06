package synth

import (
	"go/types"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
	"github.com/sublee/eqgen/pkg/eqgenhash"
)

// Hash synthesizes the body of a Hash method over the member set resolved by
// the Equal synthesis of the same type. Equal values always have the same
// hash.
//
//	h := uint64(0x9c3e3a2d5f1b7e44) // seed of example.com/shapes.Point
//	h = eqgenhash.Mix(h, eqgenhash.Int(p.X))
//	h = eqgenhash.Mix(h, eqgenhash.Int(p.Y))
//	return eqgenhash.Finish(h, 2)
//
// The seed is computed at generation time from the type identity. Members
// with an Equal method but without a Hash method are not hashed.
func (s *Synthesizer) Hash(w *codefmt.Writer, req Request) (Body, []*diag.Diagnostic) {
	if d := Validate(req.Site, KindHash); d != nil {
		return "", []*diag.Diagnostic{d}
	}

	t := req.Type
	set, ok := s.cache.Load(t)
	if !ok {
		d := diag.New(diag.MissingEquals, t.Name, req.Pos).
			Detailf("declare Equal with eqgen.Equal for %s, for example:", t.Name).
			Detailf("func %s Equal(other any) bool { return eqgen.Equal(%s, other) }", req.Site.recvString(), req.Site.RecvName)
		return "", []*diag.Diagnostic{d}
	}

	// Equal has already succeeded with the same set.
	cmps, d := comparers(t, set)
	if d != nil {
		return "", []*diag.Diagnostic{d}
	}

	bw := newBodyWriter(w)
	recv := req.Site.RecvName
	eqgenhashName := bw.Import(eqgenhashPath, "")

	if req.Site.IsPointer() {
		bw.Printf("if %s == nil {\n", recv)
		bw.Printf("return 0\n")
		bw.Printf("}\n")
	}

	h := bw.Name("h")
	bw.Printf("%s := uint64(0x%016x) // seed of %s\n", h, eqgenhash.Seed(t.Key()), t.Key())

	n := 0
	mix := func(expr string) {
		bw.Printf("%s = %s.Mix(%s, %s)\n", h, eqgenhashName, h, expr)
		n++
	}

	if sup := t.Super; sup != nil && sup.Hash {
		mix(bw.Sprintf("uint64(%s.%s.Hash())", recv, sup.Field))
	}
	for _, mc := range cmps {
		if expr := mc.cmp.writeHash(bw.Writer, access(recv, mc.Member)); expr != "" {
			mix(expr)
		}
	}

	result := req.Site.Results[0]
	if types.Identical(result, types.Typ[types.Uint64]) {
		bw.Printf("return %s.Finish(%s, %d)\n", eqgenhashName, h, n)
	} else {
		bw.Printf("return %t(%s.Finish(%s, %d))\n", result, eqgenhashName, h, n)
	}
	return bw.body(), nil
}
