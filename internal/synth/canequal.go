package synth

import (
	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
)

// CanEqual synthesizes the body of a CanEqual method. It checks the exact
// type of the other value without looking at members:
//
//	_, ok := other.(*Point)
//	return ok
func (s *Synthesizer) CanEqual(w *codefmt.Writer, req Request) (Body, []*diag.Diagnostic) {
	if d := Validate(req.Site, KindCanEqual); d != nil {
		return "", []*diag.Diagnostic{d}
	}

	bw := newBodyWriter(w)
	if req.Site.ParamIsRecv() {
		// The parameter type already guarantees it.
		bw.Printf("return true\n")
		return bw.body(), nil
	}

	ok := bw.Name("ok")
	bw.Printf("_, %s := %s.(%t)\n", ok, req.Site.ParamNames[0], req.Site.Recv)
	bw.Printf("return %s\n", ok)
	return bw.body(), nil
}
