package synth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
	"github.com/sublee/eqgen/internal/member"
	"github.com/sublee/eqgen/internal/words"
)

// String synthesizes the body of a String method:
//
//	return fmt.Sprintf("Point(X=%v, Y=%v)", p.X, p.Y)
//
// Without a mode at the call site, it formats the members selected by Equal
// of the same type. It never writes the cache.
func (s *Synthesizer) String(w *codefmt.Writer, req Request) (Body, []*diag.Diagnostic) {
	if d := Validate(req.Site, KindString); d != nil {
		return "", []*diag.Diagnostic{d}
	}

	t := req.Type
	var set *member.Set
	if req.Mode == nil {
		set, _ = s.cache.Load(t)
	}
	if set == nil {
		var d *diag.Diagnostic
		set, d = member.Resolve(t, s.modeOf(req))
		if d != nil {
			return "", []*diag.Diagnostic{d}
		}
	}

	bw := newBodyWriter(w)
	recv := req.Site.RecvName

	if req.Site.IsPointer() {
		bw.Printf("if %s == nil {\n", recv)
		bw.Printf("return %q\n", "<nil>")
		bw.Printf("}\n")
	}

	if set.Len() == 0 {
		bw.Printf("return %q\n", t.Name+"()")
		return bw.body(), nil
	}

	fields := make([]string, 0, set.Len())
	args := make([]string, 0, set.Len())
	for _, m := range set.All() {
		name := m.Name
		if req.LowerNames {
			name = words.LowerCamel(name)
		}
		fields = append(fields, name+"=%v")
		args = append(args, access(recv, m))
	}

	format := fmt.Sprintf("%s(%s)", t.Name, strings.Join(fields, ", "))
	bw.Printf("return %s.Sprintf(%s, %s)\n", bw.Import("fmt", ""), strconv.Quote(format), strings.Join(args, ", "))
	return bw.body(), nil
}
