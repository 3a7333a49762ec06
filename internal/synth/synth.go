// Package synth synthesizes the bodies of Equal, CanEqual, Hash, and String
// methods from a [member.Type].
//
// Each synthesis first validates the call site where the directive is
// written, then resolves the members, and finally writes the body. The
// Equal synthesis stores its resolved member set in a [member.Cache] so that
// the Hash synthesis of the same type reuses it. Hence every Equal request of
// a session must be synthesized before any Hash request.
//
// Failures are reported as [diag.Diagnostic]. A failure aborts its request
// only.
package synth

import (
	"bytes"
	"fmt"
	"go/token"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
	"github.com/sublee/eqgen/internal/member"
)

// Kind is the kind of a method to synthesize.
type Kind uint8

const (
	KindEqual Kind = iota
	KindCanEqual
	KindHash
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindEqual:
		return "Equal"
	case KindCanEqual:
		return "CanEqual"
	case KindHash:
		return "Hash"
	case KindString:
		return "String"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// BadCallSite returns the diagnostic kind for an invalid call site of the
// directive.
func (k Kind) BadCallSite() diag.Kind {
	switch k {
	case KindEqual:
		return diag.BadEqualCallSite
	case KindCanEqual:
		return diag.BadCanEqualCallSite
	case KindHash:
		return diag.BadHashCallSite
	case KindString:
		return diag.BadStringCallSite
	}
	panic(fmt.Sprintf("unexpected kind: %s", k))
}

// Request is a request to synthesize a method body.
type Request struct {
	Kind Kind
	Type *member.Type
	Site CallSite

	// Mode is the member selection written at the call site. Nil means the
	// default mode.
	Mode *member.Mode

	// LowerNames renders member names in lowerCamelCase. String only.
	LowerNames bool

	// CanEqual reports that the type declares a CanEqual method. Equal calls
	// it to keep the equality symmetric across embedding types.
	CanEqual bool

	// Pos is the position of the directive.
	Pos token.Pos
}

// Body is the synthesized code of a method body without the enclosing braces.
type Body string

// Synthesizer synthesizes method bodies. It is safe for concurrent use as
// long as the writers passed to it do not share a namespace.
type Synthesizer struct {
	cache       *member.Cache
	defaultMode member.Mode
}

// New creates a [Synthesizer] sharing the cache. The default mode is used by
// requests without a mode.
func New(cache *member.Cache, defaultMode member.Mode) *Synthesizer {
	if cache == nil {
		cache = member.NewCache()
	}
	return &Synthesizer{cache: cache, defaultMode: defaultMode}
}

// Cache returns the member set cache of the synthesizer.
func (s *Synthesizer) Cache() *member.Cache {
	return s.cache
}

func (s *Synthesizer) modeOf(req Request) member.Mode {
	if req.Mode != nil {
		return *req.Mode
	}
	return s.defaultMode
}

// Synthesize dispatches the request by its kind. Diagnostics may contain
// warnings even if the body is synthesized. Use [Failed] to check whether the
// request has failed.
func (s *Synthesizer) Synthesize(w *codefmt.Writer, req Request) (Body, []*diag.Diagnostic) {
	switch req.Kind {
	case KindEqual:
		return s.Equal(w, req)
	case KindCanEqual:
		return s.CanEqual(w, req)
	case KindHash:
		return s.Hash(w, req)
	case KindString:
		return s.String(w, req)
	}
	panic(fmt.Sprintf("unexpected kind: %s", req.Kind))
}

// Failed reports whether any of the diagnostics is an error.
func Failed(ds []*diag.Diagnostic) bool {
	for _, d := range ds {
		if !d.IsWarning() {
			return true
		}
	}
	return false
}

// bodyWriter buffers the body being synthesized.
type bodyWriter struct {
	*codefmt.Writer
	buf *bytes.Buffer
}

func newBodyWriter(w *codefmt.Writer) bodyWriter {
	var buf bytes.Buffer
	return bodyWriter{w.WithBuf(&buf), &buf}
}

func (bw bodyWriter) body() Body {
	return Body(bw.buf.String())
}

// access returns an expression reading the member from x.
func access(x string, m member.Member) string {
	if m.IsMethod() {
		return x + "." + m.Name + "()"
	}
	return x + "." + m.Name
}
