package codefmt

import (
	"fmt"
	"go/token"
)

// CodeError is an error located in the source code Eqgen reads. Its message
// starts with the position of the problem:
//
//	main/main.go:9:39: eqgen.Hash requires eqgen.Equal in the Equal method of the same type: Point
//		declare Equal with eqgen.Equal for Point, for example:
//		func (p Point) Equal(other any) bool { return eqgen.Equal(p, other) }
type CodeError struct {
	Err error

	// Pos and End span the problem. End may be token.NoPos.
	Pos, End token.Pos

	// Position is Pos resolved in the file set. It is invalid without one.
	Position token.Position
}

func (e *CodeError) Unwrap() error { return e.Err }

func (e *CodeError) Error() string {
	if e.Err == nil {
		return ""
	}
	if !e.Position.IsValid() {
		return e.Err.Error()
	}
	return FormatPosition(e.Position) + ": " + e.Err.Error()
}

// Errorf formats an error located at poser. The %t, %c, and %b verbs work as
// in [Formatter.Sprintf], and %w wraps an error.
func (f Formatter) Errorf(poser Poser, format string, args ...any) error {
	return f.Wrap(poser, fmt.Errorf(format, f.wrapPrintfArgs(args)...))
}

// Wrap locates err at poser. The span includes the end when poser is also an
// [Ender]. A [CodeError] is returned as is, keeping its own position.
func (f Formatter) Wrap(poser Poser, err error) error {
	if located, ok := err.(*CodeError); ok {
		return located
	}

	e := &CodeError{Err: err}
	if poser == nil {
		return e
	}
	e.Pos = poser.Pos()
	if ender, ok := poser.(Ender); ok {
		e.End = ender.End()
	}
	e.Position = f.Position(e.Pos)
	return e
}
