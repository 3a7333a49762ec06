package codefmt

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"io"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger interface{ Pkg() *packages.Package }
	Poser interface{ Pos() token.Pos }
	Ender interface{ End() token.Pos }
)

// wrapPrintfArgs wraps the arguments which have a code form so that the
// verbs of [formatArg.Format] can render them.
func (f Formatter) wrapPrintfArgs(args []any) []any {
	for i, arg := range args {
		switch arg.(type) {
		case types.Type, ast.Expr, token.Pos:
			args[i] = formatArg{arg, f}
		}
	}
	return args
}

type formatArg struct {
	x   any
	fmt Formatter
}

// Format implements fmt.Formatter interface.
//
// Supported verbs:
//
//	%t: types.Type - as written in the target package, e.g. "*shapes.Point"
//	%c: ast.Expr - code form, e.g. "p.X"
//	%b: token.Pos - file:line:column form
//
// For other verbs, it falls back to the default formatting of fmt package.
// %t of a non-type argument keeps its meaning for booleans.
func (f formatArg) Format(s fmt.State, verb rune) {
	switch x := f.x.(type) {
	case types.Type:
		if verb == 't' {
			_, _ = io.WriteString(s, f.fmt.Type(x))
			return
		}
	case ast.Expr:
		if verb == 'c' {
			_, _ = io.WriteString(s, f.fmt.Expr(x))
			return
		}
	case token.Pos:
		if verb == 'b' {
			_, _ = io.WriteString(s, FormatPosition(f.fmt.Position(x)))
			return
		}
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), f.x)
}

func (f Formatter) Sprintf(format string, args ...any) string {
	args = f.wrapPrintfArgs(args)
	return fmt.Sprintf(format, args...)
}

func (f Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	args = f.wrapPrintfArgs(args)
	return fmt.Fprintf(w, format, args...)
}
