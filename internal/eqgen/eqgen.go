package eqgeninternal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
	"github.com/sublee/eqgen/internal/eqgen/parse"
	"github.com/sublee/eqgen/internal/member"
	"github.com/sublee/eqgen/internal/synth"
)

// bodyImports are the package names a synthesized body may refer to. They are
// reserved against local names in the body.
var bodyImports = []string{"fmt", "slices", "maps", "eqgenhash"}

// Eqgen generates method bodies for the target package. Call [Eqgen.Build]
// and then [Eqgen.Generate] to get the generated code. All potential errors
// are returned by [Eqgen.Build]. A failed directive is generated as a
// panicking body, so [Eqgen.Generate] never fails.
type Eqgen struct {
	p     *parse.Parser
	ns    codefmt.NS
	buf   *bytes.Buffer
	w     *codefmt.Writer
	synth *synth.Synthesizer
	opts  Options

	dirs    []*parse.Directive
	results []result
}

// result is the outcome of a directive.
type result struct {
	body  synth.Body
	err   error // failure of the directive
	warns []error
}

// New creates a new [Eqgen] for the given package. If the package does not
// satisfy the requirements, an error is returned. The package must have its
// Syntax, Types and TypesInfo. And it must not have any errors.
func New(pkg *packages.Package, opts Options) (*Eqgen, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Eqgen{
		p:     parser,
		ns:    codefmt.NewNS(pkg.Types.Scope()),
		buf:   &buf,
		w:     codefmt.NewWriter(&buf, pkg),
		synth: synth.New(member.NewCache(), opts.DefaultMode),
		opts:  opts,
	}, nil
}

// Build parses the directives and synthesizes their bodies. Equal directives
// are synthesized first because Hash and String directives read the members
// Equal has selected. Types are synthesized in parallel within each phase.
//
// It returns all errors of the package joined. Warnings are available by
// [Eqgen.Warnings].
func (g *Eqgen) Build(ctx context.Context) error {
	errs := g.p.Validate()

	g.dirs = g.p.ParseDirectives()
	g.results = make([]result, len(g.dirs))

	var equals, others []int
	for i, dir := range g.dirs {
		switch {
		case dir.Err != nil:
			g.results[i].err = dir.Err
		case dir.Request.Kind == synth.KindEqual:
			equals = append(equals, i)
		default:
			others = append(others, i)
		}
	}

	for _, phase := range [][]int{equals, others} {
		if err := g.synthesizeAll(ctx, phase); err != nil {
			return errors.Join(errs, err)
		}
	}

	for _, res := range g.results {
		errs = errors.Join(errs, res.err)
	}
	return errs
}

// synthesizeAll synthesizes the directives grouped by their types. A failing
// directive never cancels the others. Only the cancellation of ctx stops the
// group.
func (g *Eqgen) synthesizeAll(ctx context.Context, indices []int) error {
	var groups [][]int
	byType := make(map[string]int)
	for _, i := range indices {
		key := g.dirs[i].Request.Type.Key()
		j, ok := byType[key]
		if !ok {
			j = len(groups)
			byType[key] = j
			groups = append(groups, nil)
		}
		groups[j] = append(groups[j], i)
	}

	eg, ctx := errgroup.WithContext(ctx)
	if g.opts.Workers > 0 {
		eg.SetLimit(g.opts.Workers)
	}
	for _, group := range groups {
		eg.Go(func() error {
			for _, i := range group {
				if err := ctx.Err(); err != nil {
					return err
				}
				g.results[i] = g.synthesize(g.dirs[i])
			}
			return nil
		})
	}
	return eg.Wait()
}

func (g *Eqgen) synthesize(dir *parse.Directive) result {
	_, fn := g.p.CallSite(dir.Decl)
	ns := codefmt.NewMethodNS(g.ns, fn, bodyImports...)

	body, ds := g.synth.Synthesize(g.w.WithNS(ns), dir.Request)

	var res result
	for _, d := range ds {
		err := codefmt.Wrap(g.p, codefmt.Span(d.Pos, d.End), d)
		if d.IsWarning() {
			res.warns = append(res.warns, err)
		} else {
			res.err = errors.Join(res.err, err)
		}
	}
	if res.err == nil {
		res.body = body
	}
	g.logf("%s: %s", g.p.Pkg().PkgPath, dir.Name())
	return res
}

func (g *Eqgen) logf(format string, args ...any) {
	if g.opts.Verbose != nil {
		fmt.Fprintf(g.opts.Verbose, "eqgen: "+format+"\n", args...)
	}
}

// Warnings returns the warnings found by [Eqgen.Build].
func (g *Eqgen) Warnings() []error {
	var warns []error
	for _, res := range g.results {
		warns = append(warns, res.warns...)
	}
	return warns
}

// Generate generates the code for the package. It must be called after
// [Eqgen.Build]. It returns nil if the package has no directives.
func (g *Eqgen) Generate() []byte {
	if len(g.dirs) == 0 {
		return nil
	}
	g.mergeCode()
	return g.frameCode()
}

// mergeCode copies the declarations of the source files tagged with
// "//go:build eqgen". The body of each directive method is replaced with the
// synthesized body.
func (g *Eqgen) mergeCode() {
	bodies := make(map[*ast.FuncDecl]string)
	for i, dir := range g.dirs {
		if dir.Decl == nil {
			continue
		}
		res := g.results[i]
		if res.err != nil {
			bodies[dir.Decl] = panicBody(res.err)
		} else {
			bodies[dir.Decl] = string(res.body)
		}
	}

	fset := g.p.Pkg().Fset
	for _, file := range g.p.EqgenGoFiles() {
		name := filepath.Base(fset.File(file.Pos()).Name())
		first := true

		for _, decl := range file.Decls {
			if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
				// Required imports will be collected from their usage, and
				// then rewritten as an import declaration group.
				continue
			}
			if g.hasStrayDirective(decl) {
				// Already reported. The declaration would keep the eqgen
				// import alive.
				continue
			}

			if first {
				fmt.Fprintf(g.buf, "// %s:\n\n", name)
				first = false
			}

			fn, ok := decl.(*ast.FuncDecl)
			body, replace := bodies[fn]
			if !ok || !replace {
				decl = codefmt.RewriteImports(g.w, decl)
				printer.Fprint(g.buf, fset, &printer.CommentedNode{Node: decl, Comments: file.Comments})
				fmt.Fprintf(g.buf, "\n\n")
				continue
			}

			// Print the signature only and then the synthesized body.
			sig := *fn
			sig.Body = nil
			printer.Fprint(g.buf, fset, &printer.CommentedNode{
				Node:     codefmt.RewriteImports(g.w, &sig),
				Comments: file.Comments,
			})
			fmt.Fprintf(g.buf, " {\n%s}\n\n", body)
		}
	}
}

// hasStrayDirective reports whether a non-method declaration calls a
// directive, e.g. "var _ = eqgen.Hash(T{})".
func (g *Eqgen) hasStrayDirective(decl ast.Decl) bool {
	if _, ok := decl.(*ast.FuncDecl); ok {
		return false
	}
	found := false
	ast.Inspect(decl, func(node ast.Node) bool {
		if call, ok := node.(*ast.CallExpr); ok && g.p.IsDirective(call, "") {
			found = true
		}
		return !found
	})
	return found
}

// panicBody is the body of a failed directive generated with --keep-going.
func panicBody(err error) string {
	var d *diag.Diagnostic
	msg := err.Error()
	if errors.As(err, &d) {
		msg = d.Kind.Message()
		if d.Type != "" {
			msg += ": " + d.Type
		}
	}
	msg, _, _ = strings.Cut(msg, "\n")
	return fmt.Sprintf("panic(%s)\n", strconv.Quote("eqgen: "+msg))
}

func (g *Eqgen) frameCode() []byte {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !eqgen\n\n")
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/eqgen%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n\n", g.p.Pkg().Name)

	imps := g.w.Imports()
	if len(imps) != 0 {
		aliases := make([]string, 0, len(imps))
		for alias := range imps {
			aliases = append(aliases, alias)
		}
		slices.Sort(aliases)

		fmt.Fprintf(&buf, "import (\n")
		for _, alias := range aliases {
			imp := imps[alias]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n\n")
	}

	_, _ = io.Copy(&buf, g.buf)
	code := buf.Bytes()

	// Apply goimports formatting if succeeded, or gofmt at least.
	filename := g.p.Pkg().PkgPath + "/" + g.opts.output()
	if fmtCode, err := imports.Process(filename, code, &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	}); err == nil {
		return fmtCode
	}
	if fmtCode, err := format.Source(code); err == nil {
		return fmtCode
	}
	return code
}
