package parse

import (
	"fmt"
	"go/ast"
	"go/types"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
	"github.com/sublee/eqgen/internal/member"
	"github.com/sublee/eqgen/internal/synth"
	"github.com/sublee/eqgen/internal/typeinfo"
)

var directiveKinds = map[string]synth.Kind{
	"Equal":    synth.KindEqual,
	"CanEqual": synth.KindCanEqual,
	"Hash":     synth.KindHash,
	"String":   synth.KindString,
}

// Directive is a method whose body is an Eqgen directive.
type Directive struct {
	// Decl is the enclosing function. Nil when the directive is not in a
	// function at all.
	Decl *ast.FuncDecl
	Call *ast.CallExpr

	// Named is the receiver base type. Nil when the directive is not called
	// by a method.
	Named *types.Named

	Request synth.Request

	// Err is set when the directive cannot be synthesized. The request is
	// incomplete then.
	Err error
}

// Name returns a human readable name of the directive, e.g. "Point.Equal".
func (d *Directive) Name() string {
	if d.Named == nil {
		return "eqgen." + d.Request.Kind.String()
	}
	return d.Named.Obj().Name() + "." + d.Request.Kind.String()
}

// ParseDirectives finds the directives in the files with the eqgen build
// constraint in source order. Malformed directives are returned as well with
// their Err set, so that the caller can decide whether to keep going.
func (p *Parser) ParseDirectives() []*Directive {
	described := make(map[*types.Named]*typeResult)

	var dirs []*Directive
	for _, file := range p.EqgenGoFiles() {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				dirs = append(dirs, p.strayDirectives(decl)...)
				continue
			}
			if fn.Body == nil {
				continue
			}

			ast.Inspect(fn.Body, func(node ast.Node) bool {
				call, ok := node.(*ast.CallExpr)
				if !ok {
					return true
				}
				name, ok := p.GetDirective(call)
				if !ok {
					return true
				}
				kind, ok := directiveKinds[name]
				if !ok {
					// Options are checked by their directive.
					return false
				}

				dir := p.parseDirective(fn, call, kind)
				if dir.Err == nil && dir.Named != nil {
					res, ok := described[dir.Named]
					if !ok {
						res = &typeResult{}
						res.t, res.err = p.Describe(dir.Named)
						described[dir.Named] = res
					}
					dir.Request.Type = res.t
					dir.Err = res.err
				}
				dirs = append(dirs, dir)
				return false
			})
		}
	}
	return dirs
}

type typeResult struct {
	t   *member.Type
	err error
}

// strayDirectives reports directive calls outside functions, e.g. in a
// package-level variable.
func (p *Parser) strayDirectives(decl ast.Decl) []*Directive {
	var dirs []*Directive
	ast.Inspect(decl, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}
		name, ok := p.GetDirective(call)
		if !ok {
			return true
		}
		kind, ok := directiveKinds[name]
		if !ok {
			return false
		}
		d := synth.Validate(synth.CallSite{Method: "", Pos: call.Pos()}, kind)
		dirs = append(dirs, &Directive{
			Call:    call,
			Request: synth.Request{Kind: kind, Pos: call.Pos()},
			Err:     codefmt.Wrap(p, call, d),
		})
		return false
	})
	return dirs
}

// CallSite describes the method declaring the function.
func (p *Parser) CallSite(fn *ast.FuncDecl) (synth.CallSite, *types.Func) {
	obj, _ := p.Pkg().TypesInfo.Defs[fn.Name].(*types.Func)
	if obj == nil {
		return synth.CallSite{Method: fn.Name.Name, Pos: fn.Name.Pos()}, nil
	}

	sig := obj.Signature()
	site := synth.CallSite{Method: obj.Name(), Pos: fn.Name.Pos()}
	if recv := sig.Recv(); recv != nil {
		site.Recv = recv.Type()
		site.RecvName = recv.Name()
	}
	for param := range sig.Params().Variables() {
		site.Params = append(site.Params, param.Type())
		site.ParamNames = append(site.ParamNames, param.Name())
	}
	for result := range sig.Results().Variables() {
		site.Results = append(site.Results, result.Type())
	}
	return site, obj
}

// parseDirective checks the shape of the method and parses the arguments of
// the directive:
//
//	func (p Point) Equal(other any) bool {
//		return eqgen.Equal(p, other, eqgen.Members(p.X, p.Y))
//	}
//
// The signature of the method is validated later by the synthesizer.
func (p *Parser) parseDirective(fn *ast.FuncDecl, call *ast.CallExpr, kind synth.Kind) *Directive {
	site, _ := p.CallSite(fn)
	dir := &Directive{
		Decl: fn,
		Call: call,
		Request: synth.Request{
			Kind: kind,
			Site: site,
			Pos:  call.Pos(),
		},
	}

	if site.Recv == nil {
		// Reported by the synthesizer with the expected declaration.
		dir.Err = codefmt.Wrap(p, call, synth.Validate(site, kind))
		return dir
	}
	dir.Named = typeinfo.TypeOf(site.Recv).Deref().Named
	if dir.Named == nil {
		dir.Err = p.badCallSite(dir, call, "receiver type must be a named type")
		return dir
	}
	if kind == synth.KindEqual {
		dir.Request.CanEqual = DeclaresCanEqual(dir.Named)
	}

	fail := func(node ast.Node, format string, args ...any) *Directive {
		dir.Err = p.badCallSite(dir, node, fmt.Sprintf(format, args...))
		return dir
	}

	if !p.isOnlyReturn(fn, call) {
		return fail(call, "eqgen.%s must be returned directly by the only statement of the method", kind)
	}
	if call.Ellipsis.IsValid() {
		return fail(call, "cannot spread arguments of eqgen.%s", kind)
	}

	nargs := 1
	if kind == synth.KindEqual || kind == synth.KindCanEqual {
		nargs = 2
	}
	if len(call.Args) < nargs {
		return fail(call, "eqgen.%s takes %d arguments, not %d", kind, nargs, len(call.Args))
	}

	if !p.isVar(call.Args[0], site.RecvName) {
		return fail(call.Args[0], "first argument must be the receiver %s", nameOr(site.RecvName, "of the method"))
	}
	if nargs == 2 && (len(site.ParamNames) == 0 || !p.isVar(call.Args[1], site.ParamNames[0])) {
		param := ""
		if len(site.ParamNames) != 0 {
			param = site.ParamNames[0]
		}
		return fail(call.Args[1], "second argument must be the parameter %s", nameOr(param, "of the method"))
	}

	for _, arg := range call.Args[nargs:] {
		if err := p.parseOption(dir, arg); err != nil {
			dir.Err = err
			return dir
		}
	}
	return dir
}

func nameOr(name, fallback string) string {
	if name == "" || name == "_" {
		return fallback
	}
	return name
}

// badCallSite reports a malformed directive.
func (p *Parser) badCallSite(dir *Directive, node ast.Node, problem string) error {
	typeName := dir.Request.Site.TypeName()
	d := diag.New(dir.Request.Kind.BadCallSite(), typeName, node.Pos()).
		Detailf("%s", problem).
		Detailf("for example: %s", example(dir.Request))
	d.End = node.End()
	return codefmt.Wrap(p, node, d)
}

func example(req synth.Request) string {
	recv := nameOr(req.Site.RecvName, "t")
	switch req.Kind {
	case synth.KindEqual, synth.KindCanEqual:
		other := "other"
		if len(req.Site.ParamNames) != 0 {
			other = nameOr(req.Site.ParamNames[0], other)
		}
		return fmt.Sprintf("return eqgen.%s(%s, %s)", req.Kind, recv, other)
	}
	return fmt.Sprintf("return eqgen.%s(%s)", req.Kind, recv)
}

// isOnlyReturn reports whether the body of the function is a single return
// statement of the call, optionally converted to another type:
//
//	return eqgen.Hash(p)
//	return uint32(eqgen.Hash(p))
func (p *Parser) isOnlyReturn(fn *ast.FuncDecl, call *ast.CallExpr) bool {
	if len(fn.Body.List) != 1 {
		return false
	}
	ret, ok := fn.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return false
	}

	expr := ast.Unparen(ret.Results[0])
	if expr == call {
		return true
	}

	conv, ok := expr.(*ast.CallExpr)
	if !ok || len(conv.Args) != 1 || !p.Pkg().TypesInfo.Types[conv.Fun].IsType() {
		return false
	}
	return ast.Unparen(conv.Args[0]) == call
}

// isVar reports whether the expression is exactly the variable of the name.
func (p *Parser) isVar(expr ast.Expr, name string) bool {
	if name == "" || name == "_" {
		return false
	}
	id, ok := ast.Unparen(expr).(*ast.Ident)
	return ok && id.Name == name
}

// parseOption parses an option argument of the directive.
func (p *Parser) parseOption(dir *Directive, arg ast.Expr) error {
	req := &dir.Request

	call, ok := ast.Unparen(arg).(*ast.CallExpr)
	if !ok {
		return p.badCallSite(dir, arg, "options must be written in place, e.g. eqgen.AllVals()")
	}
	name, ok := p.GetDirective(call)
	if !ok {
		return p.badCallSite(dir, arg, "options must be written in place, e.g. eqgen.AllVals()")
	}

	setMode := func(mode member.Mode) error {
		if req.Mode != nil {
			return p.badCallSite(dir, arg, fmt.Sprintf("%s conflicts with %s; give at most one of ConstructorVals, AllVals, and Members", mode, *req.Mode))
		}
		req.Mode = &mode
		return nil
	}

	switch name {
	case "ConstructorVals":
		return setMode(member.ConstructorVals())
	case "AllVals":
		return setMode(member.AllVals())
	case "Members":
		if call.Ellipsis.IsValid() {
			return p.badCallSite(dir, call, "cannot spread arguments of eqgen.Members")
		}
		refs := make([]member.Ref, 0, len(call.Args))
		for _, arg := range call.Args {
			ref, err := p.parseRef(dir, arg)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
		}
		return setMode(member.Explicit(refs...))
	case "LowerNames":
		// Option[no, yes] keeps it off eqgen.Equal at compile time.
		req.LowerNames = true
		return nil
	}
	return p.badCallSite(dir, arg, fmt.Sprintf("eqgen.%s is not an option", name))
}

// parseRef parses a member reference in eqgen.Members. It must select a field
// or a method of the receiver:
//
//	p.X
//	p.Norm
func (p *Parser) parseRef(dir *Directive, expr ast.Expr) (member.Ref, error) {
	sel, ok := ast.Unparen(expr).(*ast.SelectorExpr)
	if !ok || !p.isVar(sel.X, dir.Request.Site.RecvName) {
		return member.Ref{}, p.badCallSite(dir, expr,
			fmt.Sprintf("member must be a field or a method of the receiver, e.g. %s.X", nameOr(dir.Request.Site.RecvName, "t")))
	}

	selection := p.Pkg().TypesInfo.Selections[sel]
	if selection == nil {
		return member.Ref{}, p.badCallSite(dir, expr, fmt.Sprintf("cannot resolve %s", codefmt.FormatExpr(p, sel)))
	}

	ref := member.Ref{
		Name:  sel.Sel.Name,
		Arity: -1,
		Owner: ownerOf(selection),
		Expr:  codefmt.FormatExpr(p, sel),
		Pos:   sel.Pos(),
	}
	if fn, ok := selection.Obj().(*types.Func); ok {
		ref.Arity = fn.Signature().Params().Len()
	}
	return ref, nil
}

// ownerOf returns the name of the embedded type declaring the selected field
// or method. It returns "" when the receiver type declares it.
func ownerOf(selection *types.Selection) string {
	index := selection.Index()
	if len(index) == 1 {
		return ""
	}

	typ := selection.Recv()
	for _, i := range index[:len(index)-1] {
		st, ok := typeinfo.TypeOf(typ).Deref().T.Underlying().(*types.Struct)
		if !ok {
			return ""
		}
		typ = st.Field(i).Type()
	}

	if named := typeinfo.TypeOf(typ).Deref().Named; named != nil {
		return named.Obj().Name()
	}
	return types.TypeString(typ, nil)
}
