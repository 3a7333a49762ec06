package codefmt

import (
	"go/ast"
	"go/token"
	"go/types"
	"io"
	"maps"
	"strings"
	"sync"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
)

// Writer writes generated method bodies. Writers derived by [Writer.WithBuf]
// and [Writer.WithNS] share the import table, which is safe for concurrent
// use. The namespace and the buffer are not.
//
// Types formatted by %t and packages requested by [Writer.Import] are
// collected as imports of the generated file.
type Writer struct {
	w       io.Writer
	pkg     *packages.Package
	fmt     Formatter
	imports map[string]Import
	mu      *sync.Mutex // guards imports
	ns      NS
}

// NewWriter creates a new [Writer] for the package. It has no namespace
// until [Writer.WithNS].
func NewWriter(w io.Writer, pkg *packages.Package) *Writer {
	return &Writer{
		w:       w,
		pkg:     pkg,
		fmt:     New(pkg),
		imports: make(map[string]Import),
		mu:      new(sync.Mutex),
	}
}

// Pkg returns the package the code is generated for. Writer implements
// [Pkger] by this method.
func (w *Writer) Pkg() *packages.Package {
	return w.pkg
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.importArgs(args)
	return w.fmt.Fprintf(w.w, format, args...)
}

// Sprintf creates a formatted string using [Formatter.Sprintf].
func (w *Writer) Sprintf(format string, args ...any) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.importArgs(args)
	return w.fmt.Sprintf(format, args...)
}

// Name returns a unique local name in the namespace of the writer.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// WithBuf copies the writer and sets a new write buffer.
func (w *Writer) WithBuf(buf io.Writer) *Writer {
	cp := *w
	cp.w = buf
	return &cp
}

// WithNS copies the writer and sets a new namespace.
func (w *Writer) WithNS(ns NS) *Writer {
	cp := *w
	cp.ns = ns
	return &cp
}

// Import is a package imported by the generated file.
type Import struct {
	*types.Package

	// HasAlias indicates that the import has an alias.
	HasAlias bool
}

// Imports returns a copy of the collected imports keyed by their names.
func (w *Writer) Imports() map[string]Import {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.imports)
}

// importArgs records the packages of types and expressions in the printf
// arguments.
func (w *Writer) importArgs(args []any) {
	for _, arg := range args {
		switch arg := arg.(type) {
		case types.Type:
			w.importType(arg)
		case ast.Expr:
			astutil.Apply(arg, func(c *astutil.Cursor) bool {
				if id, ok := c.Node().(*ast.Ident); ok {
					w.importType(w.pkg.TypesInfo.TypeOf(id))
					w.importObj(w.pkg.TypesInfo.ObjectOf(id))
				}
				return true
			}, nil)
		}
	}
}

// importType records the packages where the type and its components are
// defined.
func (w *Writer) importType(typ types.Type) {
	switch typ := typ.(type) {
	case *types.Pointer:
		w.importType(typ.Elem())
	case *types.Slice:
		w.importType(typ.Elem())
	case *types.Array:
		w.importType(typ.Elem())
	case *types.Chan:
		w.importType(typ.Elem())
	case *types.Map:
		w.importType(typ.Key())
		w.importType(typ.Elem())
	case *types.Signature:
		for v := range typ.Params().Variables() {
			w.importType(v.Type())
		}
		for v := range typ.Results().Variables() {
			w.importType(v.Type())
		}
	case *types.Struct:
		for f := range typ.Fields() {
			w.importType(f.Type())
		}
	case *types.Alias:
		w.importObj(typ.Obj())
	case *types.Named:
		w.importObj(typ.Obj())
		for targ := range typ.TypeArgs().Types() {
			w.importType(targ)
		}
	}
}

// importObj records the package where the object is defined. The name of the
// package is changed in place when it conflicts, so that %t formats the type
// with the new name.
func (w *Writer) importObj(obj types.Object) {
	if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() == w.pkg.PkgPath {
		// Built-in or local
		return
	}

	pkg := obj.Pkg()
	for name := range DisambiguateName(pkg.Name()) {
		prev, ok := w.imports[name]
		if ok && prev.Package == pkg {
			return
		}
		if !ok && w.pkg.Types.Scope().Lookup(name) == nil {
			w.imports[name] = Import{Package: pkg, HasAlias: name != pkg.Name()}
			pkg.SetName(name)
			return
		}
	}
}

// Import adds an import for the package with the given path and returns the
// name to refer to it. The name may differ from the requested one when it
// conflicts with another import or a package-level declaration:
//
//	fmtName := w.Import("fmt", "")
//	w.Printf("return %s.Sprintf(%q, p.X)\n", fmtName, "Point(X=%v)")
func (w *Writer) Import(path, name string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var pkgName string
	for _, imp := range w.pkg.Types.Imports() {
		if imp.Path() == path {
			pkgName = imp.Name()
			break
		}
	}
	if pkgName == "" {
		// Not imported by the package yet. Assume the last path element.
		pkgName = path[strings.LastIndex(path, "/")+1:]
	}
	if name == "" {
		name = pkgName
	}

	for name := range DisambiguateName(name) {
		prev, ok := w.imports[name]
		if ok && prev.Path() == path {
			return name
		}
		if !ok && w.pkg.Types.Scope().Lookup(name) == nil {
			w.imports[name] = Import{Package: types.NewPackage(path, name), HasAlias: name != pkgName}
			return name
		}
	}
	panic("unreachable")
}

// RewriteImports rewrites package qualifiers in the declaration copied from a
// source file to the names collected by the writer. The source file and the
// synthesized bodies share one import group in the generated file.
func RewriteImports[T ast.Node](w *Writer, node T) T {
	return astutil.Apply(node, func(c *astutil.Cursor) bool {
		switch node := c.Node().(type) {
		case *ast.Ident:
			// Dot-imported identifiers get a qualifier.
			obj := w.pkg.TypesInfo.ObjectOf(node)
			if obj == nil {
				return false
			}
			pkg := obj.Pkg()
			if pkg == nil || pkg.Path() == w.pkg.PkgPath || obj.Parent() != pkg.Scope() {
				return true
			}

			name := w.Import(pkg.Path(), pkg.Name())
			c.Replace(&ast.SelectorExpr{
				X:   &ast.Ident{NamePos: node.NamePos, Name: name},
				Sel: &ast.Ident{NamePos: node.NamePos + token.Pos(len(name)+1), Name: node.Name, Obj: node.Obj},
			})
			return false

		case *ast.SelectorExpr:
			x, ok := node.X.(*ast.Ident)
			if !ok {
				return true
			}
			pkgName, ok := w.pkg.TypesInfo.ObjectOf(x).(*types.PkgName)
			if !ok {
				// A field or a method, e.g. p.X
				return true
			}

			pkg := pkgName.Imported()
			name := w.Import(pkg.Path(), pkg.Name())
			c.Replace(&ast.SelectorExpr{
				X:   &ast.Ident{NamePos: x.NamePos, Name: name, Obj: x.Obj},
				Sel: &ast.Ident{NamePos: x.NamePos + token.Pos(len(x.Name)+1), Name: node.Sel.Name, Obj: node.Sel.Obj},
			})
			return false
		}
		return true
	}, nil).(T)
}
