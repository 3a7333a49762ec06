package typeinfo_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/eqgen/internal/typeinfo"
)

func parse(code string) (*ast.File, *types.Info, *types.Package, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", code, parser.AllErrors)
	if err != nil {
		return nil, nil, nil, err
	}

	info := &types.Info{Types: make(map[ast.Expr]types.TypeAndValue)}
	pkg, err := (&types.Config{}).Check("pkg", fset, []*ast.File{file}, info)
	if err != nil {
		return nil, nil, nil, err
	}

	return file, info, pkg, nil
}

func parseType(typeExpr string) (types.Type, error) {
	_, _, pkg, err := parse(fmt.Sprintf("package p; var x %s", typeExpr))
	if err != nil {
		return nil, err
	}
	x := pkg.Scope().Lookup("x")
	return x.Type(), nil
}

func TestTypeIdentical(t *testing.T) {
	ty1, err := parseType("int")
	require.NoError(t, err)

	ty2, err := parseType("int")
	require.NoError(t, err)

	ti1 := typeinfo.TypeOf(ty1)
	ti2 := typeinfo.TypeOf(ty2)
	assert.True(t, ti1.Identical(ti2))
	assert.True(t, ti2.Identical(ti1))
}

func TestTypeNotIdentical(t *testing.T) {
	ty1, err := parseType("int")
	require.NoError(t, err)

	ty2, err := parseType("string")
	require.NoError(t, err)

	ti1 := typeinfo.TypeOf(ty1)
	ti2 := typeinfo.TypeOf(ty2)
	assert.False(t, ti1.Identical(ti2))
	assert.False(t, ti2.Identical(ti1))
}

func TestTypeOfSlice(t *testing.T) {
	ty, err := parseType("[]int")
	require.NoError(t, err)

	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsSlice())
	assert.True(t, ti.Elem.IsInteger())
}

func TestTypeOfMap(t *testing.T) {
	ty, err := parseType("map[string]float64")
	require.NoError(t, err)

	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsMap())
	assert.True(t, ti.Elem.IsFloat(), "Elem is the value type")
}

func TestTypeOfInterface(t *testing.T) {
	ty, err := parseType("interface{}")
	require.NoError(t, err)

	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsInterface())
	assert.True(t, ti.IsComparable())
}

func TestTypeOfPointer(t *testing.T) {
	ty, err := parseType("**int")
	require.NoError(t, err)

	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsPointer())
	assert.True(t, ti.Elem.IsPointer())
	assert.True(t, ti.Deref().IsInteger())
	assert.False(t, ti.Deref().IsPointer())
}

func TestTypeOfNamed(t *testing.T) {
	_, _, pkg, err := parse(`
package p
type myInt int
type myInts []myInt
var x myInt
var y *myInts
`)
	require.NoError(t, err)

	x := typeinfo.TypeOf(pkg.Scope().Lookup("x").Type())
	assert.NotNil(t, x.Named)
	assert.True(t, x.IsInteger(), "named types keep their underlying kind")
	assert.Same(t, pkg, x.Pkg())

	y := typeinfo.TypeOf(pkg.Scope().Lookup("y").Type())
	assert.Nil(t, y.Pkg(), "pointers are not named")
	assert.True(t, y.Deref().IsSlice())
	assert.Equal(t, "myInt", y.Deref().Elem.Named.Obj().Name())
}

func TestTypeOfAlias(t *testing.T) {
	_, _, pkg, err := parse(`
package p
type Score = float32
var x Score
`)
	require.NoError(t, err)

	ti := typeinfo.TypeOf(pkg.Scope().Lookup("x").Type())
	assert.True(t, ti.IsFloat())
}

func TestTypeOfTypeParam(t *testing.T) {
	_, _, pkg, err := parse(`
package p
func f[T comparable, U any](t T, u U) {}
`)
	require.NoError(t, err)

	sig := pkg.Scope().Lookup("f").Type().(*types.Signature)
	tp := typeinfo.TypeOf(sig.Params().At(0).Type())
	up := typeinfo.TypeOf(sig.Params().At(1).Type())
	assert.True(t, tp.IsTypeParam())
	assert.True(t, tp.IsComparable())
	assert.True(t, up.IsTypeParam())
	assert.False(t, up.IsComparable())
}

func TestTypeBasicKinds(t *testing.T) {
	for _, tt := range []struct {
		expr                                          string
		boolean, integer, unsigned, float, cplx, text bool
	}{
		{expr: "bool", boolean: true},
		{expr: "int", integer: true},
		{expr: "uint8", integer: true, unsigned: true},
		{expr: "uintptr", integer: true, unsigned: true},
		{expr: "float32", float: true},
		{expr: "complex128", cplx: true},
		{expr: "string", text: true},
	} {
		t.Run(tt.expr, func(t *testing.T) {
			ty, err := parseType(tt.expr)
			require.NoError(t, err)

			ti := typeinfo.TypeOf(ty)
			assert.Equal(t, tt.boolean, ti.IsBool())
			assert.Equal(t, tt.integer, ti.IsInteger())
			assert.Equal(t, tt.unsigned, ti.IsUnsigned())
			assert.Equal(t, tt.float, ti.IsFloat())
			assert.Equal(t, tt.cplx, ti.IsComplex())
			assert.Equal(t, tt.text, ti.IsString())
			assert.True(t, ti.IsComparable())
		})
	}
}

func TestTypeComparable(t *testing.T) {
	for expr, want := range map[string]bool{
		"[2]int":             true,
		"struct{ x int }":    true,
		"*int":               true,
		"any":                true,
		"chan int":           true,
		"[]int":              false,
		"map[int]int":        false,
		"func()":             false,
		"struct{ x []int }":  false,
		"[2]map[string]bool": false,
	} {
		ty, err := parseType(expr)
		require.NoError(t, err)
		assert.Equal(t, want, typeinfo.TypeOf(ty).IsComparable(), expr)
	}
}

func TestTypeEqualMethod(t *testing.T) {
	_, _, pkg, err := parse(`
package p
type Value struct{ n int }
func (v Value) Equal(o Value) bool { return v.n == o.n }
func (v Value) Hash() uint32 { return uint32(v.n) }

type Open struct{}
func (Open) Equal(o any) bool { return true }

type Ptr struct{}
func (*Ptr) Equal(o Ptr) bool { return true }

type Wrong struct{}
func (Wrong) Equal(o int) bool { return true }
func (Wrong) Hash() string { return "" }

type NoResult struct{}
func (NoResult) Equal(o NoResult) {}

type Promoted struct{ Value }
`)
	require.NoError(t, err)

	typeOf := func(name string) typeinfo.Type {
		return typeinfo.TypeOf(pkg.Scope().Lookup(name).Type())
	}

	_, ok := typeOf("Value").EqualMethod(false)
	assert.True(t, ok)
	_, ok = typeOf("Value").HashMethod(false)
	assert.True(t, ok)

	_, ok = typeOf("Open").EqualMethod(false)
	assert.True(t, ok)
	_, ok = typeOf("Open").HashMethod(false)
	assert.False(t, ok)

	_, ok = typeOf("Ptr").EqualMethod(false)
	assert.False(t, ok, "pointer receiver needs an addressable operand")
	_, ok = typeOf("Ptr").EqualMethod(true)
	assert.True(t, ok)

	_, ok = typeOf("Wrong").EqualMethod(true)
	assert.False(t, ok)
	_, ok = typeOf("Wrong").HashMethod(true)
	assert.False(t, ok)

	_, ok = typeOf("NoResult").EqualMethod(true)
	assert.False(t, ok)

	_, ok = typeOf("Promoted").EqualMethod(true)
	assert.False(t, ok, "promoted Equal compares only the embedded part")
	_, ok = typeOf("Promoted").HashMethod(true)
	assert.False(t, ok)
}

func TestTypeEqualTakesPointer(t *testing.T) {
	_, _, pkg, err := parse(`
package p
type Value struct{}
func (Value) Equal(o any) bool { return true }

type Ptr struct{}
func (*Ptr) Equal(o Ptr) bool { return true }

type PtrAny struct{}
func (*PtrAny) Equal(o any) bool { return true }

type PtrSelf struct{}
func (*PtrSelf) Equal(o *PtrSelf) bool { return true }
`)
	require.NoError(t, err)

	takesPointer := func(typ typeinfo.Type) bool {
		fn, ok := typ.EqualMethod(true)
		require.True(t, ok, typ.String())
		return typ.EqualTakesPointer(fn)
	}
	typeOf := func(name string) typeinfo.Type {
		return typeinfo.TypeOf(pkg.Scope().Lookup(name).Type())
	}

	assert.False(t, takesPointer(typeOf("Value")))
	assert.False(t, takesPointer(typeOf("Ptr")))
	assert.True(t, takesPointer(typeOf("PtrAny")))
	assert.True(t, takesPointer(typeOf("PtrSelf")))
	assert.False(t, takesPointer(typeinfo.TypeOf(types.NewPointer(typeOf("PtrAny").T))))
}

func TestTypeDeclaredMethod(t *testing.T) {
	_, _, pkg, err := parse(`
package p
type Base struct{}
func (Base) CanEqual(any) bool { return true }
type Derived struct{ Base }
`)
	require.NoError(t, err)

	base := typeinfo.TypeOf(pkg.Scope().Lookup("Base").Type())
	_, ok := base.DeclaredMethod("CanEqual")
	assert.True(t, ok)
	_, ok = typeinfo.TypeOf(types.NewPointer(base.T)).DeclaredMethod("CanEqual")
	assert.True(t, ok)

	derived := typeinfo.TypeOf(pkg.Scope().Lookup("Derived").Type())
	_, ok = derived.DeclaredMethod("CanEqual")
	assert.False(t, ok)
	_, ok = derived.Method(pkg, "CanEqual", false)
	assert.True(t, ok, "promoted methods are in the method set")
}
