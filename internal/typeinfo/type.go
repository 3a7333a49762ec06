// Package typeinfo inspects Go types for deciding how their values are
// compared and hashed.
package typeinfo

import (
	"go/types"
)

// Type describes a type information. It holds the parts of [types.Type]
// which decide how values of the type are compared and hashed. A named type
// has both Named and the fields of its underlying type.
type Type struct {
	T types.Type

	Basic     *types.Basic
	Slice     *types.Slice
	Map       *types.Map
	Interface *types.Interface
	Pointer   *types.Pointer
	TypeParam *types.TypeParam
	Named     *types.Named

	// Elem is the element type of a slice, the value type of a map, or the
	// pointee of a pointer.
	Elem *Type
}

// TypeOf inspects the given type and returns a new [Type].
func TypeOf(t types.Type) Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return Type{T: t, Basic: tt}
	case *types.Slice:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Slice: tt, Elem: &elem}
	case *types.Map:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Map: tt, Elem: &elem}
	case *types.Interface:
		return Type{T: t, Interface: tt}
	case *types.Pointer:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Pointer: tt, Elem: &elem}
	case *types.TypeParam:
		return Type{T: t, TypeParam: tt}
	case *types.Named:
		info := TypeOf(tt.Underlying())
		info.T = t
		info.Named = tt
		return info
	}
	return Type{T: t}
}

func (t Type) String() string { return t.T.String() }

func (t Type) IsSlice() bool     { return t.Slice != nil }
func (t Type) IsMap() bool       { return t.Map != nil }
func (t Type) IsInterface() bool { return t.Interface != nil }
func (t Type) IsPointer() bool   { return t.Pointer != nil }
func (t Type) IsTypeParam() bool { return t.TypeParam != nil }

func (t Type) basicInfo(info types.BasicInfo) bool {
	return t.Basic != nil && t.Basic.Info()&info != 0
}

func (t Type) IsBool() bool     { return t.basicInfo(types.IsBoolean) }
func (t Type) IsInteger() bool  { return t.basicInfo(types.IsInteger) }
func (t Type) IsUnsigned() bool { return t.basicInfo(types.IsUnsigned) }
func (t Type) IsFloat() bool    { return t.basicInfo(types.IsFloat) }
func (t Type) IsComplex() bool  { return t.basicInfo(types.IsComplex) }
func (t Type) IsString() bool   { return t.basicInfo(types.IsString) }

// IsComparable reports whether values of the type can be compared by the ==
// operator without a compile error. Interfaces are comparable even though the
// comparison may panic at run time. Type parameters are comparable when their
// constraints are.
func (t Type) IsComparable() bool {
	return types.Comparable(t.T)
}

func (t Type) Identical(u Type) bool { return types.Identical(t.T, u.T) }

// Pkg returns the package where the type is defined. It returns nil if the type
// is not a named type.
func (t Type) Pkg() *types.Package {
	if t.Named == nil {
		return nil
	}
	return t.Named.Obj().Pkg()
}

// Deref returns the element type if the type is a pointer. For type of **X, it
// returns type of X. If the type is not a pointer, it returns the type itself.
func (t Type) Deref() Type {
	if t.IsPointer() {
		return t.Elem.Deref()
	}
	return t
}

// DeclaredMethod returns the method with the given name declared by the named
// type itself or by the named type a pointer points to. Promoted methods are
// not included.
func (t Type) DeclaredMethod(name string) (*types.Func, bool) {
	named := t.Deref().Named
	if named == nil {
		return nil, false
	}
	for method := range named.Methods() {
		if method.Name() == name {
			return method, true
		}
	}
	return nil, false
}

// Method returns the method with the given name in the method set of the type,
// including promoted methods. When addressable is true, methods declared with
// a pointer receiver are also found for a non-pointer type.
func (t Type) Method(pkg *types.Package, name string, addressable bool) (*types.Func, bool) {
	obj, _, _ := types.LookupFieldOrMethod(t.T, addressable, pkg, name)
	fn, ok := obj.(*types.Func)
	return fn, ok
}

// ownMethod returns the method with the given name in the method set of the
// type, excluding promoted methods. A promoted method sees only the embedded
// part of the value.
func (t Type) ownMethod(name string, addressable bool) (*types.Func, bool) {
	obj, index, _ := types.LookupFieldOrMethod(t.T, addressable, nil, name)
	fn, ok := obj.(*types.Func)
	if !ok || len(index) != 1 {
		return nil, false
	}
	return fn, true
}

// EqualMethod returns the "Equal" method of the type when it is declared as
// Equal(T) bool or Equal(I) bool where I is an interface T implements. Such
// a method defines the equality of the type. When addressable is true,
// Equal(*T) bool declared on *T is also accepted.
func (t Type) EqualMethod(addressable bool) (*types.Func, bool) {
	fn, ok := t.ownMethod("Equal", addressable)
	if !ok {
		return nil, false
	}

	sig := fn.Signature()
	if sig.Params().Len() != 1 || sig.Variadic() || sig.Results().Len() != 1 {
		return nil, false
	}
	if !TypeOf(sig.Results().At(0).Type()).IsBool() {
		return nil, false
	}

	param := TypeOf(sig.Params().At(0).Type())
	switch {
	case param.Identical(t):
	case param.IsInterface() && types.AssignableTo(t.T, param.T):
	case addressable && !t.IsPointer() && types.Identical(param.T, types.NewPointer(t.T)):
	default:
		return nil, false
	}
	return fn, true
}

// EqualTakesPointer reports whether the Equal method of a non-pointer type
// must be given a pointer to the other value. It is the case for Equal
// declared on *T taking *T or an interface. The latter asserts the other
// value to *T, the type of its receiver:
//
//	func (b *Base) Equal(other any) bool {
//		o, ok := other.(*Base)
//		...
//	}
func (t Type) EqualTakesPointer(fn *types.Func) bool {
	if t.IsPointer() {
		return false
	}
	sig := fn.Signature()
	if sig.Recv() == nil || sig.Params().Len() != 1 {
		return false
	}
	if _, ok := types.Unalias(sig.Recv().Type()).(*types.Pointer); !ok {
		return false
	}
	param := TypeOf(sig.Params().At(0).Type())
	return param.IsInterface() || param.IsPointer()
}

// HashMethod returns the "Hash" method of the type when it is declared as
// Hash() with an integer result.
func (t Type) HashMethod(addressable bool) (*types.Func, bool) {
	fn, ok := t.ownMethod("Hash", addressable)
	if !ok {
		return nil, false
	}

	sig := fn.Signature()
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil, false
	}
	if !TypeOf(sig.Results().At(0).Type()).IsInteger() {
		return nil, false
	}
	return fn, true
}
