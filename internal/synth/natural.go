package synth

import (
	"errors"
	"fmt"
	"go/types"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/typeinfo"
)

const eqgenhashPath = "github.com/sublee/eqgen/pkg/eqgenhash"

// comparer writes the natural equality and hash of values of a type.
type comparer interface {
	// writeEqual returns a bool expression comparing a and b.
	writeEqual(w *codefmt.Writer, a, b string) string

	// writeHash returns an uint64 expression hashing a. It returns "" when
	// values of the type cannot be hashed consistently with writeEqual.
	writeHash(w *codefmt.Writer, a string) string

	// usesEq reports whether writeEqual is the == operator.
	usesEq() bool
}

// skip is returned by try functions when a rule does not apply to the type.
var skip = errors.New("skip")

// natural finds the natural equality of the type. Operands which are not
// addressable cannot call methods with a pointer receiver.
//
// The rules are tried in order:
//
//	a.Equal(b)              // the type has Equal(T) bool or Equal(any) bool
//	a == b                  // the type is comparable
//	slices.Equal(a, b)      // slices
//	maps.Equal(a, b)        // maps
func natural(typ typeinfo.Type, addressable bool) (comparer, error) {
	for _, try := range []func(typeinfo.Type, bool) (comparer, error){
		tryMethod,
		tryComparable,
		trySlice,
		tryMap,
	} {
		cmp, err := try(typ, addressable)
		if errors.Is(err, skip) {
			continue
		}
		return cmp, err
	}
	return nil, fmt.Errorf("%s is neither comparable nor has an Equal method", typ.T)
}

// methodComparer uses the Equal method of the type. An Equal method declared
// on the pointer receiver of a value type takes the address of the other
// operand, so that it sees the type of its receiver.
//
//	a.Equal(b)
//	a.Equal(&b)
//	uint64(a.Hash())
type methodComparer struct {
	addr bool
	hash bool
}

func tryMethod(typ typeinfo.Type, addressable bool) (comparer, error) {
	if typ.IsInterface() || typ.IsTypeParam() {
		// The dynamic value may be nil. Compare interfaces by ==.
		return nil, skip
	}
	fn, ok := typ.EqualMethod(addressable)
	if !ok {
		return nil, skip
	}
	_, hash := typ.HashMethod(addressable)
	return methodComparer{addr: typ.EqualTakesPointer(fn), hash: hash}, nil
}

func (methodComparer) usesEq() bool { return false }

func (c methodComparer) writeEqual(w *codefmt.Writer, a, b string) string {
	if c.addr {
		return fmt.Sprintf("%s.Equal(&%s)", a, b)
	}
	return fmt.Sprintf("%s.Equal(%s)", a, b)
}

func (c methodComparer) writeHash(w *codefmt.Writer, a string) string {
	if !c.hash {
		// Equal values may have different hashes without a Hash method.
		return ""
	}
	return fmt.Sprintf("uint64(%s.Hash())", a)
}

// eqComparer uses the == operator and hashes by the underlying kind.
//
//	a == b
//	eqgenhash.Int(a)
type eqComparer struct {
	hashFunc string
}

func tryComparable(typ typeinfo.Type, addressable bool) (comparer, error) {
	if !typ.IsComparable() {
		return nil, skip
	}

	hashFunc := "Comparable"
	switch {
	case typ.IsUnsigned():
		hashFunc = "Uint"
	case typ.IsInteger():
		hashFunc = "Int"
	case typ.IsFloat():
		hashFunc = "Float"
	case typ.IsComplex():
		hashFunc = "Complex"
	case typ.IsString():
		hashFunc = "String"
	case typ.IsBool():
		hashFunc = "Bool"
	}
	return eqComparer{hashFunc: hashFunc}, nil
}

func (eqComparer) usesEq() bool { return true }

func (eqComparer) writeEqual(w *codefmt.Writer, a, b string) string {
	return fmt.Sprintf("%s == %s", a, b)
}

func (c eqComparer) writeHash(w *codefmt.Writer, a string) string {
	return fmt.Sprintf("%s.%s(%s)", w.Import(eqgenhashPath, ""), c.hashFunc, a)
}

// sliceComparer compares slices element by element.
//
//	slices.Equal(a, b)
//	slices.EqualFunc(a, b, func(x, y E) bool { return x.Equal(y) })
//	eqgenhash.Slice(a, func(v E) uint64 { return eqgenhash.Int(v) })
type sliceComparer struct {
	elem    comparer
	elemTyp types.Type
}

func trySlice(typ typeinfo.Type, addressable bool) (comparer, error) {
	if !typ.IsSlice() {
		return nil, skip
	}

	// Function parameters are addressable.
	elem, err := natural(*typ.Elem, true)
	if err != nil {
		return nil, fmt.Errorf("elements of %s: %w", typ.T, err)
	}
	return sliceComparer{elem: elem, elemTyp: typ.Elem.T}, nil
}

func (sliceComparer) usesEq() bool { return false }

func (c sliceComparer) writeEqual(w *codefmt.Writer, a, b string) string {
	slices := w.Import("slices", "")
	if c.elem.usesEq() {
		return fmt.Sprintf("%s.Equal(%s, %s)", slices, a, b)
	}
	x, y := w.Name("x"), w.Name("y")
	return w.Sprintf("%s.EqualFunc(%s, %s, func(%s, %s %t) bool { return %s })",
		slices, a, b, x, y, c.elemTyp, c.elem.writeEqual(w, x, y))
}

func (c sliceComparer) writeHash(w *codefmt.Writer, a string) string {
	v := w.Name("v")
	elemHash := c.elem.writeHash(w, v)
	if elemHash == "" {
		return ""
	}
	return w.Sprintf("%s.Slice(%s, func(%s %t) uint64 { return %s })",
		w.Import(eqgenhashPath, ""), a, v, c.elemTyp, elemHash)
}

// mapComparer compares maps by keys and values.
//
//	maps.Equal(a, b)
//	maps.EqualFunc(a, b, func(x, y V) bool { return x.Equal(y) })
//	eqgenhash.Map(a, func(v V) uint64 { return eqgenhash.Int(v) })
type mapComparer struct {
	elem    comparer
	elemTyp types.Type
}

func tryMap(typ typeinfo.Type, addressable bool) (comparer, error) {
	if !typ.IsMap() {
		return nil, skip
	}

	elem, err := natural(*typ.Elem, true)
	if err != nil {
		return nil, fmt.Errorf("values of %s: %w", typ.T, err)
	}
	return mapComparer{elem: elem, elemTyp: typ.Elem.T}, nil
}

func (mapComparer) usesEq() bool { return false }

func (c mapComparer) writeEqual(w *codefmt.Writer, a, b string) string {
	maps := w.Import("maps", "")
	if c.elem.usesEq() {
		return fmt.Sprintf("%s.Equal(%s, %s)", maps, a, b)
	}
	x, y := w.Name("x"), w.Name("y")
	return w.Sprintf("%s.EqualFunc(%s, %s, func(%s, %s %t) bool { return %s })",
		maps, a, b, x, y, c.elemTyp, c.elem.writeEqual(w, x, y))
}

func (c mapComparer) writeHash(w *codefmt.Writer, a string) string {
	v := w.Name("v")
	elemHash := c.elem.writeHash(w, v)
	if elemHash == "" {
		return ""
	}
	return w.Sprintf("%s.Map(%s, func(%s %t) uint64 { return %s })",
		w.Import(eqgenhashPath, ""), a, v, c.elemTyp, elemHash)
}
