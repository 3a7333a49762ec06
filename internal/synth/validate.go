package synth

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"github.com/sublee/eqgen/internal/diag"
	"github.com/sublee/eqgen/internal/typeinfo"
)

// CallSite describes the method enclosing a directive.
type CallSite struct {
	Method   string
	Recv     types.Type // T or *T, exactly as declared
	RecvName string

	Params     []types.Type
	ParamNames []string
	Results    []types.Type

	Pos token.Pos
}

// TypeName returns the name of the receiver base type.
func (site CallSite) TypeName() string {
	if site.Recv == nil {
		return ""
	}
	if named, ok := typeinfo.TypeOf(site.Recv).Deref().T.(*types.Named); ok {
		return named.Obj().Name()
	}
	return site.Recv.String()
}

// IsPointer reports whether the receiver is a pointer.
func (site CallSite) IsPointer() bool {
	return site.Recv != nil && typeinfo.TypeOf(site.Recv).IsPointer()
}

// ParamIsRecv reports whether the first parameter has the receiver type, so
// no type assertion is needed.
func (site CallSite) ParamIsRecv() bool {
	return len(site.Params) != 0 && types.Identical(site.Params[0], site.Recv)
}

func (site CallSite) typeString(t types.Type) string {
	if t == nil {
		return "?"
	}
	var qf types.Qualifier
	if pkg := typeinfo.TypeOf(site.Recv).Deref().Pkg(); pkg != nil {
		qf = types.RelativeTo(pkg)
	}
	return types.TypeString(t, qf)
}

func (site CallSite) recvString() string {
	if site.Recv == nil {
		return ""
	}
	if site.RecvName == "" {
		return fmt.Sprintf("(%s)", site.typeString(site.Recv))
	}
	return fmt.Sprintf("(%s %s)", site.RecvName, site.typeString(site.Recv))
}

// String formats the method as it is declared, e.g.
// "func (p Point) Equal(other any) bool".
func (site CallSite) String() string {
	var b strings.Builder
	b.WriteString("func ")
	if site.Recv != nil {
		b.WriteString(site.recvString())
		b.WriteByte(' ')
	}
	b.WriteString(site.Method)
	b.WriteByte('(')
	for i, param := range site.Params {
		if i != 0 {
			b.WriteString(", ")
		}
		if i < len(site.ParamNames) && site.ParamNames[i] != "" {
			b.WriteString(site.ParamNames[i])
			b.WriteByte(' ')
		}
		b.WriteString(site.typeString(param))
	}
	b.WriteByte(')')

	switch len(site.Results) {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(site.typeString(site.Results[0]))
	default:
		results := make([]string, len(site.Results))
		for i, r := range site.Results {
			results[i] = site.typeString(r)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(results, ", "))
	}
	return b.String()
}

// want formats the expected declaration of the method for the kind.
func want(site CallSite, kind Kind) string {
	recv := site.recvString()
	if recv == "" {
		recv = "(t T)"
	}
	switch kind {
	case KindEqual, KindCanEqual:
		return fmt.Sprintf("func %s %s(other any) bool", recv, kind)
	case KindHash:
		return fmt.Sprintf("func %s Hash() uint64", recv)
	case KindString:
		return fmt.Sprintf("func %s String() string", recv)
	}
	panic(fmt.Sprintf("unexpected kind: %s", kind))
}

// Validate checks that the method enclosing a directive of the kind is
// declared with the right name and signature.
//
//	Equal(other any) bool     // or Equal(other T) bool
//	CanEqual(other any) bool  // or CanEqual(other T) bool
//	Hash() uint64             // or any other integer result
//	String() string
func Validate(site CallSite, kind Kind) *diag.Diagnostic {
	problem := validate(site, kind)
	if problem == "" {
		return nil
	}
	return diag.New(kind.BadCallSite(), site.TypeName(), site.Pos).
		Detailf("%s", problem).
		Detailf("want: %s", want(site, kind)).
		Detailf("got:  %s", site)
}

func validate(site CallSite, kind Kind) string {
	if site.Recv == nil {
		return fmt.Sprintf("eqgen.%s is not called by a method", kind)
	}
	if site.Method != kind.String() {
		return fmt.Sprintf("method name is %s, not %s", site.Method, kind)
	}

	switch kind {
	case KindEqual, KindCanEqual:
		if len(site.Params) != 1 {
			return fmt.Sprintf("%s takes 1 parameter, not %d", kind, len(site.Params))
		}
		param := typeinfo.TypeOf(site.Params[0])
		switch {
		case types.Identical(param.T, site.Recv):
		case param.IsInterface() && types.AssignableTo(site.Recv, param.T):
		default:
			return fmt.Sprintf("parameter must be %s or an interface it implements", site.typeString(site.Recv))
		}
		if len(site.Results) != 1 || !types.Identical(site.Results[0], types.Typ[types.Bool]) {
			return "result must be bool"
		}

	case KindHash:
		if len(site.Params) != 0 {
			return fmt.Sprintf("Hash takes no parameters, not %d", len(site.Params))
		}
		if len(site.Results) != 1 || !typeinfo.TypeOf(site.Results[0]).IsInteger() {
			return "result must be an integer"
		}

	case KindString:
		if len(site.Params) != 0 {
			return fmt.Sprintf("String takes no parameters, not %d", len(site.Params))
		}
		if len(site.Results) != 1 || !types.Identical(site.Results[0], types.Typ[types.String]) {
			return "result must be string"
		}
	}

	return ""
}
