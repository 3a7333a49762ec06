package parse

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/member"
	"github.com/sublee/eqgen/internal/typeinfo"
)

// directiveMethods are synthesized by Eqgen. They never become members.
var directiveMethods = map[string]bool{
	"Equal":    true,
	"CanEqual": true,
	"Hash":     true,
	"String":   true,
}

// fieldTag is a parsed `eqgen:"..."` struct tag.
//
//	eqgen:"-"          // not a member
//	eqgen:"body"       // body member
//	eqgen:"var"        // mutable member
//	eqgen:"body,lazy"  // lazy body member
type fieldTag struct {
	skip bool
	site member.Site
	kind member.Kind
}

func parseFieldTag(tag string) (fieldTag, error) {
	var ft fieldTag
	value, ok := reflect.StructTag(tag).Lookup("eqgen")
	if !ok || value == "" {
		return ft, nil
	}
	if value == "-" {
		ft.skip = true
		return ft, nil
	}

	for opt := range strings.SplitSeq(value, ",") {
		switch strings.TrimSpace(opt) {
		case "body":
			ft.site = member.SiteBody
		case "var":
			ft.kind = member.Var
		case "lazy":
			ft.kind = member.Lazy
		default:
			return ft, fmt.Errorf("unknown eqgen tag option %q", opt)
		}
	}
	if ft.kind == member.Lazy {
		// Lazy values are always derived from the constructor.
		ft.site = member.SiteBody
	}
	return ft, nil
}

func visibility(name string) member.Visibility {
	if token.IsExported(name) {
		return member.Public
	}
	return member.Private
}

// Describe builds the member model of the named type.
//
// Struct fields become constructor members unless their tags say otherwise.
// The first embedded field having an Equal method is the supertype instead of
// a member. An embedded interface makes the type open; the methods of the
// interface become trait members. Methods declared by the type become body
// members, except for the methods Eqgen synthesizes.
func (p *Parser) Describe(named *types.Named) (*member.Type, error) {
	obj := named.Obj()
	t := &member.Type{
		Name: obj.Name(),
		Pos:  obj.Pos(),
	}
	if obj.Pkg() != nil {
		t.Scope = obj.Pkg().Path()
	}

	var errs error
	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			field := st.Field(i)

			tag, err := parseFieldTag(st.Tag(i))
			if err != nil {
				errs = errors.Join(errs, codefmt.Errorf(p, field, "%s", err.Error()))
				continue
			}
			if tag.skip {
				continue
			}

			ft := typeinfo.TypeOf(field.Type())
			if field.Embedded() {
				if ft.IsInterface() {
					t.Trait = true
					t.Members = append(t.Members, traitMembers(ft.Interface, field)...)
					continue
				}
				if fn, ok := ft.EqualMethod(true); ok && t.Super == nil {
					_, hash := ft.HashMethod(true)
					t.Super = &member.Super{
						Field:     field.Name(),
						Type:      field.Type(),
						Equal:     true,
						ByPointer: ft.EqualTakesPointer(fn),
						Hash:      hash,
					}
					continue
				}
			}

			t.Members = append(t.Members, member.Member{
				Name:       field.Name(),
				Type:       field.Type(),
				Site:       tag.site,
				Kind:       tag.kind,
				Visibility: visibility(field.Name()),
				Pos:        field.Pos(),
			})
		}
	}

	for method := range named.Methods() {
		if directiveMethods[method.Name()] {
			continue
		}
		t.Members = append(t.Members, methodMember(method, false))
	}

	if errs != nil {
		return nil, errs
	}
	return t, nil
}

// traitMembers lists the methods of an embedded interface.
func traitMembers(iface *types.Interface, field *types.Var) []member.Member {
	var members []member.Member
	for method := range iface.Methods() {
		if directiveMethods[method.Name()] {
			continue
		}
		m := methodMember(method, true)
		m.Pos = field.Pos()
		members = append(members, m)
	}
	return members
}

func methodMember(fn *types.Func, trait bool) member.Member {
	sig := fn.Signature()

	// A method with multiple results cannot be compared as a value. Keep the
	// tuple so that the natural equality rejects it.
	var result types.Type = sig.Results()
	if sig.Results().Len() == 1 {
		result = sig.Results().At(0).Type()
	}

	return member.Member{
		Name:       fn.Name(),
		Type:       result,
		Site:       member.SiteBody,
		Kind:       member.Method,
		Visibility: visibility(fn.Name()),
		Arity:      sig.Params().Len(),
		Trait:      trait,
		Pos:        fn.Pos(),
	}
}

// DeclaresCanEqual reports whether the named type declares a CanEqual method.
func DeclaresCanEqual(named *types.Named) bool {
	_, ok := typeinfo.TypeOf(named).DeclaredMethod("CanEqual")
	return ok
}
