package parse

import (
	"errors"
	"go/ast"
	"strings"

	"github.com/sublee/eqgen/internal/codefmt"
)

// Validate checks for usages outside expected paths. It collects all errors
// instead of stopping at the first error.
//
// Directives themselves are checked by [Parser.ParseDirectives]. The rules here
// need to look at whole files.
func (p *Parser) Validate() error {
	var errs error
	for _, file := range p.Pkg().Syntax {
		errs = errors.Join(errs, p.validateConstraint(file))
		errs = errors.Join(errs, p.validateStrayOptions(file))
	}
	return errs
}

// validateConstraint checks if files importing "github.com/sublee/eqgen" have
// "//go:build eqgen" constraint.
func (p *Parser) validateConstraint(file *ast.File) error {
	var eqgenImport *ast.ImportSpec
	for _, imp := range file.Imports {
		if IsEqgenImport(strings.Trim(imp.Path.Value, `"`)) {
			eqgenImport = imp
			break
		}
	}
	if eqgenImport == nil {
		return nil
	}

	if hasGoBuildEqgen(file) {
		return nil
	}

	// The import would remain in the build without the constraint.
	return codefmt.Errorf(p, eqgenImport, `file must have "//go:build eqgen" constraint when importing eqgen`)
}

// validateStrayOptions checks options used outside the arguments of a
// directive. They would refer to the eqgen package after code generation.
//
//	var opt = eqgen.AllVals() // error
func (p *Parser) validateStrayOptions(file *ast.File) error {
	if !hasGoBuildEqgen(file) {
		return nil
	}

	var errs error
	ast.Inspect(file, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}

		name, ok := p.GetDirective(call)
		if !ok {
			return true
		}
		if _, ok := directiveKinds[name]; ok {
			// Options in the arguments are parsed with the directive.
			return false
		}

		err := codefmt.Errorf(p, call, "eqgen.%s can only be an argument of a directive", name)
		errs = errors.Join(errs, err)
		return false
	})
	return errs
}
