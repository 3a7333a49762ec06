// Package eqgenanalysis provides an analyzer reporting the problems Eqgen
// would report at code generation.
package eqgenanalysis

import (
	"context"
	"errors"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/eqgen/internal/codefmt"
	"github.com/sublee/eqgen/internal/diag"
	eqgeninternal "github.com/sublee/eqgen/internal/eqgen"
)

// Analyzer validates the usage of Eqgen in the package.
var Analyzer = &analysis.Analyzer{
	Name: "eqgen",
	Doc:  "linter for eqgen usage",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	g, err := eqgeninternal.New(pkg, eqgeninternal.Options{})
	if err != nil {
		return nil, err
	}

	err = g.Build(context.Background())
	for _, err := range append(eqgeninternal.Errors(err), g.Warnings()...) {
		report(pass, err)
	}
	return nil, nil
}

// report reports a positioned error. The category is the kind of the
// diagnostic if the error is one.
func report(pass *analysis.Pass, err error) {
	var codeErr *codefmt.CodeError
	if !errors.As(err, &codeErr) {
		return
	}

	var category string
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		category = d.Kind.String()
	}

	pass.Report(analysis.Diagnostic{
		Pos:      codeErr.Pos,
		End:      codeErr.End,
		Category: category,
		Message:  codeErr.Err.Error(),
	})
}
