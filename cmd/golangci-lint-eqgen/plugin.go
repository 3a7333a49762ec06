// golangcilinteqgen package provides a plugin for golangci-lint to integrate
// the Eqgen analyzer. To build a custom golangci-lint binary with this
// plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-eqgen binary that you can use to lint
// your Go code with the Eqgen analyzer. Run it with the eqgen build tag,
// otherwise directive files are not analyzed:
//
//	golangci-lint-eqgen run --build-tags=eqgen
package golangcilinteqgen

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sublee/eqgen/pkg/eqgenanalysis"
)

func init() {
	register.Plugin("eqgen", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return EqgenLinter{}, nil
}

type EqgenLinter struct{}

func (EqgenLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{eqgenanalysis.Analyzer}, nil
}

func (EqgenLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
