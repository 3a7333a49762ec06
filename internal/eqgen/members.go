package eqgeninternal

import (
	"context"
	"errors"
	"go/token"

	"github.com/sublee/eqgen/internal/member"
	"github.com/sublee/eqgen/internal/synth"
)

// TypeMembers is the member set the Equal directive of a type has resolved.
type TypeMembers struct {
	Type    string // qualified by the package path
	Mode    member.Mode
	Super   *member.Super
	Members []member.Member
	Pos     token.Position
}

// Members returns the resolved member sets of the types in source order. It
// must be called after [Eqgen.Build]. Types whose Equal directive has failed
// are omitted.
func (g *Eqgen) Members() []TypeMembers {
	var tms []TypeMembers
	for i, dir := range g.dirs {
		if dir.Request.Kind != synth.KindEqual || g.results[i].err != nil {
			continue
		}

		t := dir.Request.Type
		set, ok := g.synth.Cache().Load(t)
		if !ok {
			continue
		}
		tms = append(tms, TypeMembers{
			Type:    t.Key(),
			Mode:    set.Mode(),
			Super:   t.Super,
			Members: set.Members(),
			Pos:     g.p.Pkg().Fset.Position(dir.Decl.Pos()),
		})
	}
	return tms
}

// MainMembers loads the packages like [Main] and reports the member sets
// instead of generating code. Errors of failed types are returned along with
// the member sets of the healthy types.
func MainMembers(ctx context.Context, wd string, env []string, opts Options, patterns []string) ([]TypeMembers, error) {
	pkgs, err := load(ctx, wd, env, opts.Tags, opts.Tests, patterns)
	if err != nil {
		return nil, err
	}

	var tms []TypeMembers
	var errs error
	for _, pkg := range pkgs {
		g, err := New(pkg, opts)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		errs = errors.Join(errs, g.Build(ctx))
		tms = append(tms, g.Members()...)
	}
	return tms, reorderErrors(errs)
}
