package eqgeninternal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/eqgen/internal/member"
)

var Version string

// DefaultOutput is the name of the generated file in each package.
const DefaultOutput = "eqgen_gen.go"

// Options controls a generation session.
type Options struct {
	// Tags is the extra build tags to use when loading packages, separated
	// by commas. The eqgen tag is always added.
	Tags string
	// Tests indicates whether to include test files.
	Tests bool
	// Output is the name of the output file to generate in each package.
	Output string

	// DefaultMode selects members for directives without a mode option.
	DefaultMode member.Mode

	// Workers limits the number of types synthesized in parallel. Zero means
	// no limit.
	Workers int

	// KeepGoing writes the output of a package even if some of its directives
	// have failed. Failed directives are generated as panicking bodies.
	KeepGoing bool

	// Verbose receives progress messages if not nil.
	Verbose io.Writer
}

func (opts Options) output() string {
	if opts.Output == "" {
		return DefaultOutput
	}
	return opts.Output
}

// Result is the outcome of [Main].
type Result struct {
	// Outputs maps output file paths to their contents.
	Outputs map[string][]byte

	// Warnings do not fail generation.
	Warnings []error
}

// Main is the main entry point for Eqgen. It is used by the command-line tool
// directly.
//
// ctx is the context for loading packages. If the loading is too slow, ctx can
// cancel the operation. wd is the path of the working directory. env is the
// environment variables to use when running the tool. And patterns are the
// package patterns to process.
//
// If any error occurs, it returns a non-nil error. With opts.KeepGoing, the
// result may be returned along with the error.
func Main(ctx context.Context, wd string, env []string, opts Options, patterns []string) (*Result, error) {
	pkgs, err := load(ctx, wd, env, opts.Tags, opts.Tests, patterns)
	if err != nil {
		return nil, err
	}
	logf(opts, "loaded %d packages", len(pkgs))

	res := &Result{Outputs: make(map[string][]byte)}
	var errs error

	for _, pkg := range pkgs {
		g, err := New(pkg, opts)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		err = g.Build(ctx)
		res.Warnings = append(res.Warnings, g.Warnings()...)
		if err != nil {
			errs = errors.Join(errs, err)
			if ctx.Err() != nil || !opts.KeepGoing {
				continue
			}
		}

		code := g.Generate()
		if len(code) == 0 {
			continue
		}

		outDir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(wd, outDir); err == nil {
			outDir = rel
		}
		out := filepath.Join(outDir, opts.output())
		res.Outputs[out] = code
	}

	res.Warnings = sortErrors(res.Warnings)
	if errs != nil {
		// errs already contains comprehensive error messages. So we don't need
		// to attach another error message.
		if opts.KeepGoing {
			return res, reorderErrors(errs)
		}
		return nil, reorderErrors(errs)
	}
	return res, nil
}

func logf(opts Options, format string, args ...any) {
	if opts.Verbose != nil {
		fmt.Fprintf(opts.Verbose, "eqgen: "+format+"\n", args...)
	}
}

// load loads packages.
func load(ctx context.Context, wd string, env []string, tags string, tests bool, patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        wd,
		Env:        env,
		BuildFlags: []string{"-tags=eqgen"},
		Tests:      tests,
	}
	if tags != "" {
		cfg.BuildFlags[0] += "," + tags
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	var errs error
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			if err.Pos == "" {
				errs = errors.Join(errs, errors.New(err.Msg))
				continue
			}

			path, rowcol, _ := strings.Cut(err.Pos, ":")
			if rel, relErr := filepath.Rel(wd, path); relErr == nil {
				err.Pos = rel + ":" + rowcol
			}
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}

	return pkgs, nil
}

// flattenErrors unwraps errors joined by errors.Join recursively.
func flattenErrors(errs error) []error {
	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			// errors.Join collapses errors with a single error having Unwrap()
			// []error method. The underlying errors could be retrieved using
			// the Unwrap() method.
			list = append(list, u.Unwrap()...)

			// The underlying errors are appended to the list. So the original
			// error can be removed.
			list[i] = nil
			continue
		}
	}
	return slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})
}

func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}
	return errors.Join(sortErrors(flattenErrors(errs))...)
}

// sortErrors sorts errors by message.
func sortErrors(list []error) []error {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	return list
}

// Errors flattens errors joined by [Main] for reporting one by one.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	return flattenErrors(err)
}
