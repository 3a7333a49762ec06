package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	eqgeninternal "github.com/sublee/eqgen/internal/eqgen"
)

var Version = "dev"

func init() {
	eqgeninternal.Version = Version
}

var flags struct {
	tags      string
	tests     bool
	output    string
	color     string
	keepGoing bool
	workers   int
	config    string
	verbose   bool
}

var rootCmd = &cobra.Command{
	Use:   "eqgen [packages]",
	Short: "Generate Equal, Hash, CanEqual, and String methods",
	Long: `Eqgen replaces the bodies of methods returning eqgen directives in files
with the "//go:build eqgen" constraint, and writes the result to eqgen_gen.go
in each package.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

func main() {
	rootCmd.Version = Version

	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.tags, "tags", "b", "", "comma-separated build tags")
	pf.BoolVarP(&flags.tests, "tests", "t", false, "include tests")
	pf.StringVarP(&flags.output, "output", "o", eqgeninternal.DefaultOutput, "output file name")
	pf.StringVarP(&flags.color, "color", "c", "auto", "colorize (auto|always|never)")
	pf.BoolVarP(&flags.keepGoing, "keep-going", "k", false, "generate panicking bodies for failed directives")
	pf.IntVarP(&flags.workers, "workers", "j", 0, "number of types to generate in parallel (0 for no limit)")
	pf.StringVar(&flags.config, "config", "", "config file (default ./"+eqgeninternal.ConfigFile+" if exists)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "print progress")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// options merges the config file and the flags. Flags given explicitly win.
func options(cmd *cobra.Command) (eqgeninternal.Options, error) {
	path, required := flags.config, true
	if path == "" {
		path, required = eqgeninternal.ConfigFile, false
	}
	cfg, err := eqgeninternal.LoadConfig(path, required)
	if err != nil {
		return eqgeninternal.Options{}, err
	}

	fs := cmd.Flags()
	if fs.Changed("tags") {
		cfg.Tags = flags.tags
	}
	if fs.Changed("tests") {
		cfg.Tests = flags.tests
	}
	if fs.Changed("output") {
		cfg.Output = flags.output
	}
	if fs.Changed("color") {
		cfg.Color = flags.color
	}
	if fs.Changed("keep-going") {
		cfg.KeepGoing = flags.keepGoing
	}
	if fs.Changed("workers") {
		cfg.Workers = flags.workers
	}
	if err := cfg.Validate(); err != nil {
		return eqgeninternal.Options{}, fmt.Errorf("invalid flags: %w", err)
	}

	if err := setColor(cfg.Color); err != nil {
		return eqgeninternal.Options{}, err
	}

	opts := cfg.Options()
	if flags.verbose {
		opts.Verbose = os.Stderr
	}
	return opts, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	res, err := eqgeninternal.Main(cmd.Context(), wd, os.Environ(), opts, args)
	if res != nil {
		printWarnings(res.Warnings)

		for out, code := range res.Outputs {
			if err := os.WriteFile(out, code, 0o644); err != nil {
				return err
			}
			fmt.Println("Generated:", out)
		}
	}
	if err != nil {
		printErrors(eqgeninternal.Errors(err))
		return errReported
	}
	return nil
}
