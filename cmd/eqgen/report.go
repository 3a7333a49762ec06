package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// errReported is returned by commands which have already printed their
// errors.
var errReported = errors.New("reported")

var (
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	detailColor  = color.New(color.Faint)
)

// setColor enables or disables ANSI colors for stderr.
func setColor(mode string) error {
	switch mode {
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid color mode: %s", mode)
	}
	return nil
}

// isTerminal reports whether the file is a terminal. If it is true, we can
// use ANSI color codes.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func printErrors(errs []error) {
	for _, err := range errs {
		printMessage(errorColor, err.Error())
	}
}

func printWarnings(warns []error) {
	for _, warn := range warns {
		printMessage(warningColor, "warning: "+warn.Error())
	}
}

// printMessage prints the first line of the message in the color and the
// following detail lines dimmed.
func printMessage(c *color.Color, message string) {
	head, details, _ := strings.Cut(message, "\n")
	c.Fprintln(os.Stderr, head)
	if details == "" {
		return
	}
	for _, line := range strings.Split(details, "\n") {
		detailColor.Fprintln(os.Stderr, line)
	}
}
