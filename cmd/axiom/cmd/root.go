package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "axiom",
	Short: "Axiom rule language interpreter",
	Long: `go-axiom is a Go implementation of the Axiom rule language.

Axiom is a small, statically-typed, expression-oriented rule language:
a rule takes a JSON-shaped context, is checked against a typed contract,
and deterministically computes a single output value.

  - Strong static typing checked against a contract before execution
  - Lists, objects, dates, and string built-ins
  - exists/all list macros as the only iteration form
  - No loops, no user functions, no I/O: every rule halts`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the CLI logger: a development zap logger under
// --verbose, a no-op logger otherwise. The core pipeline never logs.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// printError renders a pipeline error to stderr, with source context for
// syntax errors and a colored kind prefix.
func printError(err error, source string) {
	if ax, ok := err.(*axerrors.Error); ok {
		label := color.New(color.FgRed, color.Bold).Sprintf("%s error:", ax.Kind)
		fmt.Fprintf(os.Stderr, "%s\n%s\n", label, ax.Format(source))
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("Error:"), err)
}
