package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognisivelabs/go-axiom/pkg/axiom"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an Axiom rule and display the AST",
	Long: `Parse a rule and print the Abstract Syntax Tree.

Useful for debugging precedence and macro parsing.

Examples:
  axiom parse pricing.ax
  axiom parse -e '1 + 2 * 3'`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseRule,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse an inline rule instead of reading from file")
}

func parseRule(_ *cobra.Command, args []string) error {
	source, filename, err := readRule(args)
	if err != nil {
		return err
	}

	program, err := axiom.Compile(source, filename)
	if err != nil {
		printError(err, source)
		return fmt.Errorf("parsing failed")
	}

	for _, stmt := range program.Statements {
		fmt.Println(stmt.String())
	}
	return nil
}
