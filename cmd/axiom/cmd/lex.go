package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognisivelabs/go-axiom/internal/lexer"
)

var (
	showPos  bool
	showType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an Axiom rule and print the tokens",
	Long: `Tokenize (lex) a rule and print the resulting token stream.

Examples:
  axiom lex pricing.ax
  axiom lex -e 'let d: int = 0;' --show-type --show-pos`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexRule,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize an inline rule instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexRule(_ *cobra.Command, args []string) error {
	source, _, err := readRule(args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for {
		tok := l.NextToken()

		line := tok.Literal
		if tok.Type == lexer.STRING {
			line = "\"" + tok.Literal + "\""
		}
		if showType {
			line = fmt.Sprintf("%-12s %s", tok.Type, line)
		}
		if showPos {
			line = fmt.Sprintf("%3d:%-3d %s", tok.Pos.Line, tok.Pos.Column, line)
		}
		fmt.Println(line)

		if tok.Type == lexer.EOF {
			break
		}
	}

	for _, lexErr := range l.Errors() {
		fmt.Printf("error at %d:%d: %s\n", lexErr.Pos.Line, lexErr.Pos.Column, lexErr.Message)
	}
	return nil
}
