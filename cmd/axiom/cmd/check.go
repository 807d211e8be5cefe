package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cognisivelabs/go-axiom/pkg/axiom"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check an Axiom rule against a contract",
	Long: `Compile and type-check a rule without executing it.

Examples:
  # Check a rule against its contract
  axiom check pricing.ax --contract pricing.contract.json

  # Check an inline rule with no contract
  axiom check -e '1 + 2 * 3'`,
	Args: cobra.MaximumNArgs(1),
	RunE: checkRule,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "check an inline rule instead of reading from file")
	checkCmd.Flags().StringVar(&contractPath, "contract", "", "contract JSON file")
}

func checkRule(_ *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	source, filename, err := readRule(args)
	if err != nil {
		return err
	}

	var c *axiom.Contract
	if contractPath != "" {
		if c, err = axiom.LoadContract(contractPath); err != nil {
			printError(err, "")
			return fmt.Errorf("loading contract failed")
		}
	}

	program, err := axiom.Compile(source, filename)
	if err != nil {
		printError(err, source)
		return fmt.Errorf("compilation failed")
	}

	resultType, err := axiom.Check(program, c)
	if err != nil {
		printError(err, source)
		return fmt.Errorf("type check failed")
	}

	if resultType != nil {
		fmt.Printf("%s result type: %s\n", color.GreenString("OK"), resultType)
	} else {
		fmt.Printf("%s rule produces no value\n", color.GreenString("OK"))
	}
	return nil
}
