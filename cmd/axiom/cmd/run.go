package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/cognisivelabs/go-axiom/pkg/axiom"
)

var (
	evalExpr     string
	contractPath string
	contextPath  string
	jsonOutput   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an Axiom rule",
	Long: `Compile, check, and execute an Axiom rule.

The rule is read from a file or from the -e flag. The contract and context
are JSON files; both are optional (an omitted contract means no inputs and
no output constraint, an omitted context means empty data).

Examples:
  # Run a rule file against a contract and context
  axiom run pricing.ax --contract pricing.contract.json --context order.json

  # Evaluate an inline rule
  axiom run -e '1 + 2 * 3'

  # Machine-readable output
  axiom run pricing.ax --contract pricing.contract.json --context order.json --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRule,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate an inline rule instead of reading from file")
	runCmd.Flags().StringVar(&contractPath, "contract", "", "contract JSON file")
	runCmd.Flags().StringVar(&contextPath, "context", "", "context JSON file")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "print a JSON result envelope")
}

// readRule resolves the rule source from -e or a file argument. It is
// shared by run, check, parse, and lex.
func readRule(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for an inline rule")
}

// loadInputs loads the contract and context files named by the flags.
func loadInputs(logger *zap.Logger) (*axiom.Contract, []byte, error) {
	var c *axiom.Contract
	if contractPath != "" {
		loaded, err := axiom.LoadContract(contractPath)
		if err != nil {
			return nil, nil, err
		}
		c = loaded
		logger.Info("contract loaded",
			zap.String("path", contractPath),
			zap.String("name", c.Name),
			zap.Int("inputs", len(c.Inputs)))
	}

	contextJSON := []byte("{}")
	if contextPath != "" {
		data, err := os.ReadFile(contextPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read context %s: %w", contextPath, err)
		}
		contextJSON = data
	}
	return c, contextJSON, nil
}

func runRule(_ *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	source, filename, err := readRule(args)
	if err != nil {
		return err
	}

	c, contextJSON, err := loadInputs(logger)
	if err != nil {
		printError(err, "")
		return fmt.Errorf("loading inputs failed")
	}

	start := time.Now()

	program, err := axiom.Compile(source, filename)
	if err != nil {
		printError(err, source)
		return fmt.Errorf("compilation failed")
	}
	logger.Info("compiled", zap.String("rule", filename), zap.Duration("elapsed", time.Since(start)))

	checkStart := time.Now()
	resultType, err := axiom.Check(program, c)
	if err != nil {
		printError(err, source)
		return fmt.Errorf("type check failed")
	}
	typeName := "none"
	if resultType != nil {
		typeName = resultType.String()
	}
	logger.Info("checked", zap.String("result_type", typeName), zap.Duration("elapsed", time.Since(checkStart)))

	execStart := time.Now()
	result, err := axiom.Execute(program, c, contextJSON)
	if err != nil {
		printError(err, source)
		return fmt.Errorf("execution failed")
	}
	elapsed := time.Since(start)
	logger.Info("executed", zap.Duration("elapsed", time.Since(execStart)))

	if jsonOutput {
		return printEnvelope(filename, result, elapsed)
	}

	fmt.Println(result.String())
	return nil
}

// printEnvelope emits the machine-readable result envelope. The envelope
// is composed with sjson so the result JSON is embedded untouched, with
// object property order preserved.
func printEnvelope(rule string, result axiom.Value, elapsed time.Duration) error {
	resultJSON, err := axiom.EncodeResult(result)
	if err != nil {
		return err
	}

	out := []byte(`{}`)
	if out, err = sjson.SetBytes(out, "rule", rule); err != nil {
		return err
	}
	if out, err = sjson.SetBytes(out, "type", result.Type().String()); err != nil {
		return err
	}
	if out, err = sjson.SetRawBytes(out, "result", resultJSON); err != nil {
		return err
	}
	if out, err = sjson.SetBytes(out, "duration_ms", elapsed.Seconds()*1000); err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
