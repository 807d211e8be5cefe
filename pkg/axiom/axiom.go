// Package axiom is the embeddable public surface of the Axiom rule
// engine. It exposes the three pipeline operations — Compile, Check,
// Execute — and the convenience Eval that chains them.
//
// A compiled program is immutable and may be checked once and executed
// many times, concurrently, each execution with its own context data.
package axiom

import (
	"github.com/cognisivelabs/go-axiom/internal/ast"
	"github.com/cognisivelabs/go-axiom/internal/contract"
	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/interp"
	"github.com/cognisivelabs/go-axiom/internal/lexer"
	"github.com/cognisivelabs/go-axiom/internal/parser"
	"github.com/cognisivelabs/go-axiom/internal/runtime"
	"github.com/cognisivelabs/go-axiom/internal/semantic"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// Program is a compiled Axiom rule.
type Program = ast.Program

// Contract is the typed interface a rule is checked and executed against.
type Contract = contract.Contract

// Value is a runtime value produced by executing a rule.
type Value = runtime.Value

// Compile lexes and parses rule source into a Program. The filename is
// attached to any syntax error for reporting; it may be empty.
func Compile(source, filename string) (*Program, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0].WithFilename(filename)
	}
	return program, nil
}

// Check type-checks a compiled program against a contract and returns the
// inferred result type. A nil contract checks against the empty contract.
func Check(program *Program, c *Contract) (types.Type, error) {
	return semantic.NewAnalyzer(c).Analyze(program)
}

// Execute runs a compiled program with the given context JSON. The
// program should have been checked against the same contract first;
// execution reports runtime errors only for the conditions checking
// cannot rule out.
func Execute(program *Program, c *Contract, contextJSON []byte) (Value, error) {
	if c == nil {
		c = contract.Empty
	}
	seed, err := contract.DecodeContext(contextJSON, c)
	if err != nil {
		return nil, err
	}
	return interp.New().Run(program, seed)
}

// Eval compiles, checks, and executes a rule in one call. It behaves
// identically to calling Compile, Check, and Execute in sequence.
func Eval(source, filename string, c *Contract, contextJSON []byte) (Value, error) {
	program, err := Compile(source, filename)
	if err != nil {
		return nil, err
	}
	if _, err := Check(program, c); err != nil {
		return nil, err
	}
	return Execute(program, c, contextJSON)
}

// ParseContract decodes a contract JSON document without resolving file
// references; use LoadContract for on-disk contracts that reference shape
// files.
func ParseContract(data []byte) (*Contract, error) {
	return contract.Parse(data)
}

// LoadContract reads a contract JSON file from disk, resolving
// ./file.json shape references relative to it.
func LoadContract(path string) (*Contract, error) {
	return contract.Load(path)
}

// EncodeResult serializes an execution result back to JSON, preserving
// object property order.
func EncodeResult(v Value) ([]byte, error) {
	return runtime.EncodeJSON(v)
}

// ErrorKind reports the pipeline phase an error came from: "Syntax",
// "Type", or "Runtime". The second result is false for foreign errors.
func ErrorKind(err error) (string, bool) {
	if ax, ok := err.(*axerrors.Error); ok {
		return ax.Kind.String(), true
	}
	return "", false
}
