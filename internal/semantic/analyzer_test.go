package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognisivelabs/go-axiom/internal/ast"
	"github.com/cognisivelabs/go-axiom/internal/contract"
	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/lexer"
	"github.com/cognisivelabs/go-axiom/internal/parser"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// compile is a test helper that parses source and fails on syntax errors.
func compile(t *testing.T, source string) *ast.Program {
	t.Helper()

	p := parser.New(lexer.New(source))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q", source)
	return program
}

// analyze checks source against a contract JSON document and returns the
// inferred result type and error.
func analyze(t *testing.T, source, contractJSON string) (types.Type, error) {
	t.Helper()

	c := contract.Empty
	if contractJSON != "" {
		parsed, err := contract.Parse([]byte(contractJSON))
		require.NoError(t, err)
		c = parsed
	}
	return NewAnalyzer(c).Analyze(compile(t, source))
}

func requireTypeError(t *testing.T, err error, contains string) {
	t.Helper()

	require.Error(t, err)
	ax, ok := err.(*axerrors.Error)
	require.True(t, ok, "expected *errors.Error, got %T", err)
	assert.Equal(t, axerrors.Type, ax.Kind)
	assert.Contains(t, ax.Message, contains)
}

func TestInferredResultTypes(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"1 + 2 * 3", "int"},
		{`"a" + "b"`, "string"},
		{"1 < 2", "bool"},
		{"!true", "bool"},
		{"-5", "int"},
		{"[1, 2, 3]", "int[]"},
		{"[]", "unknown[]"},
		{`({name: "x", age: 1})`, "{name: string, age: int}"},
		{`"admin" in ["user", "admin"]`, "bool"},
		{"[1, 2, 3].all(n, n > 0)", "bool"},
		{`timestamp("2024-01-01T00:00:00Z") > timestamp("2023-01-01T00:00:00Z")`, "bool"},
		{`length("abc") + 1`, "int"},
		{`startsWith("abc", "a")`, "bool"},
	}

	for _, tt := range tests {
		resultType, err := analyze(t, tt.source, "")
		require.NoError(t, err, "source: %s", tt.source)
		require.NotNil(t, resultType, "source: %s", tt.source)
		assert.Equal(t, tt.expected, resultType.String(), "source: %s", tt.source)
	}
}

func TestContractInputsSeedEnvironment(t *testing.T) {
	resultType, err := analyze(t,
		"base_price - 10",
		`{"inputs": {"base_price": "int"}}`)
	require.NoError(t, err)
	assert.Equal(t, types.Int, resultType)
}

func TestDeclarationMismatch(t *testing.T) {
	_, err := analyze(t, `let x: int = "s";`, "")
	requireTypeError(t, err, "mismatch")
}

func TestUndefinedVariable(t *testing.T) {
	_, err := analyze(t, "let y: int = x + 1;", "")
	requireTypeError(t, err, "Undefined variable 'x'")
}

func TestListHomogeneity(t *testing.T) {
	_, err := analyze(t, `let x: int[] = [1, "2"];`, "")
	requireTypeError(t, err, "homogeneous")
}

func TestEmptyListUnifiesWithAnnotation(t *testing.T) {
	_, err := analyze(t, "let x: string[] = [];", "")
	assert.NoError(t, err)
}

func TestReturnTypeMismatch(t *testing.T) {
	_, err := analyze(t, "1 + 1", `{"inputs": {}, "outputs": "string"}`)
	requireTypeError(t, err, "Return type mismatch")
}

func TestReturnTypeMatches(t *testing.T) {
	_, err := analyze(t, "1 + 2 * 3", `{"inputs": {}, "outputs": "int"}`)
	assert.NoError(t, err)
}

func TestUnknownProperty(t *testing.T) {
	_, err := analyze(t,
		"user.unknown_prop",
		`{"inputs": {"user": {"name": "string"}}}`)
	requireTypeError(t, err, "Property 'unknown_prop' does not exist")
}

func TestEmptyScriptWithOutput(t *testing.T) {
	_, err := analyze(t, "", `{"inputs": {}, "outputs": "int"}`)
	requireTypeError(t, err, "does not end with an expression")
}

func TestLastStatementNotExpression(t *testing.T) {
	_, err := analyze(t, "let x: int = 1;", `{"inputs": {}, "outputs": "int"}`)
	requireTypeError(t, err, "does not end with an expression")
}

func TestDuplicateDeclaration(t *testing.T) {
	_, err := analyze(t, "let x: int = 1; let x: int = 2;", "")
	requireTypeError(t, err, "already declared")
}

func TestDeclarationShadowingInput(t *testing.T) {
	_, err := analyze(t,
		"let base_price: int = 1;",
		`{"inputs": {"base_price": "int"}}`)
	requireTypeError(t, err, "already declared")
}

func TestAssignmentToUndefined(t *testing.T) {
	_, err := analyze(t, "x = 1;", "")
	requireTypeError(t, err, "Undefined variable 'x'")
}

func TestAssignmentTypeMismatch(t *testing.T) {
	_, err := analyze(t, `let x: int = 1; x = "s";`, "")
	requireTypeError(t, err, "mismatch")
}

func TestIfConditionMustBeBool(t *testing.T) {
	_, err := analyze(t, "if (1) { }", "")
	requireTypeError(t, err, "must be bool")
}

func TestBlockScoping(t *testing.T) {
	// Declarations inside a block do not leak
	_, err := analyze(t, "{ let x: int = 1; } x", "")
	requireTypeError(t, err, "Undefined variable 'x'")

	// Sibling blocks may reuse a name
	_, err = analyze(t, "{ let x: int = 1; } { let x: int = 2; } 0", "")
	assert.NoError(t, err)

	// Outer bindings remain visible and assignable inside blocks
	_, err = analyze(t, "let d: int = 0; if (true) { d = 50; } d", "")
	assert.NoError(t, err)
}

func TestBlockDuplicateAgainstOuter(t *testing.T) {
	// Shadowing an outer binding is still a duplicate declaration
	_, err := analyze(t, "let x: int = 1; { let x: int = 2; }", "")
	requireTypeError(t, err, "already declared")
}

func TestOperatorTypeRules(t *testing.T) {
	tests := []struct {
		source   string
		contains string
	}{
		{`1 + "s"`, "'+'"},
		{`"a" - "b"`, "'-'"},
		{`true > false`, "'>'"},
		{`1 && true`, "'&&'"},
		{`!1`, "'!'"},
		{`-"s"`, "'-'"},
		{`1 == "s"`, "same type"},
		{`1 in ["a"]`, "'in'"},
		{`1 in 2`, "'in' requires a list"},
	}

	for _, tt := range tests {
		_, err := analyze(t, tt.source, "")
		requireTypeError(t, err, tt.contains)
	}
}

func TestEqualityOnEqualTypes(t *testing.T) {
	for _, source := range []string{
		"1 == 2",
		`"a" != "b"`,
		"[1] == [1, 2]",
		"[] == [1]", // Unknown element matches anything
		`({a: 1}) == ({a: 2})`,
	} {
		_, err := analyze(t, source, "")
		assert.NoError(t, err, "source: %s", source)
	}
}

func TestMacroChecks(t *testing.T) {
	_, err := analyze(t, "[1, 2].exists(n, n > 0)", "")
	assert.NoError(t, err)

	// Body must be bool
	_, err = analyze(t, "[1, 2].exists(n, n + 1)", "")
	requireTypeError(t, err, "must be bool")

	// Target must be a list
	_, err = analyze(t, "1 .exists(n, true)", "")
	requireTypeError(t, err, "requires a list")

	// Parameter must not shadow an existing binding
	_, err = analyze(t, "let n: int = 1; [1].all(n, n > 0)", "")
	requireTypeError(t, err, "shadows")

	// Parameter is typed as the element type
	_, err = analyze(t, `["a"].all(s, length(s) > 0)`, "")
	assert.NoError(t, err)

	// Parameter does not survive the macro
	_, err = analyze(t, "[1].all(n, n > 0) && n > 0", "")
	requireTypeError(t, err, "Undefined variable 'n'")

	// Unknown macro name
	_, err = analyze(t, "[1].map(n, n > 0)", "")
	requireTypeError(t, err, "unknown macro")
}

func TestHasChecks(t *testing.T) {
	contractJSON := `{"inputs": {"user": {"name": "string"}}}`

	resultType, err := analyze(t, "has(user.name)", contractJSON)
	require.NoError(t, err)
	assert.Equal(t, types.Bool, resultType)

	// Intermediate property existence is not checked statically
	_, err = analyze(t, "has(user.missing)", contractJSON)
	assert.NoError(t, err)

	// The chain root must be bound
	_, err = analyze(t, "has(ghost.name)", contractJSON)
	requireTypeError(t, err, "Undefined variable 'ghost'")

	// The argument must be a property access
	_, err = analyze(t, "has(user)", contractJSON)
	requireTypeError(t, err, "property access")
}

func TestBuiltinChecks(t *testing.T) {
	tests := []struct {
		source   string
		contains string
	}{
		{`length(1)`, "must be string"},
		{`length("a", "b")`, "expects 1 argument"},
		{`startsWith("a")`, "expects 2 argument"},
		{`contains("a", 1)`, "must be string"},
		{`timestamp(1)`, "must be string"},
		{`frobnicate("x")`, "unknown function"},
	}

	for _, tt := range tests {
		_, err := analyze(t, tt.source, "")
		requireTypeError(t, err, tt.contains)
	}
}

func TestObjectOutputValidation(t *testing.T) {
	// Property-by-property match
	_, err := analyze(t,
		`({total: 100, label: "x"})`,
		`{"inputs": {}, "outputs": {"total": "int", "label": "string"}}`)
	assert.NoError(t, err)

	// First mismatching key is named
	_, err = analyze(t,
		`({total: "100", label: "x"})`,
		`{"inputs": {}, "outputs": {"total": "int", "label": "string"}}`)
	requireTypeError(t, err, "'total'")

	// Missing key is named
	_, err = analyze(t,
		`({label: "x"})`,
		`{"inputs": {}, "outputs": {"total": "int", "label": "string"}}`)
	requireTypeError(t, err, "'total'")

	// A zero-property object target accepts any object
	_, err = analyze(t,
		`({anything: 1})`,
		`{"inputs": {}, "outputs": {}}`)
	assert.NoError(t, err)

	// ... but not a non-object
	_, err = analyze(t, "42", `{"inputs": {}, "outputs": {}}`)
	requireTypeError(t, err, "Return type mismatch")

	// Extra properties on the result are tolerated
	_, err = analyze(t,
		`({total: 1, extra: true})`,
		`{"inputs": {}, "outputs": {"total": "int"}}`)
	assert.NoError(t, err)
}

func TestNestedMemberAccess(t *testing.T) {
	resultType, err := analyze(t,
		`user.address.city + "-" + user.company.address.zip`,
		`{"inputs": {"user": {
			"name": "string",
			"address": {"city": "string"},
			"company": {"address": {"zip": "string"}}
		}}}`)
	require.NoError(t, err)
	assert.Equal(t, types.String, resultType)
}

func TestMemberOnNonObject(t *testing.T) {
	_, err := analyze(t, "x.name", `{"inputs": {"x": "int"}}`)
	requireTypeError(t, err, "non-object")
}
