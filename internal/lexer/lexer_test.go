package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `let d: int = 0;
if (is_vip) { d = 50; }
base_price - d
`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"let", LET},
		{"d", IDENT},
		{":", COLON},
		{"int", TYPE_INT},
		{"=", EQUALS},
		{"0", NUMBER},
		{";", SEMICOLON},
		{"if", IF},
		{"(", LPAREN},
		{"is_vip", IDENT},
		{")", RPAREN},
		{"{", LBRACE},
		{"d", IDENT},
		{"=", EQUALS},
		{"50", NUMBER},
		{";", SEMICOLON},
		{"}", RBRACE},
		{"base_price", IDENT},
		{"-", MINUS},
		{"d", IDENT},
		{"", EOF},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `let if else true false in int string bool date`

	tests := []TokenType{LET, IF, ELSE, TRUE, FALSE, IN, TYPE_INT, TYPE_STRING, TYPE_BOOL, TYPE_DATE, EOF}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	l := New(`If LET True`)
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != IDENT {
			t.Fatalf("token %d: expected IDENT, got %q (literal=%q)", i, tok.Type, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `= == != > >= < <= && || ! + - * / . , : ; ( ) [ ] { }`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"=", EQUALS},
		{"==", EQ_EQ},
		{"!=", BANG_EQ},
		{">", GREATER},
		{">=", GREATER_EQ},
		{"<", LESS},
		{"<=", LESS_EQ},
		{"&&", AND},
		{"||", OR},
		{"!", BANG},
		{"+", PLUS},
		{"-", MINUS},
		{"*", MULT},
		{"/", DIV},
		{".", DOT},
		{",", COMMA},
		{":", COLON},
		{";", SEMICOLON},
		{"(", LPAREN},
		{")", RPAREN},
		{"[", LBRACKET},
		{"]", RBRACKET},
		{"{", LBRACE},
		{"}", RBRACE},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestMaximalMunch(t *testing.T) {
	// ">=" must not lex as ">" "=", and "==" must not lex as "=" "="
	l := New(`a>=b==c`)

	expected := []TokenType{IDENT, GREATER_EQ, IDENT, EQ_EQ, IDENT, EOF}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %q, got %q (literal=%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"admin"`, "admin"},
		{`""`, ""},
		{`"Wonderland-88081"`, "Wonderland-88081"},
		// Backslashes carry no escape meaning
		{`"a\nb"`, `a\nb`},
		{`"path\to\file"`, `path\to\file`},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Fatalf("input %q: expected STRING, got %q", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Fatalf("input %q: expected literal %q, got %q", tt.input, tt.expected, tok.Literal)
		}
		if len(l.Errors()) != 0 {
			t.Fatalf("input %q: unexpected errors: %v", tt.input, l.Errors())
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"never closed`)
	tok := l.NextToken()

	if tok.Type != STRING {
		t.Fatalf("expected STRING token, got %q", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
	if l.Errors()[0].Message != "unterminated string literal" {
		t.Fatalf("unexpected error message: %q", l.Errors()[0].Message)
	}
}

func TestLineComments(t *testing.T) {
	input := `// leading comment
1 // trailing comment
// another
2`

	l := New(input)

	tok := l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "1" {
		t.Fatalf("expected NUMBER 1, got %q (literal=%q)", tok.Type, tok.Literal)
	}
	if tok.Pos.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Pos.Line)
	}

	tok = l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "2" {
		t.Fatalf("expected NUMBER 2, got %q (literal=%q)", tok.Type, tok.Literal)
	}
	if tok.Pos.Line != 4 {
		t.Fatalf("expected line 4, got %d", tok.Pos.Line)
	}
}

func TestLineCounting(t *testing.T) {
	input := "a\nb\n\nc"
	l := New(input)

	expected := []struct {
		literal string
		line    int
	}{
		{"a", 1},
		{"b", 2},
		{"c", 4},
	}

	for _, tt := range expected {
		tok := l.NextToken()
		if tok.Literal != tt.literal || tok.Pos.Line != tt.line {
			t.Fatalf("expected %q at line %d, got %q at line %d",
				tt.literal, tt.line, tok.Literal, tok.Pos.Line)
		}
	}
}

func TestLoneAmpersandAndPipe(t *testing.T) {
	for _, input := range []string{"a & b", "a | b"} {
		l := New(input)
		for tok := l.NextToken(); tok.Type != EOF; tok = l.NextToken() {
		}
		if len(l.Errors()) != 1 {
			t.Fatalf("input %q: expected 1 error, got %d", input, len(l.Errors()))
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("1 @ 2")

	tok := l.NextToken()
	if tok.Type != NUMBER {
		t.Fatalf("expected NUMBER, got %q", tok.Type)
	}

	tok = l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}

	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != EOF {
			t.Fatalf("call %d: expected EOF, got %q", i, tok.Type)
		}
	}
}
