package lexer

import "testing"

// BenchmarkNextToken measures tokenization throughput on a realistic rule.
func BenchmarkNextToken(b *testing.B) {
	input := `let discount: int = 0;
if (is_vip && base_price > 100) {
	discount = 50;
} else {
	discount = 10;
}
// final price
base_price - discount`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := New(input)
		for {
			tok := l.NextToken()
			if tok.Type == EOF {
				break
			}
		}
	}
}
