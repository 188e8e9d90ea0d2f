package volt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.volt.dev/internal/test"
)

func TestLexer(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		warn   bool
		expect []Token
	}{
		{
			name: "function skeleton",
			data: "fn main() {}",
			expect: []Token{
				{Kind: TokenFnKw, Lexeme: "fn"},
				{Kind: TokenIdentifier, Lexeme: "main"},
				{Kind: TokenLParen, Lexeme: "("},
				{Kind: TokenRParen, Lexeme: ")"},
				{Kind: TokenLBrace, Lexeme: "{"},
				{Kind: TokenRBrace, Lexeme: "}"},
			},
		},
		{
			name: "line comment is discarded",
			data: "fn//trailing\nmain",
			expect: []Token{
				{Kind: TokenFnKw, Lexeme: "fn"},
				{Kind: TokenIdentifier, Lexeme: "main"},
			},
		},
		{
			name: "block comment is discarded",
			data: "fn /* skip\nme */ main",
			expect: []Token{
				{Kind: TokenFnKw, Lexeme: "fn"},
				{Kind: TokenIdentifier, Lexeme: "main"},
			},
		},
		{
			name: "underscore-led identifier",
			data: "_tmp1",
			expect: []Token{
				{Kind: TokenIdentifier, Lexeme: "_tmp1"},
			},
		},
		{
			name: "inclusive range between identifiers",
			data: "a..=b",
			expect: []Token{
				{Kind: TokenIdentifier, Lexeme: "a"},
				{Kind: TokenDotDotEq, Lexeme: "..="},
				{Kind: TokenIdentifier, Lexeme: "b"},
			},
		},
		{
			name: "number does not eat a following range dot",
			data: "1..5",
			expect: []Token{
				{Kind: TokenNumber, Lexeme: "1"},
				{Kind: TokenDotDot, Lexeme: ".."},
				{Kind: TokenNumber, Lexeme: "5"},
			},
		},
		{
			name: "fractional number",
			data: "3.14",
			expect: []Token{
				{Kind: TokenNumber, Lexeme: "3.14"},
			},
		},
		{
			name: "empty string literal",
			data: "\"\"",
			expect: []Token{
				{Kind: TokenString, Lexeme: ""},
			},
		},
		{
			name: "unclosed string reaches end of input without crashing",
			data: "\"unclosed",
			warn: false,
			expect: []Token{
				{Kind: TokenString, Lexeme: "unclosed"},
			},
		},
		{
			name: "unknown byte is skipped with a warning",
			data: "`",
			warn: true,
			expect: []Token{},
		},
		{
			name: "triple operator beats double and single",
			data: "<<= << <",
			expect: []Token{
				{Kind: TokenShlEq, Lexeme: "<<="},
				{Kind: TokenShl, Lexeme: "<<"},
				{Kind: TokenLAngle, Lexeme: "<"},
			},
		},
		{
			name: "keyword table resolves reserved words",
			data: "var val static return as",
			expect: []Token{
				{Kind: TokenVarKw, Lexeme: "var"},
				{Kind: TokenValKw, Lexeme: "val"},
				{Kind: TokenStaticKw, Lexeme: "static"},
				{Kind: TokenReturnKw, Lexeme: "return"},
				{Kind: TokenAsKw, Lexeme: "as"},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sink := NewDiagnosticSink()
			toks := NewLexer([]byte(c.data), "test.volt", sink, nil, nil).Run()

			assert.Equal(t, len(c.expect), len(toks))
			for i := range c.expect {
				if i >= len(toks) {
					break
				}
				assert.Equal(t, c.expect[i].Kind, toks[i].Kind, "token %d kind", i)
				assert.Equal(t, c.expect[i].Lexeme, toks[i].Lexeme, "token %d lexeme", i)
			}

			if c.warn {
				assert.True(t, sink.Len() > 0)
				assert.False(t, sink.HasErrors())
			} else {
				assert.False(t, sink.HasErrors())
			}
		})
	}
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	sink := NewDiagnosticSink()
	toks := NewLexer([]byte("fn\nmain"), "test.volt", sink, nil, nil).Run()

	assert.Equal(t, Position{Line: 1, Column: 1}, toks[0].Position)
	assert.Equal(t, Position{Line: 2, Column: 1}, toks[1].Position)
}

func TestLexerBlockCommentSpanningNewlinesKeepsAccounting(t *testing.T) {
	toks := NewLexer([]byte("/* a\nb */ x"), "test.volt", nil, nil, nil).Run()

	assert.Len(t, toks, 1)
	assert.Equal(t, Position{Line: 2, Column: 6}, toks[0].Position)
}

func TestLexerStringSpanningNewlinesKeepsAccounting(t *testing.T) {
	toks := NewLexer([]byte("\"a\nb\" x"), "test.volt", nil, nil, nil).Run()

	assert.Len(t, toks, 2)
	assert.Equal(t, "a\nb", toks[0].Lexeme)
	assert.Equal(t, Position{Line: 2, Column: 4}, toks[1].Position)
}

func TestLexerEmptyInputProducesNoTokens(t *testing.T) {
	toks := NewLexer(nil, "empty.volt", nil, nil, nil).Run()
	assert.Empty(t, toks)
}

// benchResult pins the lexer's output at package scope so the compiler
// can't optimize the call away.
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		data := test.GetRandomTokens(size)
		b.StartTimer()

		benchResult = NewLexer([]byte(data), "bench.volt", nil, nil, nil).Run()
	}
}

func BenchmarkLexer100(b *testing.B)    { benchmarkLexer(100, b) }
func BenchmarkLexer1000(b *testing.B)   { benchmarkLexer(1000, b) }
func BenchmarkLexer10000(b *testing.B)  { benchmarkLexer(10000, b) }
func BenchmarkLexer100000(b *testing.B) { benchmarkLexer(100000, b) }
