package volt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParserOrderedChoiceBacktracks(t *testing.T) {
	registry := NewGrammarRegistry()
	registry.Define("unit", Alt(Rule("choice")))
	registry.Define("choice", Alt(Tok(TokenIdentifier)), Alt(Tok(TokenLParen), Tok(TokenRParen)))
	assert.NoError(t, registry.Freeze())

	sink := NewDiagnosticSink()
	toks := []Token{{Kind: TokenLParen, Lexeme: "("}, {Kind: TokenRParen, Lexeme: ")"}}
	root := NewParser(toks, "t.volt", registry, sink, nil, nil).Parse()

	assert.NotNil(t, root)
	assert.False(t, sink.HasErrors())
}

func TestParserOptionalElementDoesNotConsume(t *testing.T) {
	registry := NewGrammarRegistry()
	registry.Define("unit", Alt(Rule("opt_suffix")))
	registry.Define("opt_suffix", Alt(Tok(TokenIdentifier), OptTok(TokenBang)))
	assert.NoError(t, registry.Freeze())

	sink := NewDiagnosticSink()
	toks := []Token{{Kind: TokenIdentifier, Lexeme: "x"}}
	root := NewParser(toks, "t.volt", registry, sink, nil, nil).Parse()

	assert.NotNil(t, root)
	sub := root.Find("opt_suffix")
	assert.NotNil(t, sub)
	assert.Len(t, sub.Children, 1)
}

func TestParserReportsSingleFurthestFailure(t *testing.T) {
	registry := NewGrammarRegistry()
	registry.Define("unit", Alt(Rule("paren_pair")))
	registry.Define("paren_pair", Alt(Tok(TokenLParen), Tok(TokenRParen)))
	assert.NoError(t, registry.Freeze())

	sink := NewDiagnosticSink()
	toks := []Token{{Kind: TokenLParen, Lexeme: "("}, {Kind: TokenIdentifier, Lexeme: "x"}}
	root := NewParser(toks, "t.volt", registry, sink, nil, nil).Parse()

	assert.Nil(t, root)
	assert.Equal(t, 1, sink.Len())
	assert.True(t, sink.HasErrors())
}

func TestParserTrailingInputFails(t *testing.T) {
	registry := NewGrammarRegistry()
	registry.Define("unit", Alt(Rule("single_ident")))
	registry.Define("single_ident", Alt(Tok(TokenIdentifier)))
	assert.NoError(t, registry.Freeze())

	sink := NewDiagnosticSink()
	toks := []Token{{Kind: TokenIdentifier, Lexeme: "x"}, {Kind: TokenIdentifier, Lexeme: "y"}}
	root := NewParser(toks, "t.volt", registry, sink, nil, nil).Parse()

	assert.Nil(t, root)
	assert.True(t, sink.HasErrors())
}

func TestParserLeavesProjectToContiguousInputSlice(t *testing.T) {
	registry := NewGrammarRegistry()
	registry.Define("unit", Alt(Rule("paren_pair")))
	registry.Define("paren_pair", Alt(Tok(TokenLParen), Tok(TokenRParen)))
	assert.NoError(t, registry.Freeze())

	sink := NewDiagnosticSink()
	toks := []Token{{Kind: TokenLParen, Lexeme: "("}, {Kind: TokenRParen, Lexeme: ")"}}
	root := NewParser(toks, "t.volt", registry, sink, nil, nil).Parse()

	assert.NotNil(t, root)
	assert.Equal(t, toks, root.Leaves())
}

// TestParserBuildGrammarFullUnit is a thin integration smoke test: lexing
// and parsing a small-but-real translation unit against the complete
// registry built by BuildGrammar, the same path pkg.Build drives.
func TestParserBuildGrammarFullUnit(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	src := `fn add(a: i32, b: i32) -> i32 {
		return a + b;
	}`

	sink := NewDiagnosticSink()
	toks := NewLexer([]byte(src), "add.volt", sink, nil, nil).Run()
	root := NewParser(toks, "add.volt", registry, sink, nil, nil).Parse()

	assert.False(t, sink.HasErrors(), "unexpected diagnostics: %v", sink.All())
	assert.NotNil(t, root)
	assert.Equal(t, EntryRule, root.RuleName)
}

func TestParserEmptyInputParsesAsEmptyUnit(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sink := NewDiagnosticSink()
	root := NewParser(nil, "empty.volt", registry, sink, nil, nil).Parse()

	assert.NotNil(t, root)
	assert.False(t, sink.HasErrors())
}

func TestParserForStatementWithParenthesizedHeader(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sink := NewDiagnosticSink()
	toks := NewLexer([]byte("for (i in 0..10) { }"), "loop.volt", sink, nil, nil).Run()
	root := NewParser(toks, "loop.volt", registry, sink, nil, nil).ParseAs("for_stmt")

	assert.NotNil(t, root, "diagnostics: %v", sink.All())
	assert.Equal(t, "for_stmt", root.RuleName)
	assert.False(t, sink.HasErrors())
}

func TestParserForStatementWithCaptureExpression(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sink := NewDiagnosticSink()
	toks := NewLexer([]byte("for x in xs |acc| { }"), "loop.volt", sink, nil, nil).Run()
	root := NewParser(toks, "loop.volt", registry, sink, nil, nil).ParseAs("for_stmt")

	assert.NotNil(t, root, "diagnostics: %v", sink.All())
	assert.NotNil(t, root.Find("for_pre_expr"))
}

// A returned bare primitive keyword is an expression: the statement's
// value subtree bottoms out in a primitive_type node.
func TestParserReturnOfTypeKeyword(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sink := NewDiagnosticSink()
	toks := NewLexer([]byte("return type;"), "ret.volt", sink, nil, nil).Run()
	assert.Equal(t, []TokenKind{TokenReturnKw, TokenTypeKw, TokenSemicolon},
		[]TokenKind{toks[0].Kind, toks[1].Kind, toks[2].Kind})

	root := NewParser(toks, "ret.volt", registry, sink, nil, nil).ParseAs("return_stmt")
	assert.NotNil(t, root, "diagnostics: %v", sink.All())

	node := root
	for node != nil && node.RuleName != "primitive_type" {
		var next *CSTNode
		for _, c := range node.Children {
			if c.Kind == CSTExpression {
				next = c
				break
			}
		}
		node = next
	}
	assert.NotNil(t, node, "expected a primitive_type node under return_stmt")
}

func TestParserFurthestFailurePointsAtOffendingToken(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	src := `fn f() -> i32 { return 1 + ; }`
	sink := NewDiagnosticSink()
	toks := NewLexer([]byte(src), "bad.volt", sink, nil, nil).Run()
	root := NewParser(toks, "bad.volt", registry, sink, nil, nil).Parse()

	assert.Nil(t, root)
	assert.Equal(t, 1, sink.Len(), "exactly one diagnostic, not a cascade")

	var semi Token
	for _, tok := range toks {
		if tok.Kind == TokenSemicolon {
			semi = tok
			break
		}
	}
	d := sink.All()[0]
	assert.Equal(t, semi.Position.Line, d.Line)
	assert.Equal(t, semi.Position.Column, d.Column)
}

func TestParserBuildGrammarReportsErrorOnMalformedUnit(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	src := `fn add(a: i32 b: i32) -> i32 { return a + b; }`

	sink := NewDiagnosticSink()
	toks := NewLexer([]byte(src), "bad.volt", sink, nil, nil).Run()
	root := NewParser(toks, "bad.volt", registry, sink, nil, nil).Parse()

	assert.Nil(t, root)
	assert.True(t, sink.HasErrors())
	assert.Equal(t, 1, sink.Len(), "exactly one diagnostic for the furthest failure")
}
