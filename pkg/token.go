package volt

import "fmt"

// TokenKind is a closed enum identifying the lexical category of a Token.
type TokenKind uint16

//go:generate stringer -type=TokenKind -trimprefix=Token
const (
	TokenInvalid TokenKind = iota

	// Literals
	TokenNumber
	TokenString
	TokenIdentifier

	// Single punctuation
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenLAngle
	TokenRAngle
	TokenSlash
	TokenAmp
	TokenAt
	TokenBang
	TokenPercent
	TokenCaret
	TokenTilde
	TokenHash
	TokenStar
	TokenUnderscore
	TokenMinus
	TokenPlus
	TokenEq
	TokenPipe
	TokenColon
	TokenSemicolon
	TokenDot
	TokenComma
	TokenQuestion
	TokenDollar

	// Double punctuation
	TokenEqEq
	TokenBangEq
	TokenAmpEq
	TokenTildeEq
	TokenShl
	TokenShr
	TokenPipeEq
	TokenAmpAmp
	TokenPipePipe
	TokenCaretEq
	TokenLe
	TokenGe
	TokenPercentEq
	TokenFatArrow
	TokenPlusPlus
	TokenMinusMinus
	TokenArrow
	TokenPlusEq
	TokenStarEq
	TokenMinusEq
	TokenSlashEq
	TokenLineComment
	TokenBlockCommentStart
	TokenBlockCommentEnd
	TokenDotDot
	TokenColonColon

	// Triple punctuation
	TokenDotDotEq
	TokenShlEq
	TokenShrEq

	// Keywords
	TokenI8Kw
	TokenI16Kw
	TokenI32Kw
	TokenI64Kw
	TokenI128Kw
	TokenU8Kw
	TokenU16Kw
	TokenU32Kw
	TokenU64Kw
	TokenU128Kw
	TokenF16Kw
	TokenF32Kw
	TokenF64Kw
	TokenF128Kw
	TokenBoolKw
	TokenIsizeKw
	TokenUsizeKw
	TokenTypeKw
	TokenCstrKw
	TokenStrKw
	TokenVarKw
	TokenValKw
	TokenStaticKw
	TokenAttachKw
	TokenStructKw
	TokenEnumKw
	TokenFnKw
	TokenErrorKw
	TokenComptimeKw
	TokenReturnKw
	TokenBreakKw
	TokenContinueKw
	TokenInternalKw
	TokenPublicKw
	TokenTraitKw
	TokenAsyncKw
	TokenTrueKw
	TokenFalseKw
	TokenExternKw
	TokenExportKw
	TokenNamespaceKw
	TokenUseKw
	TokenThisKw
	TokenMoveKw
	TokenCopyKw
	TokenIfKw
	TokenElseKw
	TokenForKw
	TokenWhileKw
	TokenLoopKw
	TokenTryKw
	TokenCatchKw
	TokenInKw
	TokenNullKw
	TokenSuspendKw
	TokenResumeKw
	TokenDeferKw
	TokenAsKw

	// Sentinel, never produced by the lexer.
	TokenEOF
)

// keywordTable holds every reserved word. Lookup happens once an
// identifier has been fully consumed.
var keywordTable = map[string]TokenKind{
	"i8": TokenI8Kw, "i16": TokenI16Kw, "i32": TokenI32Kw, "i64": TokenI64Kw, "i128": TokenI128Kw,
	"u8": TokenU8Kw, "u16": TokenU16Kw, "u32": TokenU32Kw, "u64": TokenU64Kw, "u128": TokenU128Kw,
	"f16": TokenF16Kw, "f32": TokenF32Kw, "f64": TokenF64Kw, "f128": TokenF128Kw,
	"bool": TokenBoolKw, "isize": TokenIsizeKw, "usize": TokenUsizeKw,
	"type": TokenTypeKw, "cstr": TokenCstrKw, "str": TokenStrKw,
	"var": TokenVarKw, "val": TokenValKw, "static": TokenStaticKw,
	"attach": TokenAttachKw, "struct": TokenStructKw, "enum": TokenEnumKw, "fn": TokenFnKw,
	"error": TokenErrorKw, "comptime": TokenComptimeKw,
	"return": TokenReturnKw, "break": TokenBreakKw, "continue": TokenContinueKw,
	"internal": TokenInternalKw, "public": TokenPublicKw,
	"trait": TokenTraitKw, "async": TokenAsyncKw,
	"true": TokenTrueKw, "false": TokenFalseKw,
	"extern": TokenExternKw, "export": TokenExportKw,
	"namespace": TokenNamespaceKw, "use": TokenUseKw, "this": TokenThisKw,
	"move": TokenMoveKw, "copy": TokenCopyKw,
	"if": TokenIfKw, "else": TokenElseKw, "for": TokenForKw, "while": TokenWhileKw, "loop": TokenLoopKw,
	"try": TokenTryKw, "catch": TokenCatchKw, "in": TokenInKw, "null": TokenNullKw,
	"suspend": TokenSuspendKw, "resume": TokenResumeKw, "defer": TokenDeferKw, "as": TokenAsKw,
}

// tripleOperators must be checked before doubles, and doubles before
// singles, to get maximal-munch disambiguation right.
var tripleOperators = map[string]TokenKind{
	"..=": TokenDotDotEq,
	"<<=": TokenShlEq,
	">>=": TokenShrEq,
}

var doubleOperators = map[string]TokenKind{
	"==": TokenEqEq, "!=": TokenBangEq, "<=": TokenLe, ">=": TokenGe,
	"<<": TokenShl, ">>": TokenShr, "&&": TokenAmpAmp, "||": TokenPipePipe,
	"::": TokenColonColon, "..": TokenDotDot,
	"+=": TokenPlusEq, "-=": TokenMinusEq, "*=": TokenStarEq, "/=": TokenSlashEq,
	"%=": TokenPercentEq, "&=": TokenAmpEq, "|=": TokenPipeEq, "^=": TokenCaretEq,
	"~=": TokenTildeEq, "->": TokenArrow, "=>": TokenFatArrow,
	"++": TokenPlusPlus, "--": TokenMinusMinus,
}

var singleOperators = map[byte]TokenKind{
	'(': TokenLParen, ')': TokenRParen, '[': TokenLBracket, ']': TokenRBracket,
	'{': TokenLBrace, '}': TokenRBrace, '<': TokenLAngle, '>': TokenRAngle,
	'/': TokenSlash, '&': TokenAmp, '@': TokenAt, '!': TokenBang, '%': TokenPercent,
	'^': TokenCaret, '~': TokenTilde, '#': TokenHash, '*': TokenStar, '_': TokenUnderscore,
	'-': TokenMinus, '+': TokenPlus, '=': TokenEq, '|': TokenPipe, ':': TokenColon,
	';': TokenSemicolon, '.': TokenDot, ',': TokenComma, '?': TokenQuestion, '$': TokenDollar,
}

// Position records a 1-based line/column pair inside a source file.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit: its kind, the raw lexeme bytes backing it,
// and its exact source provenance. Tokens are immutable once created and are
// never mutated after the lexer hands them off.
type Token struct {
	Kind     TokenKind
	Lexeme   string
	File     string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Position)
}

// IsKeyword reports whether kind names one of the reserved words in the
// keyword table, as opposed to an identifier or punctuation.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenI8Kw && k <= TokenAsKw
}

// String gives a readable name for diagnostics and logging without needing
// `stringer`-generated tables wired into this file. The name table covers
// every kind: punctuation and operators by their spelling, keywords as
// "<word>_KW".
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", uint16(k))
}

var tokenKindNames = buildTokenKindNames()

func buildTokenKindNames() map[TokenKind]string {
	names := map[TokenKind]string{
		TokenInvalid: "INVALID", TokenEOF: "EOF",
		TokenNumber: "NUMBER", TokenString: "STRING", TokenIdentifier: "IDENTIFIER",
		TokenLParen: "(", TokenRParen: ")", TokenLBracket: "[", TokenRBracket: "]",
		TokenLBrace: "{", TokenRBrace: "}", TokenLAngle: "<", TokenRAngle: ">",
		TokenSlash: "/", TokenAmp: "&", TokenAt: "@", TokenBang: "!", TokenPercent: "%",
		TokenCaret: "^", TokenTilde: "~", TokenHash: "#", TokenStar: "*", TokenUnderscore: "_",
		TokenMinus: "-", TokenPlus: "+", TokenEq: "=", TokenPipe: "|", TokenColon: ":",
		TokenSemicolon: ";", TokenDot: ".", TokenComma: ",", TokenQuestion: "?", TokenDollar: "$",
		TokenEqEq: "==", TokenBangEq: "!=", TokenAmpEq: "&=", TokenTildeEq: "~=",
		TokenShl: "<<", TokenShr: ">>", TokenPipeEq: "|=", TokenAmpAmp: "&&", TokenPipePipe: "||",
		TokenCaretEq: "^=", TokenLe: "<=", TokenGe: ">=", TokenPercentEq: "%=", TokenFatArrow: "=>",
		TokenPlusPlus: "++", TokenMinusMinus: "--", TokenArrow: "->", TokenPlusEq: "+=",
		TokenStarEq: "*=", TokenMinusEq: "-=", TokenSlashEq: "/=",
		TokenLineComment: "LINE_COMMENT", TokenBlockCommentStart: "/*", TokenBlockCommentEnd: "*/",
		TokenDotDot: "..", TokenColonColon: "::",
		TokenDotDotEq: "..=", TokenShlEq: "<<=", TokenShrEq: ">>=",
	}
	for kw, kind := range keywordTable {
		names[kind] = kw + "_KW"
	}
	return names
}
