package volt

import (
	"go.uber.org/zap"
)

// Lexer converts a source byte buffer into a token vector with exact
// line/column provenance. A Lexer is single-use and is not safe for
// concurrent use; callers that want to lex multiple translation units
// concurrently should construct one Lexer per unit, the way RunUnits does.
type Lexer struct {
	filename string
	src      []byte
	pos      int
	line     int
	column   int

	sink  *DiagnosticSink
	alloc Allocator
	log   *zap.Logger

	tokens []Token
}

// NewLexer builds a lexer over source bytes. sink and alloc are the
// collaborator contracts threaded through every component; a nil logger is
// replaced with a no-op logger so callers never need a nil check.
func NewLexer(source []byte, filename string, sink *DiagnosticSink, alloc Allocator, log *zap.Logger) *Lexer {
	if alloc == nil {
		alloc = DefaultAllocator{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Lexer{
		filename: filename,
		src:      source,
		line:     1,
		column:   1,
		sink:     sink,
		alloc:    alloc,
		log:      log,
	}
}

// Run lexes the entire buffer synchronously and returns the resulting token
// vector. Lexing always "succeeds" in the status sense: unknown bytes are
// reported as warnings to the sink and skipped, never surfaced as a Go
// error.
func (l *Lexer) Run() []Token {
	l.log.Debug("lexer.run.begin", zap.String("file", l.filename), zap.Int("bytes", len(l.src)))

	for !l.atEnd() {
		l.lexOne()
	}

	l.log.Info("lexer.run.end", zap.String("file", l.filename), zap.Int("tokens", len(l.tokens)))
	return l.tokens
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

// peekAt returns the byte at pos+offset, or 0 if that position is past the
// end of the buffer. 0 never collides with a real Volt source byte under
// the ASCII-only input contract.
func (l *Lexer) peekAt(offset int) byte {
	idx := l.pos + offset
	if idx < 0 || idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

// advance consumes one byte. Every consumed byte moves column by one; a
// consumed LF resets column to 1 and increments line.
func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++

	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	return c
}

func (l *Lexer) here() Position {
	return Position{Line: l.line, Column: l.column}
}

func (l *Lexer) emit(kind TokenKind, lexeme string, start Position) {
	l.tokens = append(l.tokens, Token{
		Kind:     kind,
		Lexeme:   lexeme,
		File:     l.filename,
		Position: start,
	})
}

func (l *Lexer) lexOne() {
	switch c := l.peek(); {
	case c == ' ' || c == '\t' || c == '\r':
		l.advance()
	case c == '\n':
		l.advance()
	case c >= '0' && c <= '9':
		l.lexNumber()
	case c == '"' || c == '\'':
		l.lexString(c)
	case isIdentStart(c):
		l.lexIdentifier()
	default:
		l.lexOperatorOrComment()
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// lexNumber consumes [0-9]+ with an optional fractional part. The fractional
// part is deliberately NOT consumed when the dot is itself followed by
// another dot, so `1..5` tokenizes as NUMBER("1") DOT_DOT NUMBER("5") rather
// than eating the first dot into a malformed float.
func (l *Lexer) lexNumber() {
	start := l.here()
	startPos := l.pos

	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && l.peekAt(1) != '.' && isDigit(l.peekAt(1)) {
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	l.emit(TokenNumber, string(l.src[startPos:l.pos]), start)
}

// lexIdentifier consumes [A-Za-z_][A-Za-z0-9_]* and resolves it against the
// keyword table.
func (l *Lexer) lexIdentifier() {
	start := l.here()
	startPos := l.pos

	for isIdentCont(l.peek()) {
		l.advance()
	}

	lexeme := string(l.src[startPos:l.pos])
	if kind, ok := keywordTable[lexeme]; ok {
		l.emit(kind, lexeme, start)
		return
	}

	l.emit(TokenIdentifier, lexeme, start)
}

// lexString consumes bytes verbatim between matching quotes, tracking
// newlines for column accounting and ending at end-of-input if the string
// is never closed. Escape sequences are not interpreted; the lexeme stores
// the raw bytes.
func (l *Lexer) lexString(quote byte) {
	start := l.here()
	l.advance() // opening quote
	contentStart := l.pos

	for !l.atEnd() && l.peek() != quote {
		l.advance()
	}

	content := string(l.src[contentStart:l.pos])

	if !l.atEnd() {
		l.advance() // closing quote
	}

	l.emit(TokenString, content, start)
}

// lexOperatorOrComment matches punctuation by maximal-munch lookahead of up
// to two characters (for the triple forms, three), and carves out line and
// block comments, which are consumed and discarded rather than tokenized.
func (l *Lexer) lexOperatorOrComment() {
	start := l.here()

	if l.peek() == '/' && l.peekAt(1) == '/' {
		l.lexLineComment()
		return
	}
	if l.peek() == '/' && l.peekAt(1) == '*' {
		l.lexBlockComment()
		return
	}

	three := string(l.peekAt(0)) + string(l.peekAt(1)) + string(l.peekAt(2))
	if kind, ok := tripleOperators[three]; ok {
		l.advance()
		l.advance()
		l.advance()
		l.emit(kind, three, start)
		return
	}

	two := string(l.peekAt(0)) + string(l.peekAt(1))
	if kind, ok := doubleOperators[two]; ok {
		l.advance()
		l.advance()
		l.emit(kind, two, start)
		return
	}

	c := l.peek()
	if kind, ok := singleOperators[c]; ok {
		l.advance()
		l.emit(kind, string(c), start)
		return
	}

	// Unrecognized byte: warn, skip one byte, continue.
	l.advance()
	if l.sink != nil {
		l.sink.Push(Diagnostic{
			Severity: SeverityWarning,
			File:     l.filename,
			Line:     start.Line,
			Column:   start.Column,
			Message:  "unknown byte '" + string(c) + "'",
		})
	}
	l.log.Debug("lexer.unknown_byte", zap.String("file", l.filename), zap.Uint8("byte", c))
}

// lexLineComment consumes through end-of-line, not inclusive of the LF
// itself, which is left for the next lexOne call to account for correctly.
func (l *Lexer) lexLineComment() {
	l.advance() // first '/'
	l.advance() // second '/'

	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// lexBlockComment consumes through the matching `*/`, tracking newlines. An
// unterminated block comment consumes to end of input without a diagnostic.
func (l *Lexer) lexBlockComment() {
	l.advance() // '/'
	l.advance() // '*'

	for !l.atEnd() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}
