package volt

import (
	"fmt"

	"go.uber.org/zap"
)

// EntryRule is the grammar's start symbol.
const EntryRule = "unit"

// Parser interprets a GrammarRegistry against a token vector using
// top-down, ordered-choice backtracking: a PEG interpreter, not an
// LL/LR table parser. A Parser is single-use and per translation unit.
type Parser struct {
	filename string
	tokens   []Token
	registry *GrammarRegistry
	sink     *DiagnosticSink
	alloc    Allocator
	log      *zap.Logger

	current int

	furthestPos int
	furthestMsg string
	reported    bool

	root *CSTNode
}

// NewParser builds a parser over a fixed token vector against registry.
// registry is shared by reference and must already be frozen.
func NewParser(tokens []Token, filename string, registry *GrammarRegistry, sink *DiagnosticSink, alloc Allocator, log *zap.Logger) *Parser {
	if alloc == nil {
		alloc = DefaultAllocator{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Parser{
		filename: filename,
		tokens:   tokens,
		registry: registry,
		sink:     sink,
		alloc:    alloc,
		log:      log,
	}
}

// Parse interprets the grammar starting at EntryRule and returns the CST
// root. A nil root means the unit parse failed; exactly one diagnostic was
// pushed to the sink describing the furthest-progress failure.
func (p *Parser) Parse() *CSTNode {
	return p.ParseAs(EntryRule)
}

// ParseAs parses the whole token vector against the named rule instead of
// the default start symbol, with the same all-tokens-consumed requirement
// and single-diagnostic failure policy as Parse. Useful for exercising one
// corner of the grammar in isolation.
func (p *Parser) ParseAs(ruleName string) *CSTNode {
	p.log.Debug("parser.parse.begin", zap.String("file", p.filename), zap.String("rule", ruleName), zap.Int("tokens", len(p.tokens)))

	rule := p.registry.Get(ruleName)
	if rule == nil {
		p.reportAt(0, fmt.Sprintf("grammar registry has no '%s' rule defined", ruleName))
		return nil
	}

	root := p.parseRule(rule)
	if root == nil {
		p.report()
		return nil
	}

	if p.current < len(p.tokens) {
		p.trackFailure(p.current, "trailing input after end of unit")
		p.report()
		return nil
	}

	p.root = root
	p.log.Info("parser.parse.end", zap.String("file", p.filename), zap.String("root_rule", root.RuleName))
	return root
}

// Root returns the CST root produced by the last successful Parse call, or
// nil.
func (p *Parser) Root() *CSTNode {
	return p.root
}

func (p *Parser) currentToken() (Token, bool) {
	if p.current >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.current], true
}

// parseRule tries every alternative of rule in declaration order, returning
// the first that succeeds end-to-end.
func (p *Parser) parseRule(rule *GrammarRule) *CSTNode {
	for i := range rule.Alternatives {
		if node := p.tryAlternative(rule, i); node != nil {
			return node
		}
	}

	p.trackFailure(p.current, fmt.Sprintf("failed to parse '%s'", rule.Name))
	return nil
}

// tryAlternative attempts one alternative of rule, backtracking to the
// checkpoint position on any required-element failure.
func (p *Parser) tryAlternative(rule *GrammarRule, altIndex int) *CSTNode {
	checkpoint := p.current
	alt := rule.Alternatives[altIndex]

	parent := newExpressionNode(rule.Name)
	if len(alt.Elements) == 0 {
		// Epsilon alternative: succeeds immediately, consuming nothing.
		parent.addChild(newEmptyNode())
		return parent
	}

	for _, el := range alt.Elements {
		child := p.matchElement(el)

		if child == nil {
			if el.Optional {
				continue
			}
			p.current = checkpoint
			return nil
		}

		parent.addChild(child)
	}

	return parent
}

// matchElement matches a single Element against the current position,
// without backtracking itself; backtracking across a whole alternative is
// tryAlternative's job.
func (p *Parser) matchElement(el Element) *CSTNode {
	if el.IsRule {
		return p.parseSubrule(el.RuleName)
	}
	return p.matchToken(el.TokenKind)
}

// parseSubrule looks up a named rule and recurses into it. An unknown rule
// name can't happen once the registry has been Frozen successfully, but is
// handled defensively rather than panicking mid-parse.
func (p *Parser) parseSubrule(name string) *CSTNode {
	rule := p.registry.Get(name)
	if rule == nil {
		p.trackFailure(p.current, fmt.Sprintf("unknown rule '%s'", name))
		return nil
	}

	return p.parseRule(rule)
}

// matchToken matches a single required token kind, advancing on success.
func (p *Parser) matchToken(expected TokenKind) *CSTNode {
	tok, ok := p.currentToken()
	if !ok {
		p.trackFailure(p.current, fmt.Sprintf("expected %s, found end of input", expected))
		return nil
	}

	if tok.Kind != expected {
		p.trackFailure(p.current, fmt.Sprintf("expected %s, found %s", expected, tok.Kind))
		return nil
	}

	p.current++
	return newTokenNode(tok)
}

// trackFailure records the deepest token index reached by any failed
// alternative, along with a short message. Only the single furthest
// position survives; shallower failures are silently discarded.
func (p *Parser) trackFailure(pos int, message string) {
	if pos >= p.furthestPos {
		p.furthestPos = pos
		p.furthestMsg = message
		p.reported = false
	}
}

// report emits exactly one diagnostic for the furthest-progress failure,
// located at the token at the furthest-failure index (or the previous
// token, if the failure is past end-of-input). One diagnostic per failed
// parse: calling report again without an intervening trackFailure is a
// no-op.
func (p *Parser) report() {
	if p.reported {
		return
	}
	p.reported = true
	p.reportAt(p.furthestPos, p.furthestMsg)
}

func (p *Parser) reportAt(pos int, message string) {
	if p.sink == nil {
		return
	}

	var loc Position
	if pos < len(p.tokens) {
		loc = p.tokens[pos].Position
	} else if pos > 0 && pos-1 < len(p.tokens) {
		loc = p.tokens[pos-1].Position
	}

	p.sink.Push(Diagnostic{
		Severity: SeverityError,
		File:     p.filename,
		Line:     loc.Line,
		Column:   loc.Column,
		Message:  message,
	})

	p.log.Debug("parser.diagnostic", zap.String("file", p.filename), zap.String("message", message), zap.Int("token_index", pos))
}
