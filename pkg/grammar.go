package volt

import "fmt"

// Element is one atom of an Alternative: either a required/optional
// token-kind match, or a required/optional named rule reference.
type Element struct {
	// IsRule distinguishes a rule reference from a token requirement.
	IsRule bool

	// TokenKind is meaningful when !IsRule.
	TokenKind TokenKind

	// RuleName is meaningful when IsRule.
	RuleName string

	// Optional elements that fail to match are silently skipped without
	// consuming input; required elements that fail cause the enclosing
	// alternative to fail.
	Optional bool
}

// Tok builds a required token element.
func Tok(k TokenKind) Element { return Element{TokenKind: k} }

// OptTok builds an optional token element.
func OptTok(k TokenKind) Element { return Element{TokenKind: k, Optional: true} }

// Rule builds a required rule-reference element.
func Rule(name string) Element { return Element{IsRule: true, RuleName: name} }

// OptRule builds an optional rule-reference element.
func OptRule(name string) Element { return Element{IsRule: true, RuleName: name, Optional: true} }

// Alternative is an ordered, finite sequence of Elements.
type Alternative struct {
	Elements []Element
}

// Alt is the variadic construction helper for an Alternative; a caller
// could equally build the literal directly.
func Alt(elements ...Element) Alternative {
	return Alternative{Elements: elements}
}

// GrammarRule is a name plus an ordered list of alternatives. A rule
// succeeds when the first alternative that matches from the current
// position succeeds end-to-end (PEG-style ordered choice with full
// backtracking).
type GrammarRule struct {
	Name         string
	Alternatives []Alternative
}

// GrammarRegistry maps rule name to rule, built once at startup and shared
// by reference among every Parser of a build. It is read-only after
// Freeze; construction is explicit rather than a lazily-initialized
// process-wide singleton.
type GrammarRegistry struct {
	rules  map[string]*GrammarRule
	frozen bool
}

// NewGrammarRegistry creates an empty, mutable registry. Call Define
// repeatedly, then Freeze, then share the result by reference.
func NewGrammarRegistry() *GrammarRegistry {
	return &GrammarRegistry{rules: make(map[string]*GrammarRule)}
}

// Define registers a rule under name, replacing alternatives if the same
// name is redefined before Freeze. Panics if called after Freeze; the
// registry is immutable once shared.
func (r *GrammarRegistry) Define(name string, alts ...Alternative) {
	if r.frozen {
		panic("volt: cannot Define rule '" + name + "' on a frozen GrammarRegistry")
	}
	r.rules[name] = &GrammarRule{Name: name, Alternatives: alts}
}

// Get looks up a rule by name. Returns nil if undefined.
func (r *GrammarRegistry) Get(name string) *GrammarRule {
	return r.rules[name]
}

// Freeze checks that every rule name referenced from any alternative is
// defined in the registry, then marks the registry read-only. It returns
// every dangling reference found so a caller can report all of them at
// once rather than failing on the first.
func (r *GrammarRegistry) Freeze() error {
	var missing []string
	seen := make(map[string]bool)

	for _, rule := range r.rules {
		for _, alt := range rule.Alternatives {
			for _, el := range alt.Elements {
				if !el.IsRule {
					continue
				}
				if _, ok := r.rules[el.RuleName]; !ok && !seen[el.RuleName] {
					seen[el.RuleName] = true
					missing = append(missing, el.RuleName)
				}
			}
		}
	}

	r.frozen = true

	if len(missing) > 0 {
		return fmt.Errorf("volt: grammar registry has %d undefined rule reference(s): %v", len(missing), missing)
	}
	return nil
}

// Names returns every defined rule name, primarily for diagnostics/tests.
func (r *GrammarRegistry) Names() []string {
	names := make([]string, 0, len(r.rules))
	for n := range r.rules {
		names = append(names, n)
	}
	return names
}
