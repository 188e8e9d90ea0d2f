package volt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarRegistryFreezeDetectsDanglingReference(t *testing.T) {
	r := NewGrammarRegistry()
	r.Define("unit", Alt(Rule("missing_rule")))

	err := r.Freeze()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing_rule")
}

func TestGrammarRegistryFreezeAcceptsCompleteGraph(t *testing.T) {
	r := NewGrammarRegistry()
	r.Define("unit", Alt(Rule("inner")))
	r.Define("inner", Alt(Tok(TokenIdentifier)))

	assert.NoError(t, r.Freeze())
}

func TestGrammarRegistryDefinePanicsAfterFreeze(t *testing.T) {
	r := NewGrammarRegistry()
	r.Define("unit", Alt(Tok(TokenIdentifier)))
	assert.NoError(t, r.Freeze())

	assert.Panics(t, func() {
		r.Define("unit", Alt(Tok(TokenNumber)))
	})
}

func TestBuildGrammarProducesAFrozenCompleteRegistry(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)
	assert.NotNil(t, registry.Get(EntryRule))

	// Defining after BuildGrammar returned must panic: Freeze already ran.
	assert.Panics(t, func() {
		registry.Define("unit", Alt(Tok(TokenNumber)))
	})
}

// TestBuildGrammarEveryExpressionRungIsReachable spot-checks that the
// precedence ladder's rung names used by the analyzer's checkBinaryLadder
// walk are all present in the registry BuildGrammar produces.
func TestBuildGrammarEveryExpressionRungIsReachable(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	rungs := []string{
		"assignment_expr", "logical_or_expr", "logical_and_expr",
		"bitwise_or_expr", "bitwise_xor_expr", "bitwise_and_expr",
		"equality_expr", "relational_expr", "shift_expr", "range_expr",
		"additive_expr", "multiplicative_expr", "cast_expr",
		"unary_expr", "postfix_expr", "primary_expr",
	}
	for _, name := range rungs {
		assert.NotNil(t, registry.Get(name), "expected rung %q to be defined", name)
	}
}
