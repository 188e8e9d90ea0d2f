package volt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeInsertRejectsDuplicateInSameScope(t *testing.T) {
	s := NewScope(ScopeGlobal, nil)
	assert.True(t, s.Insert(&Symbol{Name: "x", Kind: SymbolVariable}))
	assert.False(t, s.Insert(&Symbol{Name: "x", Kind: SymbolVariable}))
}

func TestScopeLookupWalksParentChain(t *testing.T) {
	parent := NewScope(ScopeGlobal, nil)
	parent.Insert(&Symbol{Name: "outer", Kind: SymbolFunction})

	child := NewScope(ScopeFunction, parent)
	child.Insert(&Symbol{Name: "inner", Kind: SymbolParam})

	assert.NotNil(t, child.Lookup("outer"))
	assert.NotNil(t, child.Lookup("inner"))
	assert.Nil(t, parent.Lookup("inner"))
}

func TestScopeLookupLocalDoesNotSeeParent(t *testing.T) {
	parent := NewScope(ScopeGlobal, nil)
	parent.Insert(&Symbol{Name: "outer", Kind: SymbolFunction})
	child := NewScope(ScopeFunction, parent)

	_, ok := child.LookupLocal("outer")
	assert.False(t, ok)
}

func TestNewScopeAssignsDistinctIDs(t *testing.T) {
	a := NewScope(ScopeGlobal, nil)
	b := NewScope(ScopeGlobal, nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestScopeOrderedPreservesInsertionOrder(t *testing.T) {
	s := NewScope(ScopeGlobal, nil)
	for _, name := range []string{"c", "a", "b"} {
		assert.True(t, s.Insert(&Symbol{Name: name, Kind: SymbolVariable}))
	}

	got := make([]string, 0, 3)
	for _, sym := range s.Ordered() {
		got = append(got, sym.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestScopeOrderedOmitsRejectedDuplicates(t *testing.T) {
	s := NewScope(ScopeGlobal, nil)
	assert.True(t, s.Insert(&Symbol{Name: "x", Kind: SymbolVariable}))
	assert.False(t, s.Insert(&Symbol{Name: "x", Kind: SymbolFunction}))

	assert.Len(t, s.Ordered(), 1)
	assert.Equal(t, SymbolVariable, s.Ordered()[0].Kind)
}

func TestScopeInsertSetsOwnerBackPointer(t *testing.T) {
	s := NewScope(ScopeBlock, NewScope(ScopeGlobal, nil))
	sym := &Symbol{Name: "x", Kind: SymbolVariable}
	assert.True(t, s.Insert(sym))

	assert.Same(t, s, sym.Scope)
	found, ok := sym.Scope.LookupLocal("x")
	assert.True(t, ok)
	assert.Same(t, sym, found)
}

func TestNewScopeLinksChildIntoParent(t *testing.T) {
	parent := NewScope(ScopeGlobal, nil)
	child := NewScope(ScopeFunction, parent)

	assert.Same(t, parent, child.Parent)
	assert.Len(t, parent.Children, 1)
	assert.Same(t, child, parent.Children[0])
}

func TestScopeShadowingAcrossNestedScopes(t *testing.T) {
	parent := NewScope(ScopeGlobal, nil)
	parent.Insert(&Symbol{Name: "x", Kind: SymbolVariable, Type: &TypeInfo{Kind: TypeI32}})

	child := NewScope(ScopeBlock, parent)
	child.Insert(&Symbol{Name: "x", Kind: SymbolVariable, Type: &TypeInfo{Kind: TypeBool}})

	assert.Equal(t, TypeBool, child.Lookup("x").Type.Kind)
	assert.Equal(t, TypeI32, parent.Lookup("x").Type.Kind)
}
