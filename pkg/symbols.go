package volt

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SymbolKind classifies a Symbol by the declaration form that introduced it.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolValue               // `val`, an immutable binding
	SymbolStatic
	SymbolFunction
	SymbolParam
	SymbolStruct
	SymbolEnum
	SymbolError
	SymbolTrait
	SymbolEnumVariant
	SymbolGenericParam
	SymbolNamespace
)

// Symbol is one named entity owned by exactly one Scope: its kind, its
// resolved type, the CST node that declared it, and the declaration-site
// flags later passes consult when checking a use against its declaration.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type *TypeInfo

	// Decl is the CST node that introduced this symbol; nil for symbols
	// synthesized without a declaration site (e.g. implicit receivers).
	Decl *CSTNode

	// Scope points back at the scope that owns this symbol. Set by
	// Scope.Insert; nil for symbols held only inside a TypeInfo (struct
	// fields, enum variants).
	Scope *Scope

	Params   []*Symbol // SymbolFunction: parameter symbols, in order
	Generics []*Symbol // SymbolFunction: generic-parameter symbols, in order

	// Members is the child scope holding a namespace's own declarations,
	// set only for SymbolNamespace so later passes can re-enter it.
	Members *Scope

	Comptime bool
	Async    bool
	Extern   bool
	Mutable  bool // true for var/param, false for val/static
	Static   bool // `static` qualifier on a param or declaration

	Resolved bool // true once type resolution has filled in Type

	Line   int
	Column int
}

// ScopeKind names the kind of lexical region a Scope represents.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeLoop
	ScopeMatch
)

// Scope is one lexical binding region. Scopes form a tree rooted at the
// single global scope a SemanticAnalyzer builds once per build and shares
// across every translation unit, which is what lets a use in one file
// forward-reference a declaration in another.
//
// Symbols are held twice: a map for lookup and an ordered slice preserving
// insertion order, so sibling symbols can be enumerated in declaration
// order. ID exists purely for structured-logging correlation; it plays no
// part in lookup or insertion.
type Scope struct {
	ID       uuid.UUID
	Kind     ScopeKind
	Parent   *Scope
	Children []*Scope

	symbols map[string]*Symbol
	ordered []*Symbol

	// ReturnType is set on ScopeFunction scopes so a nested return
	// statement can be checked without threading the function's type down
	// through every recursive call.
	ReturnType *TypeInfo
}

// NewScope creates a child scope of parent (pass nil for the root global
// scope).
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	s := &Scope{
		ID:      uuid.New(),
		Kind:    kind,
		Parent:  parent,
		symbols: make(map[string]*Symbol),
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Insert binds sym in s, rejecting a redeclaration within the SAME scope
// only; a name already bound in a parent scope is shadowed, not rejected.
// On success the symbol's Scope back-pointer is set to s.
func (s *Scope) Insert(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	sym.Scope = s
	s.symbols[sym.Name] = sym
	s.ordered = append(s.ordered, sym)
	return true
}

// Lookup walks from s up through every parent, returning the nearest bound
// Symbol for name, or nil if unbound anywhere in the chain.
func (s *Scope) Lookup(name string) *Symbol {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal looks up name only within s itself, ignoring parents,
// used by the analyzer's later passes to find a declaration's own symbol
// and by tests.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Ordered returns s's own symbols in insertion order.
func (s *Scope) Ordered() []*Symbol {
	return s.ordered
}

// logFields renders a Scope as structured zap fields for the analyzer's
// debug-level scope-push logging.
func (s *Scope) logFields() []zap.Field {
	return []zap.Field{
		zap.String("scope_id", s.ID.String()),
		zap.Int("scope_kind", int(s.Kind)),
	}
}
