package volt

import (
	"fmt"

	"go.uber.org/zap"
)

// Unit pairs a parsed CST root with the filename it came from.
type Unit struct {
	Root     *CSTNode
	Filename string
}

// SemanticAnalyzer runs three strictly staged passes over every Unit of a
// build: declaration collection, type resolution, and expression checking.
// One global Scope is shared across all units, so a declaration in one file
// resolves forward references from another; each pass finishes for every
// unit before the next begins.
type SemanticAnalyzer struct {
	sink  *DiagnosticSink
	alloc Allocator
	log   *zap.Logger

	global     *Scope
	builtins   map[TypeKind]*TypeInfo
	unresolved []*Symbol

	currentFile string
	errorCount  int
}

// NewSemanticAnalyzer builds an analyzer with a fresh global scope and
// primitive type cache.
func NewSemanticAnalyzer(sink *DiagnosticSink, alloc Allocator, log *zap.Logger) *SemanticAnalyzer {
	if alloc == nil {
		alloc = DefaultAllocator{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SemanticAnalyzer{
		sink:     sink,
		alloc:    alloc,
		log:      log,
		global:   NewScope(ScopeGlobal, nil),
		builtins: newBuiltinTypeCache(),
	}
}

// Global exposes the shared global scope, primarily for tests.
func (a *SemanticAnalyzer) Global() *Scope { return a.global }

// ErrorCount reports how many error-severity diagnostics Analyze has pushed
// so far, across every pass it has run.
func (a *SemanticAnalyzer) ErrorCount() int { return a.errorCount }

// Analyze runs Pass 1 across all units, then Pass 2, then Pass 3. Every
// pass collects all of its findings rather than stopping at the first.
// Returns true if no error-severity diagnostic was produced.
func (a *SemanticAnalyzer) Analyze(units []Unit) bool {
	a.log.Info("analyzer.begin", zap.Int("units", len(units)))

	for _, u := range units {
		a.currentFile = u.Filename
		a.collectDeclarations(u.Root, a.global)
	}
	a.log.Debug("analyzer.pass1.done", zap.Int("collected", len(a.unresolved)))

	for _, u := range units {
		a.currentFile = u.Filename
		a.resolveTypes(u.Root, a.global)
	}
	remaining := 0
	for _, sym := range a.unresolved {
		if !sym.Resolved {
			remaining++
		}
	}
	a.log.Debug("analyzer.pass2.done", zap.Int("unresolved", remaining))

	for _, u := range units {
		a.currentFile = u.Filename
		a.checkExpressions(u.Root, a.global)
	}

	ok := a.errorCount == 0
	a.log.Info("analyzer.end", zap.Bool("ok", ok), zap.Int("error_count", a.errorCount))
	return ok
}

func (a *SemanticAnalyzer) errorAt(node *CSTNode, format string, args ...any) {
	a.errorCount++
	pos := firstPosition(node)
	a.sink.Push(Diagnostic{
		Severity: SeverityError,
		File:     a.currentFile,
		Line:     pos.Line,
		Column:   pos.Column,
		Message:  fmt.Sprintf(format, args...),
	})
}

// firstPosition returns the source position of node's first leaf token, the
// zero Position if node has none.
func firstPosition(node *CSTNode) Position {
	leaves := node.Leaves()
	if len(leaves) == 0 {
		return Position{}
	}
	return leaves[0].Position
}

// --- Pass 1: declaration collection ---------------------------------------

// collectDeclarations walks unit/items/item wrappers and, at each item,
// dispatches to the declaration-specific collector. Only top-level
// declarations (and those directly inside namespace and attach blocks) are
// collected here; function bodies are left for the later passes.
func (a *SemanticAnalyzer) collectDeclarations(node *CSTNode, scope *Scope) {
	if node == nil {
		return
	}
	switch node.RuleName {
	case "unit", "items", "items_rest", "item":
		for _, c := range node.Children {
			a.collectDeclarations(c, scope)
		}
	case "func_def", "extern_decl", "export_decl":
		a.collectFunc(node, scope)
	case "struct_decl":
		a.collectStruct(node, scope)
	case "enum_decl":
		a.collectEnumLike(node, scope, SymbolEnum)
	case "error_decl":
		a.collectEnumLike(node, scope, SymbolError)
	case "trait_decl":
		a.collectTrait(node, scope)
	case "attach_decl":
		a.collectAttach(node, scope)
	case "var_decl", "val_decl", "static_decl":
		a.collectVariable(node, scope)
	case "namespace_decl":
		// A namespace introduces its own nested scope of declarations; the
		// scope is retained on the symbol so passes 2 and 3 can re-enter it.
		ns := NewScope(ScopeGlobal, scope)
		if name := pathLexeme(node.Find("namespace_path")); name != "" {
			a.declare(scope, &Symbol{Name: name, Kind: SymbolNamespace, Members: ns}, node)
		}
		if items := node.Find("items"); items != nil {
			a.collectDeclarations(items, ns)
		}
	}
}

func (a *SemanticAnalyzer) declare(scope *Scope, sym *Symbol, node *CSTNode) bool {
	sym.Decl = node
	if !scope.Insert(sym) {
		a.errorAt(node, "Redefinition of symbol '%s'", sym.Name)
		return false
	}
	return true
}

func (a *SemanticAnalyzer) collectFunc(node *CSTNode, scope *Scope) {
	name := identifierLexeme(node)
	if name == "" {
		return
	}
	sym := a.newFuncSymbol(name, node)
	a.declare(scope, sym, node)
	a.unresolved = append(a.unresolved, sym)
}

func (a *SemanticAnalyzer) newFuncSymbol(name string, node *CSTNode) *Symbol {
	return &Symbol{
		Name:     name,
		Kind:     SymbolFunction,
		Type:     &TypeInfo{Kind: TypeFunction, Name: name, Complete: true},
		Comptime: node.FindToken(TokenComptimeKw) != nil,
		Async:    node.FindToken(TokenAsyncKw) != nil,
		Extern:   node.RuleName == "extern_decl",
		Line:     firstPosition(node).Line,
		Column:   firstPosition(node).Column,
	}
}

func (a *SemanticAnalyzer) collectStruct(node *CSTNode, scope *Scope) {
	name := identifierLexeme(node)
	if name == "" {
		return
	}
	t := &TypeInfo{Kind: TypeStruct, Name: name}
	sym := &Symbol{Name: name, Kind: SymbolStruct, Type: t, Line: firstPosition(node).Line, Column: firstPosition(node).Column}
	a.declare(scope, sym, node)
	a.unresolved = append(a.unresolved, sym)
}

func (a *SemanticAnalyzer) collectEnumLike(node *CSTNode, scope *Scope, kind SymbolKind) {
	name := identifierLexeme(node)
	if name == "" {
		return
	}
	tk := TypeEnum
	if kind == SymbolError {
		tk = TypeError
	}
	t := &TypeInfo{Kind: tk, Name: name}
	sym := &Symbol{Name: name, Kind: kind, Type: t, Line: firstPosition(node).Line, Column: firstPosition(node).Column}
	a.declare(scope, sym, node)
	a.unresolved = append(a.unresolved, sym)
}

func (a *SemanticAnalyzer) collectTrait(node *CSTNode, scope *Scope) {
	name := identifierLexeme(node)
	if name == "" {
		return
	}
	sym := &Symbol{
		Name: name,
		Kind: SymbolTrait,
		Type: &TypeInfo{Kind: TypeUnknown, Name: name},
		Line: firstPosition(node).Line, Column: firstPosition(node).Column,
	}
	a.declare(scope, sym, node)
}

// collectAttach registers every function inside an attach block under the
// composed name "Target.Trait.fn", keeping attached-method lookup a single
// scope-chain walk instead of a separate attachment table.
func (a *SemanticAnalyzer) collectAttach(node *CSTNode, scope *Scope) {
	target, trait := attachNames(node)
	a.eachAttachedFunc(node, func(fnNode *CSTNode) {
		name := identifierLexeme(fnNode)
		if name == "" {
			return
		}
		sym := a.newFuncSymbol(target+"."+trait+"."+name, fnNode)
		a.declare(scope, sym, fnNode)
		a.unresolved = append(a.unresolved, sym)
	})
}

// attachNames extracts the attached trait's path and the target type's
// leading name from an attach_decl node.
func attachNames(node *CSTNode) (target, trait string) {
	trait = pathLexeme(node.Find("path"))
	if typeNode := node.Find("type"); typeNode != nil {
		if leaves := typeNode.Leaves(); len(leaves) > 0 {
			target = leaves[0].Lexeme
		}
	}
	return target, trait
}

// eachAttachedFunc calls fn for every func_def inside an attach block's
// items, walking the same item wrappers Pass 1 uses elsewhere.
func (a *SemanticAnalyzer) eachAttachedFunc(node *CSTNode, fn func(*CSTNode)) {
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "items", "items_rest", "item":
			for _, c := range n.Children {
				walk(c)
			}
		case "func_def":
			fn(n)
		}
	}
	walk(node.Find("items"))
}

func (a *SemanticAnalyzer) collectVariable(node *CSTNode, scope *Scope) {
	name := identifierLexeme(node)
	if name == "" {
		return
	}
	kind := SymbolVariable
	if node.RuleName == "val_decl" {
		kind = SymbolValue
	} else if node.RuleName == "static_decl" {
		kind = SymbolStatic
	}
	sym := &Symbol{
		Name:    name,
		Kind:    kind,
		Type:    &TypeInfo{Kind: TypeUnknown},
		Mutable: node.RuleName == "var_decl",
		Static:  node.RuleName == "static_decl" || node.FindToken(TokenStaticKw) != nil,
		Line:    firstPosition(node).Line,
		Column:  firstPosition(node).Column,
	}
	a.declare(scope, sym, node)
	a.unresolved = append(a.unresolved, sym)
}

// identifierLexeme returns the lexeme of node's first direct IDENTIFIER
// child token. Every declaration rule places its own name as the first
// bare identifier among its children (after any optional leading
// generics/visibility/qualifier tokens, none of which are IDENTIFIER).
func identifierLexeme(node *CSTNode) string {
	if tok := node.FindToken(TokenIdentifier); tok != nil {
		return tok.Token.Lexeme
	}
	return ""
}

// --- Pass 2: type resolution -----------------------------------------------

// resolveTypes re-walks every unit looking for the same declaration shapes
// Pass 1 collected, this time filling in each symbol's TypeInfo by
// resolving the type CST subtrees attached to its declaration.
func (a *SemanticAnalyzer) resolveTypes(node *CSTNode, scope *Scope) {
	if node == nil {
		return
	}
	switch node.RuleName {
	case "unit", "items", "items_rest", "item":
		for _, c := range node.Children {
			a.resolveTypes(c, scope)
		}
	case "func_def", "extern_decl", "export_decl":
		name := identifierLexeme(node)
		if sym, _ := scope.LookupLocal(name); sym != nil {
			a.resolveFuncSymbol(sym, node, scope)
		}
	case "struct_decl":
		a.resolveStructType(node, scope)
	case "enum_decl", "error_decl":
		a.resolveEnumType(node, scope)
	case "attach_decl":
		a.resolveAttach(node, scope)
	case "var_decl", "val_decl", "static_decl":
		a.resolveVariableType(node, scope)
	case "namespace_decl":
		name := pathLexeme(node.Find("namespace_path"))
		sym, _ := scope.LookupLocal(name)
		if sym == nil || sym.Members == nil {
			return
		}
		if items := node.Find("items"); items != nil {
			a.resolveTypes(items, sym.Members)
		}
	}
}

// resolveFuncSymbol fills in a function symbol's generic parameters,
// parameter list, and return type. Generic parameters are bound in a
// private scope so the parameter and return types can reference them;
// constraint expressions are recorded on the CST but not evaluated.
func (a *SemanticAnalyzer) resolveFuncSymbol(sym *Symbol, node *CSTNode, scope *Scope) {
	resScope := scope
	if g := node.Find("generics"); g != nil {
		resScope = NewScope(ScopeFunction, scope)
		sym.Generics = a.bindGenericParams(g, resScope)
	}

	if typeNode := lastRule(node, "type"); typeNode != nil {
		sym.Type.Return = a.resolveType(typeNode, resScope)
	} else {
		sym.Type.Return = a.builtins[TypeVoid]
	}

	if paramsNode := node.Find("params"); paramsNode != nil {
		sym.Params = a.resolveParams(paramsNode, resScope)
		sym.Type.Params = nil
		for _, p := range sym.Params {
			sym.Type.Params = append(sym.Type.Params, p.Type)
		}
	}
	sym.Resolved = true
}

func (a *SemanticAnalyzer) bindGenericParams(node *CSTNode, scope *Scope) []*Symbol {
	var out []*Symbol
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "generics", "generic_params", "generic_params_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "generic_param":
			name := identifierLexeme(n)
			if name == "" {
				return
			}
			gsym := &Symbol{
				Name:     name,
				Kind:     SymbolGenericParam,
				Type:     &TypeInfo{Kind: TypeGeneric, Name: name, Complete: true},
				Decl:     n,
				Resolved: true,
			}
			if scope.Insert(gsym) {
				out = append(out, gsym)
			}
		}
	}
	walk(node)
	return out
}

func (a *SemanticAnalyzer) resolveParams(node *CSTNode, scope *Scope) []*Symbol {
	var out []*Symbol
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "params", "params_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "param":
			name := identifierLexeme(n)
			if name == "" {
				name = "this"
			}
			var pt *TypeInfo
			if typeNode := n.Find("type"); typeNode != nil {
				pt = a.resolveType(typeNode, scope)
			} else {
				pt = &TypeInfo{Kind: TypeUnknown}
			}
			out = append(out, &Symbol{
				Name:     name,
				Kind:     SymbolParam,
				Type:     pt,
				Decl:     n,
				Mutable:  true,
				Static:   n.FindToken(TokenStaticKw) != nil,
				Resolved: true,
			})
		}
	}
	walk(node)
	return out
}

func (a *SemanticAnalyzer) resolveStructType(node *CSTNode, scope *Scope) {
	name := identifierLexeme(node)
	sym, _ := scope.LookupLocal(name)
	if sym == nil {
		return
	}
	sym.Type.Fields = nil
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "fields", "fields_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "field":
			fname := identifierLexeme(n)
			if fname == "" {
				return
			}
			ft := &TypeInfo{Kind: TypeUnknown}
			if typeNode := n.Find("type"); typeNode != nil {
				ft = a.resolveType(typeNode, scope)
			}
			sym.Type.Fields = append(sym.Type.Fields, &Symbol{
				Name: fname, Kind: SymbolVariable, Type: ft, Decl: n, Mutable: true, Resolved: true,
			})
		}
	}
	walk(node.Find("fields"))
	sym.Type.Complete = true
	sym.Type.SizeComputed = true
	sym.Resolved = true
}

func (a *SemanticAnalyzer) resolveEnumType(node *CSTNode, scope *Scope) {
	name := identifierLexeme(node)
	sym, _ := scope.LookupLocal(name)
	if sym == nil {
		return
	}
	sym.Type.Variants = nil
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "enum_variants", "enum_variants_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "enum_variant":
			vname := identifierLexeme(n)
			if vname == "" {
				return
			}
			var payload *TypeInfo
			if typeNode := n.Find("type"); typeNode != nil {
				payload = a.resolveType(typeNode, scope)
			}
			sym.Type.Variants = append(sym.Type.Variants, &Symbol{
				Name: vname, Kind: SymbolEnumVariant, Type: payload, Decl: n, Resolved: true,
			})
		}
	}
	walk(node.Find("enum_variants"))
	sym.Type.Complete = true
	sym.Type.SizeComputed = true
	sym.Resolved = true
}

func (a *SemanticAnalyzer) resolveAttach(node *CSTNode, scope *Scope) {
	target, trait := attachNames(node)
	a.eachAttachedFunc(node, func(fnNode *CSTNode) {
		name := identifierLexeme(fnNode)
		if name == "" {
			return
		}
		if sym, _ := scope.LookupLocal(target + "." + trait + "." + name); sym != nil {
			a.resolveFuncSymbol(sym, fnNode, scope)
		}
	})
}

func (a *SemanticAnalyzer) resolveVariableType(node *CSTNode, scope *Scope) {
	name := identifierLexeme(node)
	sym, _ := scope.LookupLocal(name)
	if sym == nil {
		return
	}
	if typeNode := node.Find("type"); typeNode != nil {
		sym.Type = a.resolveType(typeNode, scope)
	}
	sym.Resolved = true
}

// resolveType resolves a "type" CST subtree to a TypeInfo. Composite
// suffixes (pointer/reference/array/slice/optional) wrap the base type
// resolved from base_type's winning alternative, applied left to right.
func (a *SemanticAnalyzer) resolveType(node *CSTNode, scope *Scope) *TypeInfo {
	if node == nil {
		return &TypeInfo{Kind: TypeUnknown}
	}
	if node.RuleName == "type" {
		base := node.Find("base_type")
		t := a.resolveBaseType(base, scope)
		if suffixes := node.Find("type_suffixes"); suffixes != nil {
			t = a.applySuffixes(suffixes, t)
		}
		return t
	}
	return a.resolveBaseType(node, scope)
}

func (a *SemanticAnalyzer) resolveBaseType(node *CSTNode, scope *Scope) *TypeInfo {
	if node == nil {
		return &TypeInfo{Kind: TypeUnknown}
	}
	// base_type wraps exactly one winning alternative as its single child.
	inner := node
	if node.RuleName == "base_type" && len(node.Children) == 1 {
		inner = node.Children[0]
	}

	switch inner.RuleName {
	case "primitive_type":
		if tok := leafTokenKind(inner); tok != TokenInvalid {
			if kind, ok := primitiveKinds[tok]; ok {
				return a.builtins[kind]
			}
		}
		return &TypeInfo{Kind: TypeUnknown}
	case "named_type":
		return a.resolveNamedType(inner, scope)
	case "tuple_type":
		return a.resolveTupleType(inner, scope)
	case "closure_type":
		return a.resolveClosureType(inner, scope)
	case "error_wrapper_type":
		base := a.resolveType(inner.Find("type"), scope)
		return &TypeInfo{Kind: TypeError, Name: "error!" + base.Name, Base: base, Complete: true}
	case "named_error_wrapper":
		base := a.resolveType(inner.Find("type"), scope)
		name := pathLexeme(inner.Find("path"))
		return &TypeInfo{Kind: TypeError, Name: name + "!" + base.Name, Base: base, Complete: true}
	default:
		return &TypeInfo{Kind: TypeUnknown}
	}
}

func (a *SemanticAnalyzer) resolveNamedType(node *CSTNode, scope *Scope) *TypeInfo {
	name := pathLexeme(node.Find("path"))
	if name == "" {
		return &TypeInfo{Kind: TypeUnknown}
	}
	sym := scope.Lookup(name)
	if sym == nil {
		// Pass 1 has already declared every unit's names, so a miss
		// means the name is bound nowhere on the scope chain. A
		// placeholder of kind unknown is returned instead of an error,
		// and later checks treat unknown as compatible.
		return &TypeInfo{Kind: TypeUnknown, Name: name}
	}
	return sym.Type
}

func (a *SemanticAnalyzer) resolveTupleType(node *CSTNode, scope *Scope) *TypeInfo {
	t := &TypeInfo{Kind: TypeTuple, Complete: true}
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "type_list", "type_list_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "tuple_field":
			if typeNode := n.Find("type"); typeNode != nil {
				t.Elements = append(t.Elements, a.resolveType(typeNode, scope))
			}
		}
	}
	walk(node.Find("type_list"))
	return t
}

func (a *SemanticAnalyzer) resolveClosureType(node *CSTNode, scope *Scope) *TypeInfo {
	t := &TypeInfo{Kind: TypeFunction, Complete: true}
	if params := node.Find("closure_params"); params != nil {
		var walk func(*CSTNode)
		walk = func(n *CSTNode) {
			if n == nil {
				return
			}
			switch n.RuleName {
			case "type_list", "type_list_rest":
				for _, c := range n.Children {
					walk(c)
				}
			case "tuple_field":
				if typeNode := n.Find("type"); typeNode != nil {
					t.Params = append(t.Params, a.resolveType(typeNode, scope))
				}
			}
		}
		walk(params.Find("type_list"))
	}
	if ret := lastRule(node, "type"); ret != nil {
		t.Return = a.resolveType(ret, scope)
	}
	return t
}

func (a *SemanticAnalyzer) applySuffixes(node *CSTNode, base *TypeInfo) *TypeInfo {
	result := base
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "type_suffixes", "type_suffixes_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "type_suffix":
			result = applyOneSuffix(n, result)
		}
	}
	walk(node)
	return result
}

func applyOneSuffix(n *CSTNode, base *TypeInfo) *TypeInfo {
	toks := n.Leaves()
	switch {
	case len(toks) == 2 && toks[0].Kind == TokenStar && toks[1].Kind == TokenQuestion:
		return &TypeInfo{Kind: TypePointer, Base: base, ArrayLen: -1, Complete: true}
	case len(toks) == 1 && toks[0].Kind == TokenStar:
		return &TypeInfo{Kind: TypeReference, Base: base, ArrayLen: -1, Complete: true}
	case len(toks) == 1 && toks[0].Kind == TokenQuestion:
		nullable := *base
		nullable.Nullable = true
		return &nullable
	case len(toks) == 2 && toks[0].Kind == TokenLBracket && toks[1].Kind == TokenRBracket:
		return &TypeInfo{Kind: TypeArray, Base: base, ArrayLen: -1, Complete: true}
	case len(toks) == 3 && toks[1].Kind == TokenDotDot:
		return &TypeInfo{Kind: TypeSlice, Base: base, ArrayLen: -1, Complete: true}
	default:
		// Sized array: "[" expression "]". The element count isn't
		// evaluated here (no comptime evaluator in this module's scope),
		// so ArrayLen is left unresolved at -1 rather than guessed.
		return &TypeInfo{Kind: TypeArray, Base: base, ArrayLen: -1, Complete: true}
	}
}

// --- Pass 3: expression type-checking --------------------------------------

// checkExpressions walks every function body, pushing and popping scopes as
// it enters functions, blocks, loops, and match statements, and type-checks
// each statement and expression it finds. Only func_def/export_decl carry a
// body; extern_decl declares without one.
func (a *SemanticAnalyzer) checkExpressions(node *CSTNode, scope *Scope) {
	if node == nil {
		return
	}
	switch node.RuleName {
	case "unit", "items", "items_rest", "item":
		for _, c := range node.Children {
			a.checkExpressions(c, scope)
		}
	case "namespace_decl":
		name := pathLexeme(node.Find("namespace_path"))
		sym, _ := scope.LookupLocal(name)
		if sym == nil || sym.Members == nil {
			return
		}
		if items := node.Find("items"); items != nil {
			a.checkExpressions(items, sym.Members)
		}
	case "func_def", "export_decl":
		name := identifierLexeme(node)
		sym, _ := scope.LookupLocal(name)
		a.checkFuncBody(sym, node, scope, nil)
	case "attach_decl":
		a.checkAttach(node, scope)
	}
}

// checkFuncBody builds the function's scope (generic parameters, then
// parameters, then the optional attached receiver) and checks the body
// block inside it.
func (a *SemanticAnalyzer) checkFuncBody(sym *Symbol, node *CSTNode, scope *Scope, receiver *TypeInfo) {
	fnScope := NewScope(ScopeFunction, scope)
	a.log.Debug("analyzer.scope.push", fnScope.logFields()...)
	if sym != nil {
		fnScope.ReturnType = sym.Type.Return
		for _, g := range sym.Generics {
			fnScope.Insert(g)
		}
		for _, p := range sym.Params {
			fnScope.Insert(p)
		}
	}
	if receiver != nil {
		if _, bound := fnScope.LookupLocal("this"); !bound {
			fnScope.Insert(&Symbol{Name: "this", Kind: SymbolParam, Type: receiver, Mutable: true, Resolved: true})
		}
	}
	if body := node.Find("block"); body != nil {
		a.checkBlock(body, fnScope)
	}
}

func (a *SemanticAnalyzer) checkAttach(node *CSTNode, scope *Scope) {
	target, trait := attachNames(node)
	receiver := a.resolveType(node.Find("type"), scope)
	a.eachAttachedFunc(node, func(fnNode *CSTNode) {
		name := identifierLexeme(fnNode)
		if name == "" {
			return
		}
		sym, _ := scope.LookupLocal(target + "." + trait + "." + name)
		a.checkFuncBody(sym, fnNode, scope, receiver)
	})
}

func (a *SemanticAnalyzer) checkBlock(node *CSTNode, scope *Scope) {
	a.checkStatements(node.Find("statements"), scope)
}

func (a *SemanticAnalyzer) checkStatements(node *CSTNode, scope *Scope) {
	if node == nil {
		return
	}
	switch node.RuleName {
	case "statements", "statements_rest":
		for _, c := range node.Children {
			a.checkStatements(c, scope)
		}
	case "statement":
		for _, c := range node.Children {
			a.checkStatement(c, scope)
		}
	}
}

func (a *SemanticAnalyzer) checkStatement(node *CSTNode, scope *Scope) {
	if node == nil {
		return
	}
	switch node.RuleName {
	case "var_decl", "val_decl", "static_decl":
		a.checkLocalDecl(node, scope)
	case "return_stmt":
		fnScope := enclosingFunctionScope(scope)
		if expr := node.Find("expression"); expr != nil {
			got := a.checkExpr(expr, scope)
			if fnScope != nil && fnScope.ReturnType != nil && !typesCompatible(got, fnScope.ReturnType) {
				a.errorAt(node, "return type mismatch: expected %s, found %s", typeDisplay(fnScope.ReturnType), typeDisplay(got))
			}
		}
	case "break_stmt", "continue_stmt":
		if enclosingLoopScope(scope) == nil {
			word := "break"
			if node.RuleName == "continue_stmt" {
				word = "continue"
			}
			a.errorAt(node, "%s outside of a loop", word)
		}
	case "if_stmt":
		if cond := node.Find("expression"); cond != nil {
			a.checkExpr(cond, scope)
		}
		if blk := node.Find("block"); blk != nil {
			a.checkBlock(blk, NewScope(ScopeBlock, scope))
		}
		if els := node.Find("else_clause"); els != nil {
			for _, c := range els.Children {
				a.checkStatement(c, scope)
			}
		}
	case "block":
		a.checkBlock(node, NewScope(ScopeBlock, scope))
	case "while_stmt":
		if cond := node.Find("expression"); cond != nil {
			a.checkExpr(cond, scope)
		}
		if blk := node.Find("block"); blk != nil {
			a.checkBlock(blk, NewScope(ScopeLoop, scope))
		}
	case "loop_stmt":
		if blk := node.Find("block"); blk != nil {
			a.checkBlock(blk, NewScope(ScopeLoop, scope))
		}
	case "for_stmt":
		a.checkForStmt(node, scope)
	case "match_stmt":
		if subject := node.Find("expression"); subject != nil {
			a.checkExpr(subject, scope)
		}
		matchScope := NewScope(ScopeMatch, scope)
		if arms := node.Find("match_arms"); arms != nil {
			a.checkMatchArms(arms, matchScope)
		}
	case "expr_stmt", "defer_stmt", "resume_stmt":
		if e := node.Find("expression"); e != nil {
			a.checkExpr(e, scope)
		}
	}
}

func (a *SemanticAnalyzer) checkLocalDecl(node *CSTNode, scope *Scope) {
	name := identifierLexeme(node)
	if name == "" {
		return
	}
	var t *TypeInfo
	if expr := node.Find("expression"); expr != nil {
		t = a.checkExpr(expr, scope)
	}
	if typeNode := node.Find("type"); typeNode != nil {
		t = a.resolveType(typeNode, scope)
	}
	if t == nil {
		t = &TypeInfo{Kind: TypeUnknown}
	}
	kind := SymbolVariable
	switch node.RuleName {
	case "val_decl":
		kind = SymbolValue
	case "static_decl":
		kind = SymbolStatic
	}
	a.declare(scope, &Symbol{
		Name: name, Kind: kind, Type: t,
		Mutable:  node.RuleName == "var_decl",
		Static:   node.RuleName == "static_decl",
		Resolved: true,
		Line:     firstPosition(node).Line,
		Column:   firstPosition(node).Column,
	}, node)
}

// checkForStmt declares the loop bindings in a fresh loop scope, checks the
// iterable in the enclosing scope, and the capture and body inside the loop
// scope.
func (a *SemanticAnalyzer) checkForStmt(node *CSTNode, scope *Scope) {
	loopScope := NewScope(ScopeLoop, scope)
	if binding := node.Find("for_binding"); binding != nil {
		for _, tok := range binding.Leaves() {
			if tok.Kind != TokenIdentifier {
				continue
			}
			loopScope.Insert(&Symbol{
				Name: tok.Lexeme, Kind: SymbolVariable,
				Type: &TypeInfo{Kind: TypeUnknown}, Mutable: true, Resolved: true,
			})
		}
	}
	for _, name := range []string{"for_iterable_expr", "expression"} {
		if e := node.Find(name); e != nil {
			a.checkExpr(e, scope)
		}
	}
	if pre := node.Find("for_pre_expr"); pre != nil {
		if e := pre.Find("for_iterable_expr"); e != nil {
			a.checkExpr(e, loopScope)
		}
	}
	if blk := node.Find("block"); blk != nil {
		a.checkBlock(blk, loopScope)
	}
}

func (a *SemanticAnalyzer) checkMatchArms(node *CSTNode, scope *Scope) {
	if node == nil {
		return
	}
	switch node.RuleName {
	case "match_arms", "match_arms_rest":
		for _, c := range node.Children {
			a.checkMatchArms(c, scope)
		}
	case "match_arm":
		if e := node.Find("expression"); e != nil {
			a.checkExpr(e, scope)
		}
		if blk := node.Find("block"); blk != nil {
			a.checkBlock(blk, NewScope(ScopeBlock, scope))
		}
	}
}

func enclosingFunctionScope(scope *Scope) *Scope {
	for s := scope; s != nil; s = s.Parent {
		if s.Kind == ScopeFunction {
			return s
		}
	}
	return nil
}

func enclosingLoopScope(scope *Scope) *Scope {
	for s := scope; s != nil; s = s.Parent {
		if s.Kind == ScopeLoop {
			return s
		}
	}
	return nil
}

// checkExpr computes and returns the type of an expression subtree. The
// precedence-ladder rules, assignments, postfix chains, and the literal
// forms get dedicated handling; every other rule recurses structurally and
// returns its single meaningful child's type (the right-recursive "_rest"
// nodes are transparent here; an empty "_rest" means no operator applied).
func (a *SemanticAnalyzer) checkExpr(node *CSTNode, scope *Scope) *TypeInfo {
	if node == nil {
		return &TypeInfo{Kind: TypeUnknown}
	}

	switch node.RuleName {
	case "literal":
		return a.checkLiteral(node)
	case "primary_expr":
		return a.checkPrimary(node, scope)
	case "assignment_expr":
		return a.checkAssignment(node, scope)
	case "postfix_expr":
		return a.checkPostfix(node, scope)
	case "struct_literal":
		return a.checkStructLiteral(node, scope)
	case "array_literal":
		return a.checkArrayLiteral(node, scope)
	case "cast_expr":
		return a.checkCast(node, scope)
	case "builtin":
		for _, e := range collectCallArgs(node) {
			a.checkExpr(e, scope)
		}
		return &TypeInfo{Kind: TypeUnknown}
	case "closure":
		return a.checkClosure(node, scope)
	case "error_literal":
		if e := node.Find("expression"); e != nil {
			a.checkExpr(e, scope)
		}
		return &TypeInfo{Kind: TypeError, Complete: true}
	case "for_stmt":
		a.checkForStmt(node, scope)
		return &TypeInfo{Kind: TypeUnknown}
	}

	if class, ok := ladderOperators[node.RuleName]; ok {
		return a.checkBinaryLadder(node, scope, class)
	}

	// Structural passthrough over rule children only; bare tokens inside a
	// rule (operator punctuation, path segments, field names) carry no
	// expression type of their own.
	var result *TypeInfo
	for _, c := range node.Children {
		if c.Kind != CSTExpression {
			continue
		}
		t := a.checkExpr(c, scope)
		if t != nil && t.Kind != TypeUnknown {
			result = t
		} else if result == nil {
			result = t
		}
	}
	if result == nil {
		return &TypeInfo{Kind: TypeUnknown}
	}
	return result
}

// operatorClass groups the ladder rungs by the operand discipline their
// operators impose and the result type they produce.
type operatorClass int

const (
	opArithmetic operatorClass = iota // numeric operands, operand-typed result
	opBitwise                         // integer operands, operand-typed result
	opComparison                      // numeric operands, bool result
	opEquality                        // compatible operands, bool result
	opLogical                         // bool operands, bool result
	opRange                           // integer operands, operand-typed result
)

var ladderOperators = map[string]operatorClass{
	"logical_or_expr":     opLogical,
	"logical_and_expr":    opLogical,
	"bitwise_or_expr":     opBitwise,
	"bitwise_xor_expr":    opBitwise,
	"bitwise_and_expr":    opBitwise,
	"equality_expr":       opEquality,
	"relational_expr":     opComparison,
	"shift_expr":          opBitwise,
	"range_expr":          opRange,
	"additive_expr":       opArithmetic,
	"multiplicative_expr": opArithmetic,
}

// checkBinaryLadder types one rung of the precedence ladder: the left
// operand, then each operator application carried by the chained "_rest"
// nodes. Operand checks are skipped when either side is still unresolved so
// one missing symbol doesn't cascade into operator diagnostics.
func (a *SemanticAnalyzer) checkBinaryLadder(node *CSTNode, scope *Scope, class operatorClass) *TypeInfo {
	if len(node.Children) == 0 {
		return &TypeInfo{Kind: TypeUnknown}
	}
	left := a.checkExpr(node.Children[0], scope)
	if len(node.Children) < 2 {
		return left
	}

	rest := node.Children[1]
	for rest != nil && len(rest.Children) > 0 {
		var right *TypeInfo
		var next *CSTNode
		for _, c := range rest.Children {
			if c.Kind != CSTExpression {
				continue
			}
			if isRestRule(c.RuleName) {
				next = c
				continue
			}
			right = a.checkExpr(c, scope)
		}
		if right == nil {
			break
		}
		left = a.checkBinaryOperands(node, class, left, right)
		rest = next
	}
	return left
}

func (a *SemanticAnalyzer) checkBinaryOperands(node *CSTNode, class operatorClass, left, right *TypeInfo) *TypeInfo {
	known := typeKnown(left) && typeKnown(right)
	switch class {
	case opArithmetic:
		if known && (!isNumeric(left) || !isNumeric(right)) {
			a.errorAt(node, "operator requires numeric operands, found %s and %s", typeDisplay(left), typeDisplay(right))
		}
		return left
	case opBitwise:
		if known && (!isInteger(left) || !isInteger(right)) {
			a.errorAt(node, "operator requires integer operands, found %s and %s", typeDisplay(left), typeDisplay(right))
		}
		return left
	case opRange:
		if known && (!isInteger(left) || !isInteger(right)) {
			a.errorAt(node, "range bounds must be integers, found %s and %s", typeDisplay(left), typeDisplay(right))
		}
		return left
	case opComparison:
		if known && (!isNumeric(left) || !isNumeric(right)) {
			a.errorAt(node, "comparison requires numeric operands, found %s and %s", typeDisplay(left), typeDisplay(right))
		}
		return a.builtins[TypeBool]
	case opEquality:
		if known && !typesCompatible(left, right) {
			a.errorAt(node, "cannot compare %s with %s", typeDisplay(left), typeDisplay(right))
		}
		return a.builtins[TypeBool]
	case opLogical:
		if known && (left.Kind != TypeBool || right.Kind != TypeBool) {
			a.errorAt(node, "logical operator requires boolean operands, found %s and %s", typeDisplay(left), typeDisplay(right))
		}
		return a.builtins[TypeBool]
	}
	return left
}

func isRestRule(ruleName string) bool {
	return len(ruleName) > 5 && ruleName[len(ruleName)-5:] == "_rest"
}

func (a *SemanticAnalyzer) checkLiteral(node *CSTNode) *TypeInfo {
	toks := node.Leaves()
	if len(toks) == 0 {
		return &TypeInfo{Kind: TypeUnknown}
	}
	switch toks[0].Kind {
	case TokenNumber:
		// An untyped numeric literal defaults to i32 absent context.
		return a.builtins[TypeI32]
	case TokenString:
		return a.builtins[TypeStr]
	case TokenTrueKw, TokenFalseKw:
		return a.builtins[TypeBool]
	case TokenNullKw:
		return &TypeInfo{Kind: TypeUnknown, Nullable: true}
	default:
		return &TypeInfo{Kind: TypeUnknown}
	}
}

func (a *SemanticAnalyzer) checkPrimary(node *CSTNode, scope *Scope) *TypeInfo {
	if tok := node.FindToken(TokenIdentifier); tok != nil {
		sym := scope.Lookup(tok.Token.Lexeme)
		if sym == nil {
			a.errorAt(node, "Undefined symbol '%s'", tok.Token.Lexeme)
			return &TypeInfo{Kind: TypeUnknown, Name: tok.Token.Lexeme}
		}
		return sym.Type
	}
	if node.FindToken(TokenThisKw) != nil {
		if sym := scope.Lookup("this"); sym != nil {
			return sym.Type
		}
		a.errorAt(node, "'this' used outside of an attached function")
		return &TypeInfo{Kind: TypeUnknown}
	}
	if len(node.Children) == 1 {
		return a.checkExpr(node.Children[0], scope)
	}
	return &TypeInfo{Kind: TypeUnknown}
}

// checkPostfix types a primary expression and then applies each postfix
// operation in source order: calls, indexing, member access, increment and
// decrement, and trailing catch clauses.
func (a *SemanticAnalyzer) checkPostfix(node *CSTNode, scope *Scope) *TypeInfo {
	if len(node.Children) == 0 {
		return &TypeInfo{Kind: TypeUnknown}
	}
	t := a.checkExpr(node.Children[0], scope)

	rest := node.Find("postfix_expr_rest")
	for rest != nil && len(rest.Children) > 0 {
		if op := rest.Find("postfix_op"); op != nil {
			t = a.applyPostfixOp(op, t, scope)
		}
		rest = rest.Find("postfix_expr_rest")
	}
	return t
}

func (a *SemanticAnalyzer) applyPostfixOp(op *CSTNode, t *TypeInfo, scope *Scope) *TypeInfo {
	if len(op.Children) == 0 {
		return t
	}
	inner := op.Children[0]

	if inner.Kind == CSTToken {
		// ++ / -- leave the operand type unchanged.
		return t
	}

	switch inner.RuleName {
	case "call":
		return a.checkCall(inner, t, scope)
	case "index":
		if e := inner.Find("expression"); e != nil {
			a.checkExpr(e, scope)
		}
		if !typeKnown(t) {
			return &TypeInfo{Kind: TypeUnknown}
		}
		switch t.Kind {
		case TypeArray, TypeSlice, TypePointer, TypeReference:
			if t.Base != nil {
				return t.Base
			}
			return &TypeInfo{Kind: TypeUnknown}
		case TypeStr, TypeCstr:
			return a.builtins[TypeU8]
		default:
			a.errorAt(inner, "type %s is not indexable", typeDisplay(t))
			return &TypeInfo{Kind: TypeUnknown}
		}
	case "member_access":
		return a.checkMemberAccess(inner, t)
	case "catch_clause":
		// The catch arm handles the error branch; the expression's value
		// type is the wrapped success type.
		if blk := inner.Find("block"); blk != nil {
			a.checkBlock(blk, NewScope(ScopeBlock, scope))
		}
		if typeKnown(t) && t.Kind == TypeError && t.Base != nil {
			return t.Base
		}
		return t
	}
	return t
}

// checkCast types a cast expression: the operand is checked for its own
// errors, but the expression's type is the cast target.
func (a *SemanticAnalyzer) checkCast(node *CSTNode, scope *Scope) *TypeInfo {
	if len(node.Children) == 0 {
		return &TypeInfo{Kind: TypeUnknown}
	}
	operand := a.checkExpr(node.Children[0], scope)

	rest := node.Find("cast_expr_rest")
	if rest == nil || rest.Find("type") == nil {
		return operand
	}
	return a.resolveType(rest.Find("type"), scope)
}

// checkClosure binds the closure's captures and parameters in a fresh
// function scope before checking its body, so references inside the body
// resolve against the closure's own bindings rather than leaking into the
// enclosing expression's scope.
func (a *SemanticAnalyzer) checkClosure(node *CSTNode, scope *Scope) *TypeInfo {
	cscope := NewScope(ScopeFunction, scope)
	if caps := node.Find("closure_captures"); caps != nil {
		for _, tok := range caps.Leaves() {
			if tok.Kind != TokenIdentifier {
				continue
			}
			cscope.Insert(&Symbol{
				Name: tok.Lexeme, Kind: SymbolVariable,
				Type: &TypeInfo{Kind: TypeUnknown}, Mutable: true, Resolved: true,
			})
		}
	}
	if params := node.Find("params"); params != nil {
		for _, p := range a.resolveParams(params, scope) {
			cscope.Insert(p)
		}
	}
	if blk := node.Find("block"); blk != nil {
		a.checkBlock(blk, cscope)
	}
	return &TypeInfo{Kind: TypeFunction, Complete: true}
}

func (a *SemanticAnalyzer) checkCall(call *CSTNode, t *TypeInfo, scope *Scope) *TypeInfo {
	args := collectCallArgs(call)
	argTypes := make([]*TypeInfo, len(args))
	for i, arg := range args {
		argTypes[i] = a.checkExpr(arg, scope)
	}

	if !typeKnown(t) {
		return &TypeInfo{Kind: TypeUnknown}
	}
	if t.Kind != TypeFunction {
		a.errorAt(call, "called value is not a function (type %s)", typeDisplay(t))
		return &TypeInfo{Kind: TypeUnknown}
	}

	// Parameters may carry default values, so fewer arguments than
	// parameters is allowed; more is not.
	if len(args) > len(t.Params) {
		a.errorAt(call, "too many arguments: expected at most %d, found %d", len(t.Params), len(args))
	}
	for i := 0; i < len(argTypes) && i < len(t.Params); i++ {
		if typeKnown(argTypes[i]) && typeKnown(t.Params[i]) && !typesCompatible(argTypes[i], t.Params[i]) {
			a.errorAt(args[i], "argument %d type mismatch: expected %s, found %s", i+1, typeDisplay(t.Params[i]), typeDisplay(argTypes[i]))
		}
	}

	if t.Return != nil {
		return t.Return
	}
	return &TypeInfo{Kind: TypeUnknown}
}

func collectCallArgs(call *CSTNode) []*CSTNode {
	var out []*CSTNode
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "args", "args_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "expression":
			out = append(out, n)
		}
	}
	walk(call.Find("args"))
	return out
}

func (a *SemanticAnalyzer) checkMemberAccess(access *CSTNode, t *TypeInfo) *TypeInfo {
	leaves := access.Leaves()
	if len(leaves) < 2 || !typeKnown(t) {
		return &TypeInfo{Kind: TypeUnknown}
	}
	member := leaves[1]

	switch t.Kind {
	case TypeStruct:
		if !t.Complete {
			return &TypeInfo{Kind: TypeUnknown}
		}
		if f := t.Field(member.Lexeme); f != nil {
			return f.Type
		}
		if m := a.attachedMethod(t.Name, member.Lexeme); m != nil {
			return m.Type
		}
		a.errorAt(access, "struct %s has no field '%s'", typeDisplay(t), member.Lexeme)
		return &TypeInfo{Kind: TypeUnknown}
	case TypeEnum, TypeError:
		if !t.Complete {
			return &TypeInfo{Kind: TypeUnknown}
		}
		if t.Variant(member.Lexeme) != nil {
			// A variant reference has the enum's own type.
			return t
		}
		a.errorAt(access, "%s has no variant '%s'", typeDisplay(t), member.Lexeme)
		return &TypeInfo{Kind: TypeUnknown}
	case TypeTuple:
		if member.Kind == TokenNumber {
			idx := 0
			for _, ch := range member.Lexeme {
				idx = idx*10 + int(ch-'0')
			}
			if idx < len(t.Elements) {
				return t.Elements[idx]
			}
			a.errorAt(access, "tuple has no element %s", member.Lexeme)
		}
		return &TypeInfo{Kind: TypeUnknown}
	case TypePointer, TypeReference:
		if t.Base != nil {
			return a.checkMemberAccess(access, t.Base)
		}
	}
	return &TypeInfo{Kind: TypeUnknown}
}

// attachedMethod finds a function registered under "Target.Trait.name" for
// any trait attached to the named target type.
func (a *SemanticAnalyzer) attachedMethod(typeName, method string) *Symbol {
	if typeName == "" || method == "" {
		return nil
	}
	prefix := typeName + "."
	suffix := "." + method
	for _, sym := range a.global.Ordered() {
		if sym.Kind != SymbolFunction {
			continue
		}
		if len(sym.Name) > len(prefix)+len(suffix) &&
			sym.Name[:len(prefix)] == prefix &&
			sym.Name[len(sym.Name)-len(suffix):] == suffix {
			return sym
		}
	}
	return nil
}

// checkStructLiteral checks each field initializer expression; the
// literal's own type is unresolved here since the struct it builds is
// inferred from context this module does not model.
func (a *SemanticAnalyzer) checkStructLiteral(node *CSTNode, scope *Scope) *TypeInfo {
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "field_inits", "field_inits_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "field_init":
			if e := n.Find("expression"); e != nil {
				a.checkExpr(e, scope)
			}
		}
	}
	walk(node.Find("field_inits"))
	return &TypeInfo{Kind: TypeUnknown}
}

func (a *SemanticAnalyzer) checkArrayLiteral(node *CSTNode, scope *Scope) *TypeInfo {
	var elem *TypeInfo
	var walk func(*CSTNode)
	walk = func(n *CSTNode) {
		if n == nil {
			return
		}
		switch n.RuleName {
		case "array_elements", "array_elements_rest":
			for _, c := range n.Children {
				walk(c)
			}
		case "expression":
			t := a.checkExpr(n, scope)
			if elem == nil {
				elem = t
			}
		}
	}
	walk(node.Find("array_elements"))
	if elem == nil {
		elem = &TypeInfo{Kind: TypeUnknown}
	}
	return &TypeInfo{Kind: TypeArray, Base: elem, ArrayLen: -1, Complete: true}
}

func (a *SemanticAnalyzer) checkAssignment(node *CSTNode, scope *Scope) *TypeInfo {
	lhsNode := node.Find("logical_or_expr")
	lhs := a.checkExpr(lhsNode, scope)

	rest := node.Find("assignment_expr_rest")
	if rest == nil || rest.Find("assign_op") == nil {
		return lhs // no operator: the value passes through unchanged
	}

	if !a.isAssignableLvalue(lhsNode, scope) {
		a.errorAt(node, "left side of assignment is not a mutable lvalue")
	}

	if rhs := rest.Find("assignment_expr"); rhs != nil {
		got := a.checkExpr(rhs, scope)
		if typeKnown(lhs) && typeKnown(got) && !typesCompatible(got, lhs) {
			a.errorAt(node, "cannot assign %s to %s", typeDisplay(got), typeDisplay(lhs))
		}
	}
	return lhs
}

// isAssignableLvalue reports whether the expression rooted at node refers
// to a mutable binding. Only the common case of a bare identifier is
// checked; any longer target (member access, indexing) is accepted as
// assignable, since per-field mutability isn't tracked.
func (a *SemanticAnalyzer) isAssignableLvalue(node *CSTNode, scope *Scope) bool {
	leaves := node.Leaves()
	if len(leaves) == 0 {
		return false
	}
	if leaves[0].Kind != TokenIdentifier {
		return true
	}
	sym := scope.Lookup(leaves[0].Lexeme)
	if sym == nil {
		return true // already reported as undefined; don't double-report
	}
	if len(leaves) == 1 {
		return sym.Mutable
	}
	return true
}

func typeKnown(t *TypeInfo) bool {
	return t != nil && t.Kind != TypeUnknown && t.Kind != TypeGeneric
}

func typeDisplay(t *TypeInfo) string {
	if t == nil {
		return "unknown"
	}
	if t.Name != "" {
		return t.Name
	}
	return t.Kind.String()
}

func isNumeric(t *TypeInfo) bool {
	if t == nil {
		return false
	}
	return isIntegerKind(t.Kind) || isFloatingKind(t.Kind)
}

func isInteger(t *TypeInfo) bool {
	return t != nil && isIntegerKind(t.Kind)
}

func isIntegerKind(k TypeKind) bool {
	switch k {
	case TypeI8, TypeI16, TypeI32, TypeI64, TypeI128,
		TypeU8, TypeU16, TypeU32, TypeU64, TypeU128, TypeIsize, TypeUsize:
		return true
	}
	return false
}

func isFloatingKind(k TypeKind) bool {
	switch k {
	case TypeF16, TypeF32, TypeF64, TypeF128:
		return true
	}
	return false
}

func typesCompatible(a, b *TypeInfo) bool {
	if a == nil || b == nil {
		return true // unresolved on either side: don't cascade a second error
	}
	if a.Kind == TypeUnknown || b.Kind == TypeUnknown {
		return true
	}
	if a.Kind == TypeGeneric || b.Kind == TypeGeneric {
		return true
	}
	return a.Kind == b.Kind
}

// lastRule returns the LAST direct child produced by ruleName, used for
// the trailing return "type" node of a function signature. Parameter types
// sit nested under "params", so they are not direct children.
func lastRule(node *CSTNode, ruleName string) *CSTNode {
	var found *CSTNode
	for _, c := range node.Children {
		if c.Kind == CSTExpression && c.RuleName == ruleName {
			found = c
		}
	}
	return found
}

// leafTokenKind returns the TokenKind of node's single leaf token, or
// TokenInvalid if node has none or more than one.
func leafTokenKind(node *CSTNode) TokenKind {
	leaves := node.Leaves()
	if len(leaves) != 1 {
		return TokenInvalid
	}
	return leaves[0].Kind
}

// pathLexeme flattens a "path" CST subtree (IDENTIFIER ("::" IDENTIFIER)*)
// into its "::"-joined source form.
func pathLexeme(node *CSTNode) string {
	if node == nil {
		return ""
	}
	toks := node.Leaves()
	out := ""
	for _, t := range toks {
		if t.Kind != TokenIdentifier {
			continue
		}
		if out != "" {
			out += "::"
		}
		out += t.Lexeme
	}
	return out
}
