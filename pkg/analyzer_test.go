package volt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// analyze is a small helper: lex + parse + analyze one source string,
// returning whether the build is clean and the sink collecting whatever
// diagnostics were pushed along the way.
func analyze(t *testing.T, src string) (bool, *DiagnosticSink) {
	t.Helper()
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sink := NewDiagnosticSink()
	toks := NewLexer([]byte(src), "t.volt", sink, nil, nil).Run()
	root := NewParser(toks, "t.volt", registry, sink, nil, nil).Parse()
	assert.NotNil(t, root, "parse failed: %v", sink.All())

	analyzer := NewSemanticAnalyzer(sink, nil, nil)
	ok := analyzer.Analyze([]Unit{{Root: root, Filename: "t.volt"}})
	return ok, sink
}

func TestAnalyzerAcceptsCleanFunction(t *testing.T) {
	ok, sink := analyze(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestAnalyzerDetectsDuplicateTopLevelDeclaration(t *testing.T) {
	ok, sink := analyze(t, `
fn main() -> i32 { return 0; }
fn main() -> i32 { return 1; }
`)
	assert.False(t, ok)
	assert.True(t, sink.HasErrors())
}

func TestAnalyzerDetectsReturnTypeMismatch(t *testing.T) {
	ok, sink := analyze(t, `fn flag() -> bool { return 1; }`)
	assert.False(t, ok)
	assert.True(t, sink.HasErrors())
}

func TestAnalyzerDetectsBreakOutsideLoop(t *testing.T) {
	ok, sink := analyze(t, `fn main() -> i32 { break; return 0; }`)
	assert.False(t, ok)
	assert.True(t, sink.HasErrors())
}

func TestAnalyzerAllowsBreakInsideLoop(t *testing.T) {
	ok, sink := analyze(t, `
fn main() -> i32 {
	loop {
		break;
	}
	return 0;
}
`)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestAnalyzerDetectsNonNumericBinaryOperands(t *testing.T) {
	ok, _ := analyze(t, `fn main() -> i32 { return "hi" + "there"; }`)
	assert.False(t, ok)
}

func TestAnalyzerResolvesForwardReferenceWithinAUnit(t *testing.T) {
	ok, sink := analyze(t, `
fn caller() -> i32 { return callee(); }
fn callee() -> i32 { return 1; }
`)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestAnalyzerSharesGlobalScopeAcrossUnits(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sink := NewDiagnosticSink()
	src1 := []byte(`fn first() -> i32 { return second(); }`)
	src2 := []byte(`fn second() -> i32 { return 2; }`)

	toks1 := NewLexer(src1, "a.volt", sink, nil, nil).Run()
	root1 := NewParser(toks1, "a.volt", registry, sink, nil, nil).Parse()
	toks2 := NewLexer(src2, "b.volt", sink, nil, nil).Run()
	root2 := NewParser(toks2, "b.volt", registry, sink, nil, nil).Parse()
	assert.NotNil(t, root1)
	assert.NotNil(t, root2)

	analyzer := NewSemanticAnalyzer(sink, nil, nil)
	ok := analyzer.Analyze([]Unit{
		{Root: root1, Filename: "a.volt"},
		{Root: root2, Filename: "b.volt"},
	})
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestAnalyzerStructFieldsResolve(t *testing.T) {
	ok, sink := analyze(t, `
struct Point {
	x: i32;
	y: i32;
}
fn origin() -> Point { return { x: 0, y: 0 }; }
`)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

// analyzeFiles lexes, parses, and analyzes several sources as one build
// sharing a single global scope.
func analyzeFiles(t *testing.T, srcs map[string]string) (bool, *DiagnosticSink, *SemanticAnalyzer) {
	t.Helper()
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sink := NewDiagnosticSink()
	var units []Unit
	for name, src := range srcs {
		toks := NewLexer([]byte(src), name, sink, nil, nil).Run()
		root := NewParser(toks, name, registry, sink, nil, nil).Parse()
		assert.NotNil(t, root, "parse of %s failed: %v", name, sink.All())
		units = append(units, Unit{Root: root, Filename: name})
	}

	analyzer := NewSemanticAnalyzer(sink, nil, nil)
	ok := analyzer.Analyze(units)
	return ok, sink, analyzer
}

func TestAnalyzerReportsRedefinitionAcrossFiles(t *testing.T) {
	ok, sink, _ := analyzeFiles(t, map[string]string{
		"a.volt": `fn foo() -> i32 { return 0; }`,
		"b.volt": `fn foo() -> i32 { return 0; }`,
	})

	assert.False(t, ok)
	assert.Equal(t, 1, sink.Len())
	assert.Equal(t, "Redefinition of symbol 'foo'", sink.All()[0].Message)
}

func TestAnalyzerResolvesForwardReferenceAcrossFiles(t *testing.T) {
	ok, sink, analyzer := analyzeFiles(t, map[string]string{
		"a.volt": `fn g(x: T) -> i32 { return 0; }`,
		"b.volt": `struct T { x: i32; }`,
	})

	assert.True(t, ok, "diagnostics: %v", sink.All())

	g := analyzer.Global().Lookup("g")
	assert.NotNil(t, g)
	assert.Len(t, g.Params, 1)
	assert.Equal(t, TypeStruct, g.Params[0].Type.Kind)
	assert.True(t, g.Params[0].Type.Complete)
}

func TestAnalyzerReportsUndefinedSymbol(t *testing.T) {
	ok, sink := analyze(t, `fn main() -> i32 { return missing; }`)
	assert.False(t, ok)
	assert.Equal(t, "Undefined symbol 'missing'", sink.All()[0].Message)
}

func TestAnalyzerRejectsCallOfNonFunction(t *testing.T) {
	ok, sink := analyze(t, `
fn main() -> i32 {
	var x: i32 = 1;
	return x();
}
`)
	assert.False(t, ok)
	assert.True(t, sink.HasErrors())
}

func TestAnalyzerRejectsArgumentTypeMismatch(t *testing.T) {
	ok, _ := analyze(t, `
fn half(x: i32) -> i32 { return x / 2; }
fn main() -> i32 { return half("nope"); }
`)
	assert.False(t, ok)
}

func TestAnalyzerRejectsTooManyArguments(t *testing.T) {
	ok, _ := analyze(t, `
fn zero() -> i32 { return 0; }
fn main() -> i32 { return zero(1, 2); }
`)
	assert.False(t, ok)
}

func TestAnalyzerAcceptsCallThroughDeclaredParams(t *testing.T) {
	ok, sink := analyze(t, `
fn add(a: i32, b: i32) -> i32 { return a + b; }
fn main() -> i32 { return add(1, 2); }
`)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestAnalyzerRejectsAssignmentToImmutableBinding(t *testing.T) {
	ok, sink := analyze(t, `
fn main() -> i32 {
	val x = 1;
	x = 2;
	return x;
}
`)
	assert.False(t, ok)
	assert.True(t, sink.HasErrors())
}

func TestAnalyzerAllowsAssignmentToVarBinding(t *testing.T) {
	ok, sink := analyze(t, `
fn main() -> i32 {
	var x = 1;
	x = 2;
	return x;
}
`)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestAnalyzerChecksComparisonProducesBool(t *testing.T) {
	ok, sink := analyze(t, `fn less(a: i32, b: i32) -> bool { return a < b; }`)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestAnalyzerForLoopBindingIsVisibleInBody(t *testing.T) {
	ok, sink := analyze(t, `
fn sum() -> i32 {
	var total = 0;
	for (i in 0..10) {
		total = total + i;
	}
	return total;
}
`)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestAnalyzerCollectsAttachedFunctions(t *testing.T) {
	ok, sink, analyzer := analyzeFiles(t, map[string]string{
		"p.volt": `
struct Point { x: i32; y: i32; }
trait Show { fn show(this) -> i32; }
attach Show -> Point {
	fn show(this: Point) -> i32 { return this.x; }
}
`,
	})

	assert.True(t, ok, "diagnostics: %v", sink.All())
	sym := analyzer.Global().Lookup("Point.Show.show")
	assert.NotNil(t, sym)
	assert.Equal(t, SymbolFunction, sym.Kind)
	assert.Equal(t, TypeI32, sym.Type.Return.Kind)
}

func TestAnalyzerGenericParamResolvesInSignature(t *testing.T) {
	ok, sink, analyzer := analyzeFiles(t, map[string]string{
		"id.volt": `<T: type> fn id(x: T) -> T { return x; }`,
	})

	assert.True(t, ok, "diagnostics: %v", sink.All())
	sym := analyzer.Global().Lookup("id")
	assert.NotNil(t, sym)
	assert.Len(t, sym.Generics, 1)
	assert.Equal(t, TypeGeneric, sym.Type.Return.Kind)
}

func TestAnalyzerDistinguishesPointerAndReferenceSuffixes(t *testing.T) {
	ok, sink, analyzer := analyzeFiles(t, map[string]string{
		"p.volt": `fn deref(p: i32*?, r: i32*) -> i32 { return 0; }`,
	})

	assert.True(t, ok, "diagnostics: %v", sink.All())
	sym := analyzer.Global().Lookup("deref")
	assert.NotNil(t, sym)
	assert.Len(t, sym.Params, 2)
	assert.Equal(t, TypePointer, sym.Params[0].Type.Kind)
	assert.Equal(t, TypeI32, sym.Params[0].Type.Base.Kind)
	assert.Equal(t, TypeReference, sym.Params[1].Type.Kind)
	assert.Equal(t, TypeI32, sym.Params[1].Type.Base.Kind)
}

func TestAnalyzerPass1InsertionOrderIsStable(t *testing.T) {
	src := `
fn first() -> i32 { return 1; }
struct Second { x: i32; }
fn third() -> i32 { return 3; }
`
	names := func() []string {
		registry, err := BuildGrammar()
		assert.NoError(t, err)
		sink := NewDiagnosticSink()
		toks := NewLexer([]byte(src), "o.volt", sink, nil, nil).Run()
		root := NewParser(toks, "o.volt", registry, sink, nil, nil).Parse()
		assert.NotNil(t, root)

		analyzer := NewSemanticAnalyzer(sink, nil, nil)
		analyzer.Analyze([]Unit{{Root: root, Filename: "o.volt"}})

		var out []string
		for _, sym := range analyzer.Global().Ordered() {
			out = append(out, sym.Name)
		}
		return out
	}

	run1, run2 := names(), names()
	assert.Equal(t, []string{"first", "Second", "third"}, run1)
	assert.Equal(t, run1, run2)
}
