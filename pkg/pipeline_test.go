package volt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunUnitsProducesOnePerSource(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sources := []Source{
		{Bytes: []byte("fn a() -> i32 { return 1; }"), Filename: "a.volt"},
		{Bytes: []byte("fn b() -> i32 { return 2; }"), Filename: "b.volt"},
	}

	sink := NewDiagnosticSink()
	units, err := RunUnits(sources, registry, sink, nil)

	assert.NoError(t, err)
	assert.Len(t, units, 2)
	assert.Equal(t, "a.volt", units[0].Filename)
	assert.Equal(t, "b.volt", units[1].Filename)
	assert.NotNil(t, units[0].Root)
	assert.NotNil(t, units[1].Root)
	assert.False(t, sink.HasErrors())
}

// TestRunUnitsMergesDiagnosticsInSourceOrder feeds every unit a lexer
// warning (a backtick is not a Volt byte) and checks the merged sink lists
// them grouped by unit, in source order, regardless of goroutine
// interleaving.
func TestRunUnitsMergesDiagnosticsInSourceOrder(t *testing.T) {
	registry, err := BuildGrammar()
	assert.NoError(t, err)

	sources := []Source{
		{Bytes: []byte("`"), Filename: "a.volt"},
		{Bytes: []byte("`"), Filename: "b.volt"},
		{Bytes: []byte("`"), Filename: "c.volt"},
	}

	sink := NewDiagnosticSink()
	_, err = RunUnits(sources, registry, sink, nil)
	assert.NoError(t, err)

	files := make([]string, 0, sink.Len())
	for _, d := range sink.All() {
		if d.Severity == SeverityWarning {
			files = append(files, d.File)
		}
	}
	assert.Equal(t, []string{"a.volt", "b.volt", "c.volt"}, files)
}

func TestBuildSucceedsOnCleanSources(t *testing.T) {
	sources := []Source{
		{Bytes: []byte("fn main() -> i32 { return 0; }"), Filename: "main.volt"},
	}

	sink := NewDiagnosticSink()
	ok, err := Build(sources, sink, nil, nil)

	assert.NoError(t, err)
	assert.True(t, ok, "diagnostics: %v", sink.All())
}

func TestBuildFailsOnSyntaxError(t *testing.T) {
	sources := []Source{
		{Bytes: []byte("fn main( { }"), Filename: "main.volt"},
	}

	sink := NewDiagnosticSink()
	ok, err := Build(sources, sink, nil, nil)

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, sink.HasErrors())
}

func TestBuildFailsOnUndeclaredIdentifier(t *testing.T) {
	sources := []Source{
		{Bytes: []byte("fn main() -> i32 { return undeclaredThing; }"), Filename: "main.volt"},
	}

	sink := NewDiagnosticSink()
	ok, err := Build(sources, sink, nil, nil)

	assert.NoError(t, err)
	assert.False(t, ok)
}
