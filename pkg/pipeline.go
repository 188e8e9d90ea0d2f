package volt

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is one translation unit's raw input: its bytes and the filename
// diagnostics should attribute to it.
type Source struct {
	Bytes    []byte
	Filename string
}

// RunUnits lexes and parses every Source concurrently. The sink is
// single-owner and the allocator contract is not thread-safe, so neither
// crosses a goroutine boundary: each unit gets a private sink (and the
// components' own default allocator), and each goroutine writes only to
// its own index of the pre-sized slices. After the fan-out completes, the
// per-unit diagnostics are merged into sink in source order, keeping the
// appended-in-call-order guarantee deterministic. Semantic analysis stays
// strictly serial and is the caller's next step (see Build).
func RunUnits(sources []Source, registry *GrammarRegistry, sink *DiagnosticSink, log *zap.Logger) ([]Unit, error) {
	if log == nil {
		log = zap.NewNop()
	}

	units := make([]Unit, len(sources))
	sinks := make([]*DiagnosticSink, len(sources))

	g := new(errgroup.Group)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			unitSink := NewDiagnosticSink()
			toks := NewLexer(src.Bytes, src.Filename, unitSink, nil, log).Run()
			root := NewParser(toks, src.Filename, registry, unitSink, nil, log).Parse()
			units[i] = Unit{Root: root, Filename: src.Filename}
			sinks[i] = unitSink
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sink != nil {
		for _, unitSink := range sinks {
			unitSink.Iterate(sink.Push)
		}
	}

	log.Info("pipeline.lex_parse.done", zap.Int("units", len(units)))
	return units, nil
}

// Build runs the full front-end pipeline: concurrent lex+parse of every
// source, then a single serial semantic analysis pass across all of them.
// Returns whether the build succeeded (no error-severity diagnostic).
func Build(sources []Source, sink *DiagnosticSink, alloc Allocator, log *zap.Logger) (bool, error) {
	registry, err := BuildGrammar()
	if err != nil {
		return false, err
	}

	units, err := RunUnits(sources, registry, sink, log)
	if err != nil {
		return false, err
	}

	analyzer := NewSemanticAnalyzer(sink, alloc, log)
	ok := analyzer.Analyze(units)
	return ok && !sink.HasErrors(), nil
}
