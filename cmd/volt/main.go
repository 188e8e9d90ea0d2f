// Command volt drives the lexer, parser, and semantic analyzer over a set
// of source files:
//
//	volt <in1> <in2> ... -o <out1> <out2> ...
//
// input and output path counts must match; a mismatch or any
// error-severity diagnostic exits nonzero.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	volt "go.volt.dev/pkg"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "volt <input>... -o <output>...",
		Short:         "Lex, parse, and semantically analyze Volt source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		// The literal `-o` separates the input list from the output list,
		// so it must not be eaten by flag parsing.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE:               run,
	}
}

// splitArgs divides the argument list at the literal "-o" separator:
// everything before it is an input path, everything after an output path.
func splitArgs(args []string) (inputs, outputs []string, err error) {
	sep := -1
	for i, a := range args {
		if a == "-o" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, nil, fmt.Errorf("volt: missing -o separator between inputs and outputs")
	}
	inputs, outputs = args[:sep], args[sep+1:]
	if len(inputs) == 0 {
		return nil, nil, fmt.Errorf("volt: no input files")
	}
	if len(inputs) != len(outputs) {
		return nil, nil, fmt.Errorf("volt: %d input(s) but %d output(s); counts must match", len(inputs), len(outputs))
	}
	return inputs, outputs, nil
}

func run(cmd *cobra.Command, args []string) error {
	inputs, outputs, err := splitArgs(args)
	if err != nil {
		return err
	}

	cfg := volt.FromEnv()
	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("volt: building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	sources := make([]volt.Source, len(inputs))
	for i, in := range inputs {
		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("volt: reading %q: %w", in, err)
		}
		sources[i] = volt.Source{Bytes: data, Filename: in}
	}

	sink := volt.NewDiagnosticSink()
	ok, err := volt.Build(sources, sink, nil, log)
	if err != nil {
		return fmt.Errorf("volt: %w", err)
	}

	fmt.Fprint(os.Stderr, volt.RenderDiagnostics(sink, cfg))

	if !ok {
		os.Exit(1)
	}

	// No code generation happens here, so each output path receives a
	// plain-text analysis report rather than a compiled artifact.
	for i, out := range outputs {
		report := fmt.Sprintf("%s: analyzed, %d diagnostic(s)\n", inputs[i], sink.Len())
		if err := os.WriteFile(out, []byte(report), 0o644); err != nil {
			return fmt.Errorf("volt: writing %q: %w", out, err)
		}
	}
	return nil
}

// buildLogger constructs a zap.Logger whose minimum enabled level reflects
// cfg.Levels: debug is enabled whenever either "trace" or "debug" is on,
// otherwise the logger sits at info.
func buildLogger(cfg volt.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Levels.Enabled("trace") || cfg.Levels.Enabled("debug") {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.TimeKey = ""
	return zcfg.Build()
}
