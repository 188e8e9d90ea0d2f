package volt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	fatalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// RenderDiagnostics formats every diagnostic in sink as one
// `<file>:<line>:<column>: <message>` line, returning the joined text.
// This is a CLI convenience layered on top of the sink's push/iterate
// contract; nothing in the lexer, parser, or analyzer calls it.
func RenderDiagnostics(sink *DiagnosticSink, cfg Config) string {
	var b strings.Builder
	sink.Iterate(func(d Diagnostic) {
		b.WriteString(renderOne(d, cfg))
		b.WriteByte('\n')
	})
	return b.String()
}

func renderOne(d Diagnostic, cfg Config) string {
	msg := d.Message
	if cfg.Colorize() {
		msg = styleFor(d.Severity).Render(msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, msg)
}

func styleFor(sev Severity) lipgloss.Style {
	switch sev {
	case SeverityWarning:
		return warningStyle
	case SeverityFatal:
		return fatalStyle
	default:
		return errorStyle
	}
}
