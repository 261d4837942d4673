package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vela-lang/vela/internal/config"
)

// diagnostic is one front-end error with its originating phase.
type diagnostic struct {
	phase string // "scan", "parse", or "sem"
	line  uint32
	col   uint32
	msg   string
}

var (
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	stylePos   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	stylePhase = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleMore  = lipgloss.NewStyle().Faint(true)
)

// printDiagnostics renders the diagnostics to w, capped at
// cfg.MaxErrors entries when the cap is set.
func printDiagnostics(w io.Writer, path string, diags []diagnostic, cfg config.Config) {
	shown := len(diags)
	if cfg.MaxErrors > 0 && shown > cfg.MaxErrors {
		shown = cfg.MaxErrors
	}

	for _, d := range diags[:shown] {
		pos := fmt.Sprintf("%s:%d:%d", path, d.line, d.col)
		if cfg.Color {
			fmt.Fprintf(w, "%s %s %s %s\n",
				stylePos.Render(pos),
				stylePhase.Render("["+d.phase+"]"),
				styleError.Render("error:"),
				d.msg)
		} else {
			fmt.Fprintf(w, "%s [%s] error: %s\n", pos, d.phase, d.msg)
		}
	}

	if rest := len(diags) - shown; rest > 0 {
		more := fmt.Sprintf("... and %d more", rest)
		if cfg.Color {
			more = styleMore.Render(more)
		}
		fmt.Fprintln(w, more)
	}
}
