package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ocrhl/internal/highlight"
)

var (
	markStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printer formats command output, styling highlights only on terminals.
type printer struct {
	cmd    *cobra.Command
	styled bool
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{cmd: cmd, styled: isTerminal(cmd.OutOrStdout())}
}

// highlighted renders text containing <em> markers. Plain output keeps
// the spans visible as *span*.
func (p printer) highlighted(s string) string {
	if p.styled {
		return highlight.Render(s, func(span string) string { return markStyle.Render(span) })
	}
	return highlight.Render(s, func(span string) string {
		return "*" + span + "*"
	})
}

func (p printer) title(s string) string {
	if p.styled {
		return titleStyle.Render(s)
	}
	return s
}

func (p printer) dim(s string) string {
	if p.styled {
		return dimStyle.Render(s)
	}
	return s
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
