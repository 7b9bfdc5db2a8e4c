package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/born05/schematic/internal/core/domain"
)

// palette renders report text. Styles apply only on a terminal.
type palette struct {
	ok      func(...string) string
	warn    func(...string) string
	fail    func(...string) string
	heading func(...string) string
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

func newPalette(w io.Writer) palette {
	if !isTerminal(w) {
		return palette{ok: plain, warn: plain, fail: plain, heading: plain}
	}
	return palette{
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render,
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render,
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Render,
		heading: lipgloss.NewStyle().Bold(true).Render,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printResult writes one line per data type followed by the outcome.
func printResult(cmd *cobra.Command, result *domain.AggregateResult) {
	p := newPalette(cmd.OutOrStdout())

	width := 0
	results := result.Results()
	for i := range results {
		width = max(width, len(results[i].DataType))
	}

	for i := range results {
		r := &results[i]
		marker := p.ok("ok  ")
		switch {
		case r.Failed():
			marker = p.fail("FAIL")
		case len(r.Warnings) > 0:
			marker = p.warn("warn")
		}
		cmd.Printf("  %s %-*s  %s\n", marker, width, r.DataType, counts(r))

		for _, w := range r.Warnings {
			cmd.Printf("         %s\n", p.warn(w))
		}
		for _, err := range r.Errors {
			cmd.Printf("         %s\n", p.fail(err.Error()))
		}
	}

	outcome := result.Outcome()
	label := p.ok(outcome.String())
	switch outcome {
	case domain.OutcomeSynchronizedWithWarnings:
		label = p.warn(outcome.String())
	case domain.OutcomeFailed:
		label = p.fail(outcome.String())
	}
	cmd.Printf("%s %s\n", p.heading("Result:"), label)
}

func counts(r *domain.MapperResult) string {
	if r.Writes() == 0 {
		return "no changes"
	}
	return fmt.Sprintf("%d created, %d updated, %d deleted", r.Created, r.Updated, r.Deleted)
}

// outcomeError maps a finished run to the command's exit status.
func outcomeError(result *domain.AggregateResult) error {
	if result.Outcome() == domain.OutcomeFailed {
		return errRunFailed
	}
	return nil
}
