// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/arthur-debert/organizer/pkg/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dryRunStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Renderer provides rich terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a run report or rule listing
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.RunReport:
		return r.renderRun(v)
	case *types.RuleListing:
		return r.renderRules(v)
	default:
		_, err := fmt.Fprintf(r.output, "%v\n", v)
		return err
	}
}

func (r *Renderer) renderRun(report *types.RunReport) error {
	title := titleStyle.Render("Organized")
	if report.Stats.DryRun {
		title = dryRunStyle.Render("Dry run")
	}
	header := fmt.Sprintf("%s %s %s %s", title, report.Source, mutedStyle.Render("→"), report.Dest)
	if _, err := fmt.Fprintln(r.output, header); err != nil {
		return err
	}

	tw := newTable(r.output)
	tw.AppendHeader(table.Row{report.Stats.MovedLabel(), "skipped", "removed", "errors"})
	errorsCell := fmt.Sprint(report.Stats.Errors)
	if report.Stats.Errors > 0 {
		errorsCell = errorStyle.Render(errorsCell)
	}
	tw.AppendRow(table.Row{report.Stats.Moved, report.Stats.Skipped, report.Stats.Removed, errorsCell})
	tw.Render()

	failures := report.Failures()
	if len(failures) == 0 {
		return nil
	}
	ft := newTable(r.output)
	ft.SetTitle(errorStyle.Render("Failed files"))
	ft.AppendHeader(table.Row{"File", "Error"})
	for _, f := range failures {
		ft.AppendRow(table.Row{f.Source, f.Error})
	}
	ft.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 80, Colors: text.Colors{text.FgRed}},
	})
	ft.Render()
	return nil
}

func (r *Renderer) renderRules(listing *types.RuleListing) error {
	tw := newTable(r.output)
	tw.SetTitle(titleStyle.Render("Rules"))
	tw.AppendHeader(table.Row{"Extension", "Folder"})
	for _, rule := range listing.Rules {
		tw.AppendRow(table.Row{rule.Extension, rule.Folder})
	}
	tw.AppendFooter(table.Row{"other", listing.Fallback})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: text.Colors{text.FgCyan}},
	})
	tw.Render()
	_, err := fmt.Fprintln(r.output, mutedStyle.Render(fmt.Sprintf("%d rules from %v", len(listing.Rules), listing.Sources)))
	return err
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	return tw
}

// RenderError renders an error in red
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintln(r.output, errorStyle.Render("Error:"), err)
	return writeErr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
