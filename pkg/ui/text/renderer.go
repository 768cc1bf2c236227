// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	prettytext "github.com/jedib0t/go-pretty/v6/text"

	"github.com/arthur-debert/organizer/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a run report or rule listing as plain tables
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
	title := "Organized"
	if report.Stats.DryRun {
		title = "Dry run"
	}
	if _, err := fmt.Fprintf(r.output, "%s: %s -> %s\n", title, report.Source, report.Dest); err != nil {
		return err
	}

	tw := newTable(r.output)
	tw.AppendHeader(table.Row{report.Stats.MovedLabel(), "skipped", "removed", "errors"})
	tw.AppendRow(table.Row{report.Stats.Moved, report.Stats.Skipped, report.Stats.Removed, report.Stats.Errors})
	tw.Render()

	failures := report.Failures()
	if len(failures) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(r.output, "\nFailed files:"); err != nil {
		return err
	}
	ft := newTable(r.output)
	ft.AppendHeader(table.Row{"File", "Error"})
	for _, f := range failures {
		ft.AppendRow(table.Row{f.Source, f.Error})
	}
	ft.Render()
	return nil
}

func (r *Renderer) renderRules(listing *types.RuleListing) error {
	tw := newTable(r.output)
	tw.AppendHeader(table.Row{"Extension", "Folder"})
	for _, rule := range listing.Rules {
		tw.AppendRow(table.Row{rule.Extension, rule.Folder})
	}
	tw.AppendFooter(table.Row{"(other)", listing.Fallback})
	tw.Render()
	_, err := fmt.Fprintf(r.output, "%d rules from %v\n", len(listing.Rules), listing.Sources)
	return err
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleDefault)
	// footers carry folder names, which are case-sensitive
	tw.Style().Format.Footer = prettytext.FormatDefault
	return tw
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return writeErr
}

// RenderMessage renders a simple message as plain text
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
