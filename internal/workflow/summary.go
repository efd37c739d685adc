package workflow

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"chaptercut/internal/postprocess"
	"chaptercut/internal/services"
	"chaptercut/internal/timestamps"
)

// RenderSegments writes the planned segment list.
func RenderSegments(w io.Writer, segments []timestamps.Segment) {
	tw := newTable()
	tw.AppendHeader(table.Row{"#", "Title", "Start", "End", "Length"})
	for _, seg := range segments {
		length := timestamps.FormatClock(seg.Length())
		if seg.IsGuard() {
			length = "skip"
		}
		tw.AppendRow(table.Row{seg.Index, seg.Title, timestamps.FormatClock(seg.Start), timestamps.FormatClock(seg.End), length})
	}
	fmt.Fprintln(w, tw.Render())
}

// RenderSummary writes per-segment outcomes and the run totals.
func RenderSummary(w io.Writer, report Report) {
	tw := newTable()
	tw.AppendHeader(table.Row{"#", "Title", "State", "Detail"})
	for _, r := range report.Results {
		tw.AppendRow(table.Row{r.Index, r.Title, string(r.State), resultDetail(r)})
	}
	tw.AppendFooter(table.Row{"", "", fmt.Sprintf("%d/%d done", report.Completed(), len(report.Results)), report.OutputDir})
	fmt.Fprintln(w, tw.Render())
	if report.Sidecar != "" {
		fmt.Fprintf(w, "Timestamps saved to %s\n", report.Sidecar)
	}
}

func resultDetail(r postprocess.Result) string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("[%s] %v", services.Kind(r.Err), r.Err)
	case r.State == postprocess.StateSkipped:
		return "empty span"
	case len(r.Warnings) > 0:
		return fmt.Sprintf("%s (tag warning: %s)", filepath.Base(r.Output), r.Warnings[0])
	default:
		return filepath.Base(r.Output)
	}
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, WidthMax: 80},
	})
	return tw
}
