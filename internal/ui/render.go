package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/scrivenapp/scriven/internal/diff"
	"github.com/scrivenapp/scriven/internal/patch"
	"github.com/scrivenapp/scriven/internal/pipeline"
	"github.com/scrivenapp/scriven/internal/safety"
	"github.com/scrivenapp/scriven/internal/textutil"
)

func riskColor(r safety.RiskLevel) *color.Color {
	switch r {
	case safety.RiskCritical:
		return riskCriticalColor
	case safety.RiskHigh:
		return riskHighColor
	case safety.RiskMedium:
		return riskMediumColor
	default:
		return riskLowColor
	}
}

// RenderDiff prints a colored per-line diff.
func (w *Writer) RenderDiff(d *diff.Info) {
	if w.quiet || d == nil {
		return
	}
	fmt.Fprintf(w.stdout, "--- %s\n", d.FilePath)
	for _, line := range d.Diff {
		switch line.Kind {
		case diff.Added:
			addColor.Fprintf(w.stdout, "+ %4d  %s\n", line.LineNumber, line.Content)
		case diff.Removed:
			removeColor.Fprintf(w.stdout, "- %4d  %s\n", line.LineNumber, line.Content)
		case diff.Modified:
			modifyColor.Fprintf(w.stdout, "~ %4d  %s\n", line.LineNumber, line.Content)
		default:
			grayColor.Fprintf(w.stdout, "  %4d  %s\n", line.LineNumber, line.Content)
		}
	}
	s := d.Stats
	grayColor.Fprintf(w.stdout, "  %d added, %d removed, %d modified\n", s.Additions, s.Deletions, s.Modifications)
}

// RenderCheck prints the safety verdict for one patch.
func (w *Writer) RenderCheck(p patch.Enriched, c safety.Check) {
	if w.quiet {
		return
	}
	rc := riskColor(c.Risk)
	rc.Fprintf(w.stdout, "[%s] %s (%s)\n", c.Risk, p.File, p.Kind)
	for _, reason := range c.Reasons {
		grayColor.Fprintf(w.stdout, "  - %s\n", reason)
	}
	grayColor.Fprintf(w.stdout, "  %s\n", c.Recommendation)
}

// RenderConflicts warns about overlapping patches.
func (w *Writer) RenderConflicts(conflicts []patch.Conflict) {
	for _, c := range conflicts {
		w.Warn(fmt.Sprintf("patches %d and %d overlap in %s (lines %d-%d)",
			c.A+1, c.B+1, c.File, c.Overlap.StartLine, c.Overlap.EndLine))
	}
}

// RenderOutline prints a document's heading structure.
func (w *Writer) RenderOutline(headings []textutil.Heading) {
	if w.quiet {
		return
	}
	if len(headings) == 0 {
		grayColor.Fprintln(w.stdout, "(no headings)")
		return
	}
	for _, h := range headings {
		indent := strings.Repeat("  ", h.Level-1)
		headingColor.Fprintf(w.stdout, "%s%s", indent, h.Text)
		grayColor.Fprintf(w.stdout, "  :%d\n", h.LineNumber)
	}
}

// RenderBatch prints the outcome of a pipeline run.
func (w *Writer) RenderBatch(batch *pipeline.BatchResult) {
	for _, warning := range batch.Warnings {
		w.Warn(warning)
	}
	w.RenderConflicts(batch.Conflicts)

	for i, r := range batch.Results {
		if w.quiet {
			break
		}
		fmt.Fprintf(w.stdout, "\npatch %d/%d:\n", i+1, len(batch.Results))
		w.RenderCheck(r.Patch, r.Check)
		switch r.Status {
		case pipeline.StatusApplied:
			addColor.Fprintf(w.stdout, "  applied (%d lines)\n", r.LinesAffected)
			w.RenderDiff(r.Diff)
		case pipeline.StatusPendingApproval:
			warnColor.Fprintln(w.stdout, "  held for approval")
		case pipeline.StatusRejected:
			removeColor.Fprintln(w.stdout, "  rejected")
			for _, msg := range r.Patch.Errors {
				grayColor.Fprintf(w.stdout, "    %s\n", msg)
			}
		case pipeline.StatusFailed:
			removeColor.Fprintf(w.stdout, "  failed: %v\n", r.Err)
		case pipeline.StatusNotAttempted:
			grayColor.Fprintln(w.stdout, "  not attempted")
		}
	}

	if !w.quiet {
		rc := riskColor(batch.Aggregate.Risk)
		fmt.Fprintln(w.stdout)
		rc.Fprintf(w.stdout, "batch risk: %s\n", batch.Aggregate.Risk)
		grayColor.Fprintf(w.stdout, "%d of %d patches applied\n", batch.Applied(), len(batch.Results))
	}
}
