// Package safety maps patch change signals to a risk tier and an
// approval requirement. Assessment is pure; the thresholds travel in a
// small value struct rather than any shared instance.
package safety

import (
	"fmt"
	"strings"

	"github.com/scrivenapp/scriven/internal/patch"
	"github.com/scrivenapp/scriven/internal/textutil"
)

// RiskLevel is a totally ordered risk tier. Combining signals only ever
// escalates; a level never regresses once raised.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	}
	return fmt.Sprintf("RiskLevel(%d)", int(r))
}

// Escalate combines two risk levels, keeping the higher.
func Escalate(a, b RiskLevel) RiskLevel {
	if b > a {
		return b
	}
	return a
}

// Check is the outcome of assessing one patch or a whole batch.
type Check struct {
	Safe             bool
	Risk             RiskLevel
	Reasons          []string
	RequiresApproval bool
	Recommendation   string
}

// Thresholds tune the assessment. Zero fields fall back to defaults.
type Thresholds struct {
	// MaxAutoChangeLines is the affected-line count above which a patch
	// needs review; twice this count scores High.
	MaxAutoChangeLines int
	// MinFileLines: files shorter than this are low blast radius and
	// score Low regardless of the other signals.
	MinFileLines int
	// MaxAutoMultiFile is the number of distinct files a batch may touch
	// before the aggregate escalates.
	MaxAutoMultiFile int
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxAutoChangeLines: 100,
		MinFileLines:       10,
		MaxAutoMultiFile:   3,
	}
}

func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.MaxAutoChangeLines <= 0 {
		t.MaxAutoChangeLines = d.MaxAutoChangeLines
	}
	if t.MinFileLines <= 0 {
		t.MinFileLines = d.MinFileLines
	}
	if t.MaxAutoMultiFile <= 0 {
		t.MaxAutoMultiFile = d.MaxAutoMultiFile
	}
	return t
}

func recommendation(risk RiskLevel) string {
	switch risk {
	case RiskLow:
		return "Safe to apply automatically"
	case RiskMedium:
		return "Review recommended before applying"
	case RiskHigh:
		return "Careful review required before applying"
	default:
		return "Critical review required - do not apply without close inspection"
	}
}

// Assess scores a single enriched patch against the current content of
// its file.
func Assess(p patch.Enriched, fileContent string, t Thresholds) Check {
	t = t.withDefaults()

	if !p.Valid {
		reasons := append([]string{}, p.Errors...)
		return Check{
			Risk:             RiskCritical,
			Reasons:          reasons,
			RequiresApproval: true,
			Recommendation:   recommendation(RiskCritical) + ": " + strings.Join(reasons, "; "),
		}
	}

	risk := RiskLow
	var reasons []string

	// Change-percentage signal on the 0-1 normalized fraction.
	fraction := p.ChangePercentage / 100
	switch {
	case fraction > 0.8:
		risk = Escalate(risk, RiskCritical)
		reasons = append(reasons, fmt.Sprintf("change affects %.0f%% of the file", p.ChangePercentage))
	case fraction > 0.5:
		risk = Escalate(risk, RiskHigh)
		reasons = append(reasons, fmt.Sprintf("change affects %.0f%% of the file", p.ChangePercentage))
	case fraction > 0.2:
		risk = Escalate(risk, RiskMedium)
		reasons = append(reasons, fmt.Sprintf("change affects %.0f%% of the file", p.ChangePercentage))
	}

	// Line-count signal.
	affected := affectedLines(p)
	switch {
	case affected > 2*t.MaxAutoChangeLines:
		risk = Escalate(risk, RiskHigh)
		reasons = append(reasons, fmt.Sprintf("change spans %d lines", affected))
	case affected > t.MaxAutoChangeLines:
		risk = Escalate(risk, RiskMedium)
		reasons = append(reasons, fmt.Sprintf("change spans %d lines", affected))
	}

	// Small files are inherently low blast radius.
	if textutil.CountLines(fileContent) < t.MinFileLines {
		risk = RiskLow
		reasons = nil
	}

	// Full rewrite trumps everything, the small-file override included.
	if p.ChangePercentage > 80 {
		risk = RiskCritical
		reasons = append(reasons, "modifying more than 80% of the file")
	}

	check := Check{
		Safe:             risk == RiskLow,
		Risk:             risk,
		Reasons:          dedupe(reasons),
		RequiresApproval: risk != RiskLow,
	}
	check.Recommendation = recommendation(risk)
	if len(check.Reasons) > 0 {
		check.Recommendation += ": " + strings.Join(check.Reasons, "; ")
	}
	return check
}

func affectedLines(p patch.Enriched) int {
	if p.Kind == patch.KindInsert {
		if p.Content == nil {
			return 0
		}
		return textutil.CountLines(*p.Content)
	}
	if p.Target == nil {
		return 0
	}
	return p.Target.EndLine - p.Target.StartLine + 1
}

// AssessAll scores every patch in a batch and aggregates across the
// batch: per-patch risks escalate into the aggregate, and touching more
// distinct files than MaxAutoMultiFile escalates to at least Medium.
func AssessAll(patches []patch.Enriched, contents map[string]string, t Thresholds) (perPatch []Check, aggregate Check) {
	t = t.withDefaults()

	perPatch = make([]Check, 0, len(patches))
	files := make(map[string]struct{})

	agg := Check{Risk: RiskLow}
	var reasons []string
	for _, p := range patches {
		c := Assess(p, contents[p.File], t)
		perPatch = append(perPatch, c)
		agg.Risk = Escalate(agg.Risk, c.Risk)
		reasons = append(reasons, c.Reasons...)
		files[p.File] = struct{}{}
	}

	if len(files) > t.MaxAutoMultiFile {
		agg.Risk = Escalate(agg.Risk, RiskMedium)
		reasons = append(reasons, fmt.Sprintf("change touches %d files", len(files)))
	}

	agg.Reasons = dedupe(reasons)
	agg.Safe = agg.Risk == RiskLow
	agg.RequiresApproval = agg.Risk != RiskLow
	agg.Recommendation = recommendation(agg.Risk)
	if len(agg.Reasons) > 0 {
		agg.Recommendation += ": " + strings.Join(agg.Reasons, "; ")
	}
	return perPatch, agg
}

// dedupe removes duplicate reason strings, first occurrence wins.
func dedupe(reasons []string) []string {
	if len(reasons) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(reasons))
	out := reasons[:0]
	for _, r := range reasons {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
