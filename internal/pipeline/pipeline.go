// Package pipeline orchestrates the patch pipeline: extraction,
// validation, enrichment, conflict detection, safety assessment,
// diffing, and sequential application. All stages run over snapshots;
// the caller owns document I/O before and after.
package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/scrivenapp/scriven/internal/diff"
	"github.com/scrivenapp/scriven/internal/patch"
	"github.com/scrivenapp/scriven/internal/safety"
	"github.com/scrivenapp/scriven/internal/textutil"
)

// Status is a patch's terminal (or held) state after a batch run.
type Status int

const (
	// StatusApplied: the mutation succeeded; NewContent is populated.
	StatusApplied Status = iota
	// StatusPendingApproval: the safety check requires an approval
	// decision that has not arrived.
	StatusPendingApproval
	// StatusRejected: structurally invalid, unknown file, or the
	// approval decision was negative. Never applied.
	StatusRejected
	// StatusFailed: the mutation itself failed, typically a stale
	// snapshot. The document is left untouched.
	StatusFailed
	// StatusNotAttempted: an earlier patch in the batch failed and the
	// batch stopped; this patch may be retried.
	StatusNotAttempted
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusPendingApproval:
		return "pending approval"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	case StatusNotAttempted:
		return "not attempted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ApplyError reports that a content mutation could not be performed,
// usually because the document changed between enrichment and
// application.
type ApplyError struct {
	File string
	Err  error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply to %s: %v", e.File, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// ApplyPatch applies a single patch to a content snapshot. On any
// failure the returned content is the input, untouched, with zero lines
// affected.
func ApplyPatch(p patch.Patch, content string) (newContent string, linesAffected int, err error) {
	p = patch.Normalize(p)
	if errs := patch.Validate(p); len(errs) > 0 {
		return content, 0, &ApplyError{File: p.File, Err: errors.New(errs[0])}
	}

	switch p.Kind {
	case patch.KindInsert:
		newContent, err = textutil.InsertAtLine(content, p.Line, *p.Content)
		linesAffected = textutil.CountLines(*p.Content)
	case patch.KindReplace:
		newContent, err = textutil.ReplaceLineRange(content, p.Target.StartLine, p.Target.EndLine, *p.Replacement)
		linesAffected = p.Target.EndLine - p.Target.StartLine + 1
	case patch.KindDelete:
		newContent, err = textutil.DeleteLineRange(content, p.Target.StartLine, p.Target.EndLine)
		linesAffected = p.Target.EndLine - p.Target.StartLine + 1
	}
	if err != nil {
		return content, 0, &ApplyError{File: p.File, Err: err}
	}
	return newContent, linesAffected, nil
}

// ComputeDiff applies the patch to a snapshot and returns the line diff
// between the two states, without committing anything.
func ComputeDiff(p patch.Patch, content string) (*diff.Info, error) {
	after, _, err := ApplyPatch(p, content)
	if err != nil {
		return nil, err
	}
	return diff.Compute(p.File, content, after), nil
}

// ApproveFunc is the external approval decision for a patch whose
// safety check requires one. Returning true applies the patch.
type ApproveFunc func(p patch.Enriched, check safety.Check) bool

// Pipeline carries run configuration. The zero value works: default
// thresholds, no logging, approval-required patches held pending.
type Pipeline struct {
	Thresholds safety.Thresholds
	Extract    patch.ExtractOptions
	Approve    ApproveFunc
	Log        *Logger
}

// Result is the outcome for one patch in a batch.
type Result struct {
	Patch         patch.Enriched
	Status        Status
	Check         safety.Check
	Diff          *diff.Info
	LinesAffected int
	Err           error
}

// BatchResult is the outcome of a full pipeline run. Contents holds the
// post-apply state of every document that was passed in; documents with
// applied patches carry their new content.
type BatchResult struct {
	Results   []Result
	Conflicts []patch.Conflict
	Aggregate safety.Check
	Warnings  []string
	Contents  map[string]string
}

// Applied counts successfully applied patches.
func (b *BatchResult) Applied() int {
	n := 0
	for _, r := range b.Results {
		if r.Status == StatusApplied {
			n++
		}
	}
	return n
}

// Run executes the whole pipeline against a response and a snapshot of
// document contents. Extraction failures are returned as-is so the
// caller can distinguish a conversational answer (patch.IsConversational)
// from malformed patch syntax. The input map is not mutated.
func (pl *Pipeline) Run(response string, contents map[string]string) (*BatchResult, error) {
	log := pl.Log
	if log == nil {
		log = NopLogger()
	}

	extracted, err := patch.ExtractWith(response, pl.Extract)
	if err != nil {
		return nil, err
	}
	log.PatchesExtracted(len(extracted.Patches), extracted.Warnings)

	enriched := patch.EnrichAll(extracted.Patches, contents)
	conflicts := patch.DetectConflicts(enriched)
	checks, aggregate := safety.AssessAll(enriched, contents, pl.Thresholds)

	// Sort indices rather than patches so each patch stays paired with
	// its safety check through the bottom-up application order.
	order := make([]int, len(enriched))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := &enriched[order[x]], &enriched[order[y]]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.AffectedRange().StartLine > b.AffectedRange().StartLine
	})

	working := make(map[string]string, len(contents))
	for k, v := range contents {
		working[k] = v
	}

	batch := &BatchResult{
		Conflicts: conflicts,
		Aggregate: aggregate,
		Warnings:  extracted.Warnings,
		Contents:  working,
	}

	stopped := false
	var counts [5]int
	for _, idx := range order {
		p := enriched[idx]
		c := checks[idx]
		res := Result{Patch: p, Check: c}

		switch {
		case stopped:
			res.Status = StatusNotAttempted

		case !p.Valid:
			res.Status = StatusRejected
			res.Err = errors.New(firstOr(p.Errors, "invalid patch"))

		case c.RequiresApproval && pl.Approve == nil:
			res.Status = StatusPendingApproval
			log.PatchHeld(p.File, c.Risk, c.Reasons)

		case c.RequiresApproval && !pl.Approve(p, c):
			res.Status = StatusRejected
			res.Err = fmt.Errorf("approval declined: %s", c.Recommendation)

		default:
			content := working[p.File]
			res.Diff, res.Err = ComputeDiff(p.Patch, content)
			if res.Err == nil {
				var newContent string
				newContent, res.LinesAffected, res.Err = ApplyPatch(p.Patch, content)
				if res.Err == nil {
					working[p.File] = newContent
					res.Status = StatusApplied
					log.PatchApplied(p.File, string(p.Kind), res.LinesAffected, c.Risk)
				}
			}
			if res.Err != nil {
				// Stop immediately; later patches stay retryable.
				res.Status = StatusFailed
				stopped = true
				log.PatchFailed(p.File, res.Err)
			}
		}

		counts[res.Status]++
		batch.Results = append(batch.Results, res)
	}

	log.BatchFinished(
		counts[StatusApplied],
		counts[StatusPendingApproval],
		counts[StatusRejected],
		counts[StatusFailed],
		counts[StatusNotAttempted],
	)
	return batch, nil
}

func firstOr(list []string, fallback string) string {
	if len(list) > 0 {
		return list[0]
	}
	return fallback
}
