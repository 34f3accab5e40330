package patch

import (
	"fmt"

	"github.com/scrivenapp/scriven/internal/textutil"
)

// Enrich matches a patch against the current content of its target file
// and computes the derived metadata safety assessment and diffing need.
// Structural and range failures accumulate into Errors; Enrich always
// returns an Enriched, never aborts.
func Enrich(p Patch, content string) Enriched {
	e := Enriched{Patch: Normalize(p)}
	e.Errors = Validate(e.Patch)
	if len(e.Errors) > 0 {
		return e
	}

	fileChars := len(content)

	switch e.Kind {
	case KindInsert:
		if e.Line > textutil.CountLines(content)+1 {
			e.Errors = append(e.Errors, fmt.Sprintf(
				"insert line %d is past the end of a %d-line file", e.Line, textutil.CountLines(content)))
			break
		}
		e.ChangeSize = len(*e.Content)
		switch {
		case fileChars > 0:
			e.ChangePercentage = float64(e.ChangeSize) / float64(fileChars) * 100
		case e.ChangeSize > 0:
			e.ChangePercentage = 100
		}

	case KindReplace:
		original, err := textutil.ExtractLineRange(content, e.Target.StartLine, e.Target.EndLine)
		if err != nil {
			e.Errors = append(e.Errors, err.Error())
			break
		}
		e.OriginalContent = &original
		e.ChangeSize = len(*e.Replacement)
		// Line-count delta, not content similarity: a same-line-count
		// rewrite scores zero here. Known coarseness, kept cheap.
		originalLines := e.Target.EndLine - e.Target.StartLine + 1
		linesChanged := textutil.CountLines(*e.Replacement) - originalLines
		if linesChanged < 0 {
			linesChanged = -linesChanged
		}
		if originalLines > 0 {
			e.ChangePercentage = float64(linesChanged) / float64(originalLines) * 100
		}

	case KindDelete:
		original, err := textutil.ExtractLineRange(content, e.Target.StartLine, e.Target.EndLine)
		if err != nil {
			e.Errors = append(e.Errors, err.Error())
			break
		}
		e.OriginalContent = &original
		e.ChangeSize = len(original)
		if fileChars > 0 {
			e.ChangePercentage = float64(e.ChangeSize) / float64(fileChars) * 100
		}
	}

	e.Valid = len(e.Errors) == 0
	return e
}

// EnrichAll enriches a batch against a snapshot of document contents.
// Patches naming an unknown file are returned invalid with a
// "File not found" error; valid patches are still processed, an
// explicit partial-success model.
func EnrichAll(patches []Patch, contents map[string]string) []Enriched {
	enriched := make([]Enriched, 0, len(patches))
	for _, p := range patches {
		content, ok := contents[p.File]
		if !ok {
			e := Enriched{Patch: Normalize(p)}
			e.Errors = append(Validate(e.Patch), fmt.Sprintf("File not found: %s", p.File))
			enriched = append(enriched, e)
			continue
		}
		enriched = append(enriched, Enrich(p, content))
	}
	return enriched
}
