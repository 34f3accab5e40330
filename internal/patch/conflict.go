package patch

import "sort"

// Conflict is a pair of patches on the same file whose line ranges
// overlap. A and B index into the slice passed to DetectConflicts, with
// A < B, so the reported pair is identical regardless of comparison
// order. Conflicts are advisory: a user may intentionally accept one of
// two competing suggestions.
type Conflict struct {
	File    string
	A, B    int
	Overlap LineRange
}

// AffectedRange is the line span a patch touches: the insertion point
// for inserts, the target range for replaces and deletes.
func (e *Enriched) AffectedRange() LineRange {
	if e.Kind == KindInsert {
		return LineRange{StartLine: e.Line, EndLine: e.Line}
	}
	if e.Target != nil {
		return *e.Target
	}
	return LineRange{}
}

// DetectConflicts compares every unordered pair of patches within each
// file group. Quadratic per file, which is fine: model responses rarely
// carry more than tens of patches.
func DetectConflicts(patches []Enriched) []Conflict {
	byFile := make(map[string][]int)
	for i := range patches {
		byFile[patches[i].File] = append(byFile[patches[i].File], i)
	}

	var conflicts []Conflict
	for _, idxs := range byFile {
		for x := 0; x < len(idxs); x++ {
			for y := x + 1; y < len(idxs); y++ {
				a, b := idxs[x], idxs[y]
				ra := patches[a].AffectedRange()
				rb := patches[b].AffectedRange()
				if ra.StartLine <= rb.EndLine && rb.StartLine <= ra.EndLine {
					conflicts = append(conflicts, Conflict{
						File: patches[a].File,
						A:    a,
						B:    b,
						Overlap: LineRange{
							StartLine: max(ra.StartLine, rb.StartLine),
							EndLine:   min(ra.EndLine, rb.EndLine),
						},
					})
				}
			}
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].A != conflicts[j].A {
			return conflicts[i].A < conflicts[j].A
		}
		return conflicts[i].B < conflicts[j].B
	})
	return conflicts
}

// SortForApply orders a batch for safe sequential application: by file,
// then by start line descending within a file. Applying from the bottom
// of a file upward keeps earlier edits from shifting the line numbers
// later edits still reference.
func SortForApply(patches []Enriched) []Enriched {
	sorted := make([]Enriched, len(patches))
	copy(sorted, patches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].AffectedRange().StartLine > sorted[j].AffectedRange().StartLine
	})
	return sorted
}
