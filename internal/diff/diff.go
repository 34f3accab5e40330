// Package diff computes line-level diffs between document states. The
// classifier is a simple two-cursor walk with one line of lookahead,
// which suits the localized, contiguous edits patches produce. It is not
// an LCS diff: non-adjacent rearrangements can misclassify as Modified
// rather than Added+Removed pairs.
package diff

import (
	"fmt"
	"strings"
)

// LineKind classifies one diff line.
type LineKind int

const (
	Unchanged LineKind = iota
	Added
	Removed
	Modified
)

func (k LineKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	}
	return fmt.Sprintf("LineKind(%d)", int(k))
}

// Line is one row of a computed diff. LineNumber is the 1-based position
// in the before content (for Added, the position the line lands next
// to). NewLineNumber is the position in the after content, nil for
// Removed. Content carries the after side for Added and Modified, the
// before side otherwise.
type Line struct {
	LineNumber    int
	Kind          LineKind
	Content       string
	NewLineNumber *int
}

// Stats aggregates a diff.
type Stats struct {
	Additions     int
	Deletions     int
	Modifications int
}

// Info is a complete diff for one file.
type Info struct {
	FilePath string
	Before   string
	After    string
	Diff     []Line
	Stats    Stats
}

func intp(v int) *int { return &v }

// Compute walks before and after line by line. On a mismatch it looks
// one line ahead on each side to decide between a pure removal, a pure
// addition, or a modification consuming one line from each.
func Compute(filePath, before, after string) *Info {
	beforeLines := strings.Split(before, "\n")
	afterLines := strings.Split(after, "\n")

	var lines []Line
	var stats Stats

	i, j := 0, 0
	for i < len(beforeLines) || j < len(afterLines) {
		switch {
		case i >= len(beforeLines):
			lines = append(lines, Line{
				LineNumber:    i + 1,
				Kind:          Added,
				Content:       afterLines[j],
				NewLineNumber: intp(j + 1),
			})
			stats.Additions++
			j++

		case j >= len(afterLines):
			lines = append(lines, Line{
				LineNumber: i + 1,
				Kind:       Removed,
				Content:    beforeLines[i],
			})
			stats.Deletions++
			i++

		case beforeLines[i] == afterLines[j]:
			lines = append(lines, Line{
				LineNumber:    i + 1,
				Kind:          Unchanged,
				Content:       beforeLines[i],
				NewLineNumber: intp(j + 1),
			})
			i++
			j++

		case i+1 < len(beforeLines) && beforeLines[i+1] == afterLines[j]:
			// Current before line was deleted; the next step realigns.
			lines = append(lines, Line{
				LineNumber: i + 1,
				Kind:       Removed,
				Content:    beforeLines[i],
			})
			stats.Deletions++
			i++

		case j+1 < len(afterLines) && afterLines[j+1] == beforeLines[i]:
			lines = append(lines, Line{
				LineNumber:    i + 1,
				Kind:          Added,
				Content:       afterLines[j],
				NewLineNumber: intp(j + 1),
			})
			stats.Additions++
			j++

		default:
			lines = append(lines, Line{
				LineNumber:    i + 1,
				Kind:          Modified,
				Content:       afterLines[j],
				NewLineNumber: intp(j + 1),
			})
			stats.Modifications++
			i++
			j++
		}
	}

	return &Info{
		FilePath: filePath,
		Before:   before,
		After:    after,
		Diff:     lines,
		Stats:    stats,
	}
}

// Unified renders the diff in unified format. Modified lines become a
// removed line immediately followed by an added line.
func (d *Info) Unified() string {
	beforeLines := strings.Split(d.Before, "\n")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", d.FilePath)
	fmt.Fprintf(&sb, "+++ %s\n", d.FilePath)
	fmt.Fprintf(&sb, "@@ -1,%d +1,%d @@\n", len(beforeLines), len(strings.Split(d.After, "\n")))

	for _, line := range d.Diff {
		switch line.Kind {
		case Unchanged:
			sb.WriteString(" " + line.Content + "\n")
		case Added:
			sb.WriteString("+" + line.Content + "\n")
		case Removed:
			sb.WriteString("-" + line.Content + "\n")
		case Modified:
			old := ""
			if line.LineNumber >= 1 && line.LineNumber <= len(beforeLines) {
				old = beforeLines[line.LineNumber-1]
			}
			sb.WriteString("-" + old + "\n")
			sb.WriteString("+" + line.Content + "\n")
		}
	}
	return sb.String()
}
