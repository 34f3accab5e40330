package diff

import "github.com/pmezard/go-difflib/difflib"

// UnifiedFile renders a contextual unified diff between two whole-file
// states, three lines of context, for reviewer-facing output. The
// hand-rolled classifier in Compute stays the source of truth for
// per-line statistics; this is the prettier rendering.
func UnifiedFile(filePath, before, after string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: filePath,
		ToFile:   filePath,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}
