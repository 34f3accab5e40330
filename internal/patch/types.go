// Package patch turns raw model output into validated, enriched edit
// instructions against live document content. Nothing in this package
// performs I/O; document content is always passed in as a snapshot.
package patch

// Kind discriminates the three edit operations. Values match the
// lowercase "type" field of the wire format exactly.
type Kind string

const (
	KindInsert  Kind = "insert"
	KindReplace Kind = "replace"
	KindDelete  Kind = "delete"
)

// LineRange is an inclusive 1-based line range.
type LineRange struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

// Patch is one atomic edit instruction as emitted by the model.
// Only the fields relevant to Kind are populated after Normalize:
// Line and Content for inserts, Target and Replacement for replaces,
// Target alone for deletes. Content and Replacement are pointers so
// that an absent field (a structural error) is distinguishable from a
// legitimately empty string.
type Patch struct {
	File        string     `json:"file"`
	Kind        Kind       `json:"type"`
	Line        int        `json:"line,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Target      *LineRange `json:"target,omitempty"`
	Replacement *string    `json:"replacement,omitempty"`
}

// Enriched is a Patch matched against the current content of its file.
// Derived fields are recomputed whenever the patch or the document
// changes; they are never mutated in place.
type Enriched struct {
	Patch

	Valid  bool
	Errors []string

	// OriginalContent is the exact slice being replaced or deleted.
	// Absent for inserts and for patches whose range did not resolve.
	OriginalContent *string

	// ChangeSize is the character count of the new content (for deletes,
	// of the removed content).
	ChangeSize int

	// ChangePercentage relates the change to the whole file. For
	// replaces it is a line-count-delta heuristic, not a similarity
	// measure, and can legitimately exceed 100.
	ChangePercentage float64
}
