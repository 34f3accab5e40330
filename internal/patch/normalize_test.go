package patch

import (
	"strings"
	"testing"
)

func strp(s string) *string { return &s }

func TestNormalize_DropsIrrelevantFields(t *testing.T) {
	p := Normalize(Patch{
		File:        "a.md",
		Kind:        KindInsert,
		Line:        3,
		Content:     strp("x"),
		Target:      &LineRange{StartLine: 1, EndLine: 2},
		Replacement: strp("y"),
	})
	if p.Target != nil || p.Replacement != nil {
		t.Errorf("insert kept replace fields: %+v", p)
	}

	p = Normalize(Patch{
		File:        "a.md",
		Kind:        KindDelete,
		Line:        3,
		Content:     strp("x"),
		Target:      &LineRange{StartLine: 1, EndLine: 2},
		Replacement: strp("y"),
	})
	if p.Line != 0 || p.Content != nil || p.Replacement != nil {
		t.Errorf("delete kept foreign fields: %+v", p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		patch    Patch
		wantErrs []string // substrings that must each appear
	}{
		{
			name:  "valid insert",
			patch: Patch{File: "a.md", Kind: KindInsert, Line: 1, Content: strp("x")},
		},
		{
			name:  "insert with empty content is fine",
			patch: Patch{File: "a.md", Kind: KindInsert, Line: 1, Content: strp("")},
		},
		{
			name:     "insert missing content",
			patch:    Patch{File: "a.md", Kind: KindInsert, Line: 1},
			wantErrs: []string{"content is required"},
		},
		{
			name:     "insert line zero",
			patch:    Patch{File: "a.md", Kind: KindInsert, Line: 0, Content: strp("x")},
			wantErrs: []string{"at least 1"},
		},
		{
			name:  "valid replace",
			patch: Patch{File: "a.md", Kind: KindReplace, Target: &LineRange{StartLine: 1, EndLine: 2}, Replacement: strp("x")},
		},
		{
			name:     "replace with inverted range",
			patch:    Patch{File: "a.md", Kind: KindReplace, Target: &LineRange{StartLine: 5, EndLine: 3}, Replacement: strp("x")},
			wantErrs: []string{"endLine 3 is before startLine 5"},
		},
		{
			name:     "replace missing target and replacement",
			patch:    Patch{File: "a.md", Kind: KindReplace},
			wantErrs: []string{"target line range is required", "replacement text is required"},
		},
		{
			name:  "valid delete",
			patch: Patch{File: "a.md", Kind: KindDelete, Target: &LineRange{StartLine: 1, EndLine: 1}},
		},
		{
			name:     "empty file and unknown kind accumulate",
			patch:    Patch{Kind: Kind("append")},
			wantErrs: []string{"file is required", `unknown patch type "append"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.patch)
			if len(tt.wantErrs) == 0 {
				if len(errs) != 0 {
					t.Fatalf("want valid, got errors %v", errs)
				}
				return
			}
			joined := strings.Join(errs, " | ")
			for _, want := range tt.wantErrs {
				if !strings.Contains(joined, want) {
					t.Errorf("errors %v missing %q", errs, want)
				}
			}
		})
	}
}
