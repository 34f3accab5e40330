package patch

import (
	"reflect"
	"testing"
)

func replacePatch(file string, start, end int) Enriched {
	return Enriched{
		Patch: Patch{
			File:        file,
			Kind:        KindReplace,
			Target:      &LineRange{StartLine: start, EndLine: end},
			Replacement: strp("x"),
		},
		Valid: true,
	}
}

func TestDetectConflicts_OverlappingReplaces(t *testing.T) {
	patches := []Enriched{
		replacePatch("notes.md", 10, 20),
		replacePatch("notes.md", 15, 25),
	}

	conflicts := DetectConflicts(patches)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}
	c := conflicts[0]
	if c.File != "notes.md" || c.A != 0 || c.B != 1 {
		t.Errorf("conflict = %+v", c)
	}
	if c.Overlap != (LineRange{StartLine: 15, EndLine: 20}) {
		t.Errorf("overlap = %+v, want 15-20", c.Overlap)
	}
}

func TestDetectConflicts_Symmetry(t *testing.T) {
	a := replacePatch("a.md", 3, 8)
	b := replacePatch("a.md", 5, 12)

	forward := DetectConflicts([]Enriched{a, b})
	reversed := DetectConflicts([]Enriched{b, a})
	if len(forward) != 1 || len(reversed) != 1 {
		t.Fatalf("want one conflict each way, got %d and %d", len(forward), len(reversed))
	}
	if forward[0].Overlap != reversed[0].Overlap {
		t.Errorf("overlap differs by order: %+v vs %+v", forward[0].Overlap, reversed[0].Overlap)
	}
}

func TestDetectConflicts_DifferentFilesNeverConflict(t *testing.T) {
	patches := []Enriched{
		replacePatch("a.md", 1, 10),
		replacePatch("b.md", 1, 10),
	}
	if got := DetectConflicts(patches); len(got) != 0 {
		t.Errorf("cross-file conflict reported: %+v", got)
	}
}

func TestDetectConflicts_InsertInsideReplaceRange(t *testing.T) {
	insert := Enriched{
		Patch: Patch{File: "a.md", Kind: KindInsert, Line: 5, Content: strp("x")},
		Valid: true,
	}
	patches := []Enriched{insert, replacePatch("a.md", 3, 8)}

	conflicts := DetectConflicts(patches)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}
	if conflicts[0].Overlap != (LineRange{StartLine: 5, EndLine: 5}) {
		t.Errorf("overlap = %+v, want 5-5", conflicts[0].Overlap)
	}
}

func TestDetectConflicts_AdjacentRangesDoNotOverlap(t *testing.T) {
	patches := []Enriched{
		replacePatch("a.md", 1, 5),
		replacePatch("a.md", 6, 10),
	}
	if got := DetectConflicts(patches); len(got) != 0 {
		t.Errorf("adjacent ranges reported as conflict: %+v", got)
	}
}

func TestSortForApply(t *testing.T) {
	patches := []Enriched{
		replacePatch("b.md", 5, 6),
		replacePatch("a.md", 10, 12),
		replacePatch("a.md", 40, 41),
		replacePatch("b.md", 90, 95),
	}

	sorted := SortForApply(patches)

	var order [][2]interface{}
	for _, p := range sorted {
		order = append(order, [2]interface{}{p.File, p.Target.StartLine})
	}
	want := [][2]interface{}{
		{"a.md", 40}, {"a.md", 10}, {"b.md", 90}, {"b.md", 5},
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	// Input slice is left untouched.
	if patches[0].File != "b.md" || patches[0].Target.StartLine != 5 {
		t.Error("SortForApply mutated its input")
	}
}
