package textutil

import (
	"errors"
	"testing"
)

func TestCountLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"single line", "hello", 1},
		{"two lines", "a\nb", 2},
		{"trailing newline counts as its own line", "a\nb\n", 3},
		{"only newline", "\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountLines(tt.content); got != tt.want {
				t.Errorf("CountLines(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestLineNumbersToOffsets(t *testing.T) {
	content := "one\ntwo\nthree"

	off, err := LineNumbersToOffsets(content, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if off.StartOffset != 4 || off.EndOffset != 7 {
		t.Errorf("offsets = %+v, want {4 7}", off)
	}
	if content[off.StartOffset:off.EndOffset] != "two" {
		t.Errorf("slice = %q, want 'two'", content[off.StartOffset:off.EndOffset])
	}

	off, err = LineNumbersToOffsets(content, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content[off.StartOffset:off.EndOffset] != content {
		t.Errorf("full range slice = %q", content[off.StartOffset:off.EndOffset])
	}
}

func TestLineNumbersToOffsets_RangeErrors(t *testing.T) {
	content := "one\ntwo\nthree"

	tests := []struct {
		name       string
		start, end int
	}{
		{"start below 1", 0, 2},
		{"end before start", 3, 2},
		{"end past last line", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LineNumbersToOffsets(content, tt.start, tt.end)
			var re *RangeError
			if !errors.As(err, &re) {
				t.Fatalf("want RangeError, got %v", err)
			}
		})
	}
}

func TestOffsetLineConsistency(t *testing.T) {
	content := "alpha\nbeta\ngamma\ndelta"
	for line := 1; line <= CountLines(content); line++ {
		off, err := LineNumbersToOffsets(content, line, line)
		if err != nil {
			t.Fatalf("line %d: %v", line, err)
		}
		gotLine, _ := OffsetToLineColumn(content, off.StartOffset)
		if gotLine != line {
			t.Errorf("round trip for line %d gave %d", line, gotLine)
		}
	}
}

func TestExtractLineRange(t *testing.T) {
	content := "one\ntwo\nthree\nfour"

	got, err := ExtractLineRange(content, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "two\nthree" {
		t.Errorf("got %q, want 'two\\nthree'", got)
	}

	if _, err := ExtractLineRange(content, 2, 9); err == nil {
		t.Error("expected range error for end past EOF")
	}
}

func TestReplaceLineRange(t *testing.T) {
	content := "one\ntwo\nthree"

	got, err := ReplaceLineRange(content, 2, 2, "TWO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "one\nTWO\nthree" {
		t.Errorf("got %q", got)
	}

	// Replacement may span a different number of lines than the range.
	got, err = ReplaceLineRange(content, 1, 3, "a\nb\nc\nd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a\nb\nc\nd" {
		t.Errorf("got %q", got)
	}
}

func TestInsertAtLine(t *testing.T) {
	content := "one\ntwo"

	got, err := InsertAtLine(content, 1, "zero")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "zero\none\ntwo" {
		t.Errorf("got %q", got)
	}

	// lineCount+1 appends after the last line.
	got, err = InsertAtLine(content, 3, "three")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "one\ntwo\nthree" {
		t.Errorf("got %q", got)
	}

	if _, err := InsertAtLine(content, 4, "late"); err == nil {
		t.Error("expected range error past lineCount+1")
	}

	// Empty content accepts only line 1.
	got, err = InsertAtLine("", 1, "first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first" {
		t.Errorf("got %q", got)
	}
	if _, err := InsertAtLine("", 2, "x"); err == nil {
		t.Error("expected range error for empty content at line 2")
	}
}

func TestDeleteLineRange(t *testing.T) {
	content := "one\ntwo\nthree"

	got, err := DeleteLineRange(content, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "one\nthree" {
		t.Errorf("got %q", got)
	}

	got, err = DeleteLineRange(content, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("deleting all lines gave %q, want empty", got)
	}
}

func TestDeleteThenInsertRoundTrip(t *testing.T) {
	content := "one\ntwo\nthree\nfour\nfive"

	original, err := ExtractLineRange(content, 2, 4)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	deleted, err := DeleteLineRange(content, 2, 4)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	restored, err := InsertAtLine(deleted, 2, original)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if restored != content {
		t.Errorf("round trip gave %q, want %q", restored, content)
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\r\n\rb\n", "a\n\nb\n"},
		{"plain\n", "plain\n"},
	}

	for _, tt := range tests {
		if got := NormalizeLineEndings(tt.in); got != tt.want {
			t.Errorf("NormalizeLineEndings(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
