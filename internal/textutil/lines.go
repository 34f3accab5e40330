// Package textutil provides line-oriented primitives for document content.
// All functions treat content as the naive split on '\n': a trailing
// newline produces a final empty line that counts as its own line.
// Line numbers are 1-based and inclusive.
package textutil

import (
	"fmt"
	"strings"
)

// RangeError reports a line range that does not fit the content it was
// applied to. It is returned (never panicked) by the mutation primitives;
// callers above this layer convert it into a patch-level error entry.
type RangeError struct {
	StartLine int
	EndLine   int
	LineCount int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("line range %d-%d out of bounds for %d-line content", e.StartLine, e.EndLine, e.LineCount)
}

// Offsets is a half-open character span within content.
// StartOffset points at the first character of the start line, EndOffset
// just past the last character of the end line (its newline excluded).
type Offsets struct {
	StartOffset int
	EndOffset   int
}

func checkRange(lines []string, startLine, endLine int) error {
	if startLine < 1 || endLine < startLine || endLine > len(lines) {
		return &RangeError{StartLine: startLine, EndLine: endLine, LineCount: len(lines)}
	}
	return nil
}

// LineNumbersToOffsets converts an inclusive line range to character offsets.
func LineNumbersToOffsets(content string, startLine, endLine int) (Offsets, error) {
	lines := strings.Split(content, "\n")
	if err := checkRange(lines, startLine, endLine); err != nil {
		return Offsets{}, err
	}

	start := 0
	for i := 0; i < startLine-1; i++ {
		start += len(lines[i]) + 1
	}
	end := start
	for i := startLine - 1; i < endLine; i++ {
		end += len(lines[i]) + 1
	}
	end-- // drop the trailing newline of the end line
	return Offsets{StartOffset: start, EndOffset: end}, nil
}

// OffsetToLineColumn converts a character offset to a 1-based line and
// column. Offsets past the end of content map to the final position.
func OffsetToLineColumn(content string, offset int) (line, column int) {
	line, column = 1, 1
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// CountLines returns the number of lines in content. An empty string has
// zero lines; otherwise the count is the naive split length, so content
// ending in '\n' has a final empty line.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// ExtractLineRange returns lines [startLine, endLine] joined with '\n'.
func ExtractLineRange(content string, startLine, endLine int) (string, error) {
	lines := strings.Split(content, "\n")
	if err := checkRange(lines, startLine, endLine); err != nil {
		return "", err
	}
	return strings.Join(lines[startLine-1:endLine], "\n"), nil
}

// ReplaceLineRange replaces lines [startLine, endLine] with replacement,
// which may span a different number of lines than the range it replaces.
func ReplaceLineRange(content string, startLine, endLine int, replacement string) (string, error) {
	lines := strings.Split(content, "\n")
	if err := checkRange(lines, startLine, endLine); err != nil {
		return "", err
	}

	result := make([]string, 0, len(lines))
	result = append(result, lines[:startLine-1]...)
	result = append(result, strings.Split(replacement, "\n")...)
	result = append(result, lines[endLine:]...)
	return strings.Join(result, "\n"), nil
}

// InsertAtLine inserts text before lineNumber. lineNumber may be
// CountLines(content)+1, which appends after the last line.
func InsertAtLine(content string, lineNumber int, text string) (string, error) {
	if content == "" {
		if lineNumber != 1 {
			return "", &RangeError{StartLine: lineNumber, EndLine: lineNumber, LineCount: 0}
		}
		return text, nil
	}

	lines := strings.Split(content, "\n")
	if lineNumber < 1 || lineNumber > len(lines)+1 {
		return "", &RangeError{StartLine: lineNumber, EndLine: lineNumber, LineCount: len(lines)}
	}

	result := make([]string, 0, len(lines)+1)
	result = append(result, lines[:lineNumber-1]...)
	result = append(result, strings.Split(text, "\n")...)
	result = append(result, lines[lineNumber-1:]...)
	return strings.Join(result, "\n"), nil
}

// DeleteLineRange removes lines [startLine, endLine].
func DeleteLineRange(content string, startLine, endLine int) (string, error) {
	lines := strings.Split(content, "\n")
	if err := checkRange(lines, startLine, endLine); err != nil {
		return "", err
	}

	result := make([]string, 0, len(lines))
	result = append(result, lines[:startLine-1]...)
	result = append(result, lines[endLine:]...)
	return strings.Join(result, "\n"), nil
}

// NormalizeLineEndings collapses CRLF and lone CR to LF. Applied once at
// ingestion so every other function here can assume '\n' separators.
func NormalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}
