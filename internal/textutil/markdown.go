package textutil

import (
	"regexp"
	"strings"
)

var headingRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Heading is one markdown heading found in a document.
type Heading struct {
	Level      int // 1-6
	Text       string
	LineNumber int // 1-based
}

// ExtractMarkdownHeadings scans content line by line for ATX headings.
func ExtractMarkdownHeadings(content string) []Heading {
	var headings []Heading
	for i, line := range strings.Split(content, "\n") {
		m := headingRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		headings = append(headings, Heading{
			Level:      len(m[1]),
			Text:       strings.TrimSpace(m[2]),
			LineNumber: i + 1,
		})
	}
	return headings
}
