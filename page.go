package medroster

import "strings"

// Page is the visible text of one profile page as an ordered line sequence.
type Page struct {
	URL string

	// Heading is the text of the page's primary heading, if any.
	Heading string

	// Lines are non-empty, whitespace-trimmed, in document order.
	Lines []string
}

// PageReader turns rendered HTML into a line sequence.
type PageReader interface {
	// ReadPage parses the HTML and returns its visible text lines.
	// Returns EINVALID if the HTML is empty.
	ReadPage(html string, url string) (*Page, error)
}

// SplitLines splits visible page text into a line sequence: each line is
// trimmed and blank lines are dropped.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
