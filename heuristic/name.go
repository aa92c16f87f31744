package heuristic

import (
	"strings"

	"github.com/fwojciec/medroster"
)

// name prefers the page heading, falling back to the first honorific line
// near the top of the page.
func (e *Extractor) name(page *medroster.Page) string {
	if h := strings.TrimSpace(page.Heading); h != "" && runeLen(h) < maxHeadingLen {
		return h
	}

	for _, line := range head(page.Lines, nameWindow) {
		if !containsAny(line, e.vocab.Honorifics) {
			continue
		}
		if runeLen(line) < maxNameLen && !containsAny(line, e.vocab.NameNoise) {
			return line
		}
	}
	return ""
}
