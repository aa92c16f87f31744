package heuristic

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// specialty looks for a known specialty keyword near the top of the page,
// then falls back to a line shaped like a profession title.
func (e *Extractor) specialty(lines []string) string {
	if s := e.specialtyByKeyword(lines); s != "" {
		return s
	}
	return e.specialtyBySuffix(lines)
}

// specialtyByKeyword returns the first line matching a keyword. Keywords are
// tried in priority order on each line, so an earlier line always wins.
func (e *Extractor) specialtyByKeyword(lines []string) string {
	for _, line := range head(lines, specialtyWindow) {
		if containsAny(line, e.vocab.SpecialtyNoise) {
			continue
		}

		lower := strings.ToLower(line)
		for _, k := range e.lowerSpecialties {
			if lower == k {
				return line
			}
			if strings.Contains(lower, k) && runeLen(line) < maxSpecialtyLineLen &&
				!containsAny(line, e.vocab.CredentialGuard) {
				return line
			}
		}
	}
	return ""
}

func (e *Extractor) specialtyBySuffix(lines []string) string {
	for _, line := range head(lines, suffixWindow) {
		n := runeLen(line)
		if n <= minSuffixLineLen || n >= maxSuffixLineLen {
			continue
		}
		first, _ := utf8.DecodeRuneInString(line)
		if !unicode.IsUpper(first) {
			continue
		}
		if hasAnySuffix(line, e.vocab.ProfessionSuffixes) && !containsAny(line, e.vocab.SuffixNoise) {
			return line
		}
	}
	return ""
}
