package heuristic

import (
	"strings"
)

// qualifications collects every credential line near the top of the page
// and joins them into one comma separated value.
func (e *Extractor) qualifications(lines []string) string {
	var found []string
	seen := make(map[string]bool)

	for _, line := range head(lines, qualificationWindow) {
		if containsAny(line, e.vocab.QualificationExclusions) {
			continue
		}
		if !e.hasCredential(line) {
			continue
		}

		// Title lines such as "Prof. Dr. A (MBBS)" belong to the name.
		if containsAny(line, e.vocab.Honorifics) && runeLen(line) < maxTitleLineLen {
			continue
		}

		cleaned := e.stripLabel(strings.TrimSpace(line))
		if n := runeLen(cleaned); n <= minQualificationLen || n >= maxQualificationLen {
			continue
		}
		if !seen[cleaned] {
			seen[cleaned] = true
			found = append(found, cleaned)
		}
	}

	if len(found) == 0 {
		return ""
	}
	return tidyList(strings.Join(found, ", "))
}

// hasCredential matches credential keywords as case-insensitive substrings.
// Short keywords such as "MS" or "DO" therefore also match inside words.
func (e *Extractor) hasCredential(line string) bool {
	upper := strings.ToUpper(line)
	for _, k := range e.upperQualifications {
		if strings.Contains(upper, k) {
			return true
		}
	}
	return false
}

func (e *Extractor) stripLabel(line string) string {
	for _, prefix := range e.vocab.QualificationPrefixes {
		if strings.HasPrefix(line, prefix) {
			line = strings.TrimSpace(strings.ReplaceAll(line, prefix, ""))
		}
	}
	return line
}

// tidyList collapses whitespace runs, removes spaces before commas and
// collapses doubled commas.
func tidyList(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " ,", ",")
	return strings.ReplaceAll(s, ",,", ",")
}
