// Package heuristic extracts doctor profile fields from a page's visible
// text lines using keyword and position rules.
package heuristic

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/medroster"
)

// Scan windows, counted in lines from the top of the page.
const (
	nameWindow          = 10
	specialtyWindow     = 15
	suffixWindow        = 20
	qualificationWindow = 30
	experienceWindow    = 30
	locationWindow      = 4
)

// Length bounds, counted in characters.
const (
	maxHeadingLen       = 100
	maxNameLen          = 100
	maxTitleLineLen     = 50
	minQualificationLen = 3
	maxQualificationLen = 250
	maxSpecialtyLineLen = 100
	minSuffixLineLen    = 5
	maxSuffixLineLen    = 40
	minHospitalLen      = 5
	maxHospitalLen      = 200
	minLocationLen      = 15
)

// Compile-time interface verification.
var _ medroster.Extractor = (*Extractor)(nil)

// Extractor derives a raw record from a page's line sequence.
// It is safe for concurrent use.
type Extractor struct {
	vocab *medroster.Vocabulary

	upperQualifications []string
	lowerSpecialties    []string
}

// NewExtractor creates an Extractor matching against a copy of the vocabulary.
// A nil vocabulary uses medroster.DefaultVocabulary.
func NewExtractor(vocab *medroster.Vocabulary) *Extractor {
	if vocab == nil {
		vocab = medroster.DefaultVocabulary()
	} else {
		vocab = vocab.Clone()
	}

	e := &Extractor{vocab: vocab}
	for _, k := range vocab.QualificationKeywords {
		e.upperQualifications = append(e.upperQualifications, strings.ToUpper(k))
	}
	for _, k := range vocab.SpecialtyKeywords {
		e.lowerSpecialties = append(e.lowerSpecialties, strings.ToLower(k))
	}
	return e
}

// Extract derives every field independently. A field whose rule finds
// nothing is left empty. Extract never fails.
func (e *Extractor) Extract(page *medroster.Page) medroster.RawRecord {
	if page == nil {
		return medroster.RawRecord{}
	}

	lines := trimLines(page.Lines)
	p := &medroster.Page{URL: page.URL, Heading: page.Heading, Lines: lines}

	rec := medroster.RawRecord{
		ProfileURL:     strings.TrimSpace(page.URL),
		Name:           guard(func() string { return e.name(p) }),
		Qualifications: guard(func() string { return e.qualifications(lines) }),
		Specialty:      guard(func() string { return e.specialty(lines) }),
		Experience:     guard(func() string { return e.experience(lines) }),
	}

	// A failure in the hospital rule leaves both values missing.
	func() {
		defer func() {
			if recover() != nil {
				rec.Hospital, rec.Location = "", ""
			}
		}()
		rec.Hospital, rec.Location = e.hospitalAndLocation(lines)
	}()

	return rec
}

// guard runs a field rule, turning a panic into a missing value.
func guard(rule func() string) (value string) {
	defer func() {
		if recover() != nil {
			value = ""
		}
	}()
	return rule()
}

// trimLines enforces the line sequence contract on caller input. Lines that
// already conform are returned as is.
func trimLines(lines []string) []string {
	clean := true
	for _, line := range lines {
		if line == "" || strings.TrimSpace(line) != line {
			clean = false
			break
		}
	}
	if clean {
		return lines
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// head returns at most the first n lines.
func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// containsAny reports whether s contains any token, case-sensitively.
func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// hasAnyPrefix reports whether s starts with any prefix.
func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// hasAnySuffix reports whether s ends with any suffix.
func hasAnySuffix(s string, suffixes []string) bool {
	for _, sfx := range suffixes {
		if strings.HasSuffix(s, sfx) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
