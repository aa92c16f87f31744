// Package clean normalizes extracted doctor records and filters a
// collection of them down to a validated, deduplicated dataset.
package clean

import (
	"math"
	"strings"
	"unicode"

	"github.com/fwojciec/medroster"
)

// DefaultExperienceYears is assigned when no year count can be read.
const DefaultExperienceYears = 1

// Normalizer canonicalizes record fields against a vocabulary.
// It is safe for concurrent use.
type Normalizer struct {
	vocab *medroster.Vocabulary

	lowerSpecialties []string
	lowerCountries   []string
}

// NewNormalizer creates a Normalizer over a copy of the vocabulary.
// A nil vocabulary uses medroster.DefaultVocabulary.
func NewNormalizer(vocab *medroster.Vocabulary) *Normalizer {
	if vocab == nil {
		vocab = medroster.DefaultVocabulary()
	} else {
		vocab = vocab.Clone()
	}

	n := &Normalizer{vocab: vocab}
	for _, s := range vocab.CanonicalSpecialties {
		n.lowerSpecialties = append(n.lowerSpecialties, strings.ToLower(s))
	}
	for _, c := range vocab.Countries {
		n.lowerCountries = append(n.lowerCountries, strings.ToLower(c))
	}
	return n
}

// Normalize returns a normalized copy of the record. It never fails and
// normalizing an already normalized record returns it unchanged.
func (n *Normalizer) Normalize(r medroster.Record) medroster.Record {
	out := *r.Clone()
	out.Specialty = n.Specialty(r.Specialty)
	out.Country = n.Country(r.Location)
	out.Qualifications = n.Qualifications(r.Qualifications)
	out.ExperienceYears = n.experienceYears(r.Experience, r.ExperienceYears)
	return out
}

// Specialty replaces the text with the first canonical specialty it
// contains, in vocabulary order. Unmatched text is returned unchanged.
func (n *Normalizer) Specialty(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	for i, s := range n.lowerSpecialties {
		if strings.Contains(lower, s) {
			return n.vocab.CanonicalSpecialties[i]
		}
	}
	return text
}

// Country returns the first country named in the location, or "" if none.
func (n *Normalizer) Country(location string) string {
	if location == "" {
		return ""
	}
	lower := strings.ToLower(location)
	for i, c := range n.lowerCountries {
		if strings.Contains(lower, c) {
			return n.vocab.Countries[i]
		}
	}
	return ""
}

// Qualifications removes the boilerplate phrase wherever it occurs.
func (n *Normalizer) Qualifications(text string) string {
	if bp := n.vocab.Boilerplate; bp != "" {
		for strings.Contains(text, bp) {
			text = strings.ReplaceAll(text, bp, "")
		}
	}
	return strings.TrimSpace(text)
}

// ExperienceYears reads the first run of digits in the text. Text without
// digits yields DefaultExperienceYears.
func ExperienceYears(text string) int {
	if years, ok := firstNumber(text); ok {
		return years
	}
	return DefaultExperienceYears
}

// experienceYears keeps a previously derived count when the text carries no
// digits, so records loaded from a normalized dataset stay unchanged.
func (n *Normalizer) experienceYears(text string, prior *int) *int {
	years, ok := firstNumber(text)
	switch {
	case ok:
	case prior != nil && *prior >= 0:
		years = *prior
	default:
		years = DefaultExperienceYears
	}
	return &years
}

// firstNumber parses the first maximal run of decimal digits in any script,
// so Bengali "১২" and Devanagari "१२" read as 12.
func firstNumber(text string) (int, bool) {
	start := strings.IndexFunc(text, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	v := 0
	for _, r := range text[start:] {
		d := digitValue(r)
		if d < 0 {
			break
		}
		if v > (math.MaxInt-d)/10 {
			// Overflowing runs are not year counts.
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// digitValue returns the value of a decimal digit rune, or -1. Unicode
// assigns decimal digits in contiguous runs of ten starting at zero, and the
// Nd table ranges cover whole runs.
func digitValue(r rune) int {
	for _, rg := range unicode.Nd.R16 {
		if lo := rune(rg.Lo); r >= lo && r <= rune(rg.Hi) && (r-lo)%rune(rg.Stride) == 0 {
			return int(r-lo) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo := rune(rg.Lo); r >= lo && r <= rune(rg.Hi) && (r-lo)%rune(rg.Stride) == 0 {
			return int(r-lo) % 10
		}
	}
	return -1
}
