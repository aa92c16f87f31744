package clean

import (
	"slices"
	"strings"

	"github.com/fwojciec/medroster"
)

// Stage is one pass over a whole record collection. Apply returns a new
// slice and never modifies the records it is given.
type Stage interface {
	Name() string
	Apply(records []*medroster.Record) []*medroster.Record
}

// keep returns the records for which pred is true.
func keep(records []*medroster.Record, pred func(*medroster.Record) bool) []*medroster.Record {
	out := make([]*medroster.Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// InvalidCredentialFilter drops records whose qualifications start with a
// registration number marker instead of credentials.
type InvalidCredentialFilter struct {
	Prefix string
}

func (f InvalidCredentialFilter) Name() string { return "invalid-credential" }

func (f InvalidCredentialFilter) Apply(records []*medroster.Record) []*medroster.Record {
	if f.Prefix == "" {
		return slices.Clone(records)
	}
	return keep(records, func(r *medroster.Record) bool {
		return !strings.HasPrefix(r.Qualifications, f.Prefix)
	})
}

// RepeatedValueFilter drops records in which two present text fields hold
// the same value, a sign that one line was captured twice.
type RepeatedValueFilter struct {
	// Exclude lists fields left out of the comparison.
	Exclude []medroster.Field
}

// DefaultRepeatedValueExclude leaves designation out of the comparison.
var DefaultRepeatedValueExclude = []medroster.Field{medroster.FieldDesignation}

func (f RepeatedValueFilter) Name() string { return "repeated-value" }

func (f RepeatedValueFilter) Apply(records []*medroster.Record) []*medroster.Record {
	var fields []medroster.Field
	for _, field := range medroster.TextFields {
		if !slices.Contains(f.Exclude, field) {
			fields = append(fields, field)
		}
	}

	return keep(records, func(r *medroster.Record) bool {
		seen := make(map[string]struct{}, len(fields))
		for _, field := range fields {
			v := r.Value(field)
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				return false
			}
			seen[v] = struct{}{}
		}
		return true
	})
}

// CountryFilter keeps records whose derived country is allowed. Records
// without a country are dropped.
type CountryFilter struct {
	Allowed []string
}

func (f CountryFilter) Name() string { return "country" }

func (f CountryFilter) Apply(records []*medroster.Record) []*medroster.Record {
	return keep(records, func(r *medroster.Record) bool {
		return r.Country != "" && slices.Contains(f.Allowed, r.Country)
	})
}

// KeyDeduplicator keeps the first record for each profile URL.
type KeyDeduplicator struct{}

func (KeyDeduplicator) Name() string { return "dedup" }

func (KeyDeduplicator) Apply(records []*medroster.Record) []*medroster.Record {
	seen := make(map[string]struct{}, len(records))
	return keep(records, func(r *medroster.Record) bool {
		if _, dup := seen[r.ProfileURL]; dup {
			return false
		}
		seen[r.ProfileURL] = struct{}{}
		return true
	})
}

// CompletenessFilter drops records missing any required field.
type CompletenessFilter struct {
	Required []medroster.Field
}

func (f CompletenessFilter) Name() string { return "completeness" }

func (f CompletenessFilter) Apply(records []*medroster.Record) []*medroster.Record {
	return keep(records, func(r *medroster.Record) bool {
		for _, field := range f.Required {
			if r.Value(field) == "" {
				return false
			}
		}
		return true
	})
}

// DefaultStages returns the validation passes in their required order.
// A non-empty country list adds an allow-list pass before deduplication.
func DefaultStages(vocab *medroster.Vocabulary, countries []string) []Stage {
	if vocab == nil {
		vocab = medroster.DefaultVocabulary()
	}
	stages := []Stage{
		InvalidCredentialFilter{Prefix: vocab.InvalidCredentialPrefix},
		RepeatedValueFilter{Exclude: DefaultRepeatedValueExclude},
	}
	if len(countries) > 0 {
		stages = append(stages, CountryFilter{Allowed: slices.Clone(countries)})
	}
	return append(stages,
		KeyDeduplicator{},
		CompletenessFilter{Required: medroster.CriticalFields},
	)
}
