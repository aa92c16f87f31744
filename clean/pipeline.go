package clean

import (
	"context"
	"runtime"

	"github.com/fwojciec/medroster"
	"golang.org/x/sync/errgroup"
)

// Result holds the clean collection and per-stage counts.
type Result struct {
	Records []*medroster.Record
	Stages  []medroster.StageCount
}

// Removed returns the total number of records dropped.
func (r *Result) Removed() int {
	var n int
	for _, s := range r.Stages {
		n += s.Removed()
	}
	return n
}

// Pipeline normalizes every record, then applies validation stages in order.
type Pipeline struct {
	normalizer  *Normalizer
	stages      []Stage
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStages replaces the default validation stages.
func WithStages(stages ...Stage) Option {
	return func(p *Pipeline) {
		p.stages = stages
	}
}

// WithCountries enables the country allow-list pass.
func WithCountries(countries ...string) Option {
	return func(p *Pipeline) {
		p.stages = DefaultStages(p.normalizer.vocab, countries)
	}
}

// WithConcurrency sets how many records are normalized in parallel.
// Defaults to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		p.concurrency = n
	}
}

// NewPipeline creates a Pipeline using the vocabulary for normalization.
func NewPipeline(vocab *medroster.Vocabulary, opts ...Option) *Pipeline {
	n := NewNormalizer(vocab)
	p := &Pipeline{
		normalizer:  n,
		stages:      DefaultStages(n.vocab, nil),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stages returns the names of the configured stages in order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run normalizes the records and filters them to a clean dataset.
// The input is not modified. Returns EINVALID if any record has no
// profile URL.
func (p *Pipeline) Run(ctx context.Context, records []*medroster.Record) (*Result, error) {
	if err := validateKeys(records); err != nil {
		return nil, err
	}

	normalized := make([]*medroster.Record, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.concurrency, 1))
	for i, r := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := p.normalizer.Normalize(*r)
			normalized[i] = &out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out, counts := applyStages(p.stages, normalized)
	return &Result{Records: out, Stages: counts}, nil
}

// Clean applies the default validation stages to already normalized
// records. Returns EINVALID if any record has no profile URL.
func Clean(records []*medroster.Record) ([]*medroster.Record, error) {
	if err := validateKeys(records); err != nil {
		return nil, err
	}
	out, _ := applyStages(DefaultStages(nil, nil), records)
	return out, nil
}

func applyStages(stages []Stage, records []*medroster.Record) ([]*medroster.Record, []medroster.StageCount) {
	counts := make([]medroster.StageCount, 0, len(stages))
	for _, s := range stages {
		before := len(records)
		records = s.Apply(records)
		counts = append(counts, medroster.StageCount{
			Stage:  s.Name(),
			Before: before,
			After:  len(records),
		})
	}
	return records, counts
}

func validateKeys(records []*medroster.Record) error {
	for i, r := range records {
		if r == nil {
			return medroster.Errorf(medroster.EINVALID, "record %d is nil", i)
		}
		if err := r.Validate(); err != nil {
			return medroster.Errorf(medroster.EINVALID, "record %d: profile URL required", i)
		}
	}
	return nil
}
