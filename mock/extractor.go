package mock

import "github.com/fwojciec/medroster"

var _ medroster.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of medroster.Extractor.
type Extractor struct {
	ExtractFn func(page *medroster.Page) medroster.RawRecord
}

func (e *Extractor) Extract(page *medroster.Page) medroster.RawRecord {
	return e.ExtractFn(page)
}
