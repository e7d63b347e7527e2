package mock

import "github.com/fwojciec/chatwatch"

var _ chatwatch.FragmentExtractor = (*Extractor)(nil)

// Extractor is a mock implementation of chatwatch.FragmentExtractor.
type Extractor struct {
	ExtractFn func(fragment string) string
}

func (e *Extractor) Extract(fragment string) string {
	return e.ExtractFn(fragment)
}
