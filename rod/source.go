package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/chatwatch"
)

// DefaultReadTimeout bounds a single read of the chat page.
const DefaultReadTimeout = 10 * time.Second

// Ensure Source implements chatwatch.SnapshotSource at compile time.
var _ chatwatch.SnapshotSource = (*Source)(nil)

// Source reads the chat feed from the session's tab.
type Source struct {
	session *Session
	parser  chatwatch.FeedParser
	timeout time.Duration
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithReadTimeout overrides DefaultReadTimeout.
func WithReadTimeout(d time.Duration) SourceOption {
	return func(s *Source) {
		s.timeout = d
	}
}

// NewSource creates a Source that parses the tab's rendered HTML with parser.
func NewSource(session *Session, parser chatwatch.FeedParser, opts ...SourceOption) *Source {
	s := &Source{
		session: session,
		parser:  parser,
		timeout: DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentSnapshot serialises the live DOM and parses every visible message.
func (s *Source) CurrentSnapshot(ctx context.Context) (chatwatch.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := s.session.tab(ctx)
	if err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading chat page: %w", err)
	}

	return s.parser.ParseFeed(html)
}
