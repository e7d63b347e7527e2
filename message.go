package chatwatch

import (
	"context"

	"github.com/cespare/xxhash/v2"
)

// Message is a single chat message as rendered in the feed.
// The feed carries no message IDs, so two messages are the same message
// exactly when both fields are equal.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Snapshot is the full ordered list of messages currently visible in the
// feed, oldest first.
type Snapshot []Message

// Equal reports whether s and other hold the same messages in the same order.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of s that shares no backing array with it.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Fingerprint returns a 64-bit digest of the snapshot contents.
// Equal snapshots always have equal fingerprints.
func (s Snapshot) Fingerprint() uint64 {
	d := xxhash.New()
	for _, m := range s {
		_, _ = d.WriteString(m.Sender)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(m.Text)
		_, _ = d.Write([]byte{0x1e})
	}
	return d.Sum64()
}

// SnapshotSource returns the current full contents of a feed.
type SnapshotSource interface {
	// CurrentSnapshot reads the whole feed. It may block for the duration
	// of the underlying I/O and may fail transiently.
	CurrentSnapshot(ctx context.Context) (Snapshot, error)
}

// FragmentExtractor turns the markup of a single message into plain text.
type FragmentExtractor interface {
	// Extract never fails. Malformed markup yields best-effort text.
	Extract(fragment string) string
}

// FeedParser reads a rendered feed page into a Snapshot.
type FeedParser interface {
	ParseFeed(html string) (Snapshot, error)
}
