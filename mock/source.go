package mock

import (
	"context"

	"github.com/fwojciec/chatwatch"
)

var _ chatwatch.SnapshotSource = (*SnapshotSource)(nil)

// SnapshotSource is a mock implementation of chatwatch.SnapshotSource.
type SnapshotSource struct {
	CurrentSnapshotFn func(ctx context.Context) (chatwatch.Snapshot, error)
}

func (s *SnapshotSource) CurrentSnapshot(ctx context.Context) (chatwatch.Snapshot, error) {
	return s.CurrentSnapshotFn(ctx)
}
