package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/chatwatch"
	"github.com/fwojciec/chatwatch/mock"
	cwslog "github.com/fwojciec/chatwatch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type ctxKey struct{}

// levelHandler discards records and remembers whether Enabled saw the
// caller's context.
type levelHandler struct {
	slog.Handler
	sawCallerCtx bool
}

func (h *levelHandler) Enabled(ctx context.Context, _ slog.Level) bool {
	if ctx.Value(ctxKey{}) != nil {
		h.sawCallerCtx = true
	}
	return false
}

func TestLoggingSource_CurrentSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("logs message count and fingerprint", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		want := chatwatch.Snapshot{{Sender: "A", Text: "hi"}, {Sender: "B", Text: "yo"}}
		inner := &mock.SnapshotSource{
			CurrentSnapshotFn: func(context.Context) (chatwatch.Snapshot, error) {
				return want, nil
			},
		}

		source := cwslog.NewLoggingSource(inner, debugLogger(&buf))
		snap, err := source.CurrentSnapshot(context.Background())

		require.NoError(t, err)
		assert.Equal(t, want, snap)
		output := buf.String()
		assert.Contains(t, output, "snapshot")
		assert.Contains(t, output, "messages=2")
		assert.Contains(t, output, "fingerprint=")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SnapshotSource{
			CurrentSnapshotFn: func(context.Context) (chatwatch.Snapshot, error) {
				return nil, errors.New("stale element")
			},
		}

		source := cwslog.NewLoggingSource(inner, debugLogger(&buf))
		_, err := source.CurrentSnapshot(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"stale element\"")
		assert.Contains(t, buf.String(), "messages=0")
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SnapshotSource{
			CurrentSnapshotFn: func(context.Context) (chatwatch.Snapshot, error) {
				return chatwatch.Snapshot{}, nil
			},
		}

		source := cwslog.NewLoggingSource(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := source.CurrentSnapshot(context.Background())

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
	t.Run("checks the level before fingerprinting", func(t *testing.T) {
		t.Parallel()

		h := &levelHandler{Handler: slog.DiscardHandler}
		called := false
		inner := &mock.SnapshotSource{
			CurrentSnapshotFn: func(context.Context) (chatwatch.Snapshot, error) {
				called = true
				return chatwatch.Snapshot{{Sender: "A", Text: "hi"}}, nil
			},
		}

		ctx := context.WithValue(context.Background(), ctxKey{}, true)
		source := cwslog.NewLoggingSource(inner, slog.New(h))
		snap, err := source.CurrentSnapshot(ctx)

		require.NoError(t, err)
		assert.True(t, called)
		assert.Len(t, snap, 1)
		assert.True(t, h.sawCallerCtx, "level should be checked with the caller's context")
	})
}
