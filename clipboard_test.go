package chatwatch_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/chatwatch"
	"github.com/fwojciec/chatwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithClipboard(t *testing.T) {
	t.Parallel()

	t.Run("holds text during fn and restores afterwards", func(t *testing.T) {
		t.Parallel()

		cb := &mock.MemoryClipboard{Contents: "operator text"}
		var during string

		err := chatwatch.WithClipboard(cb, "héllo 👋", func() error {
			during = cb.Contents
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, "héllo 👋", during)
		assert.Equal(t, "operator text", cb.Contents)
		assert.Equal(t, []string{"héllo 👋", "operator text"}, cb.Writes)
	})

	t.Run("restores when fn fails", func(t *testing.T) {
		t.Parallel()

		cb := &mock.MemoryClipboard{Contents: "keep me"}

		err := chatwatch.WithClipboard(cb, "temp", func() error {
			return errors.New("paste failed")
		})

		require.EqualError(t, err, "paste failed")
		assert.Equal(t, "keep me", cb.Contents)
	})

	t.Run("restores when fn panics", func(t *testing.T) {
		t.Parallel()

		cb := &mock.MemoryClipboard{Contents: "keep me"}

		assert.Panics(t, func() {
			_ = chatwatch.WithClipboard(cb, "temp", func() error {
				panic("boom")
			})
		})
		assert.Equal(t, "keep me", cb.Contents)
	})

	t.Run("does not run fn when the clipboard cannot be read", func(t *testing.T) {
		t.Parallel()

		called := false
		cb := &mock.Clipboard{
			ReadAllFn: func() (string, error) { return "", errors.New("no clipboard") },
		}

		err := chatwatch.WithClipboard(cb, "temp", func() error {
			called = true
			return nil
		})

		require.EqualError(t, err, "no clipboard")
		assert.False(t, called)
	})

	t.Run("reports restore failure when fn succeeded", func(t *testing.T) {
		t.Parallel()

		writes := 0
		cb := &mock.Clipboard{
			ReadAllFn: func() (string, error) { return "prev", nil },
			WriteAllFn: func(string) error {
				writes++
				if writes == 2 {
					return errors.New("restore failed")
				}
				return nil
			},
		}

		err := chatwatch.WithClipboard(cb, "temp", func() error { return nil })

		require.EqualError(t, err, "restore failed")
	})

	t.Run("prefers fn error over restore error", func(t *testing.T) {
		t.Parallel()

		writes := 0
		cb := &mock.Clipboard{
			ReadAllFn: func() (string, error) { return "prev", nil },
			WriteAllFn: func(string) error {
				writes++
				if writes == 2 {
					return errors.New("restore failed")
				}
				return nil
			},
		}

		err := chatwatch.WithClipboard(cb, "temp", func() error { return errors.New("paste failed") })

		require.EqualError(t, err, "paste failed")
		assert.Equal(t, 2, writes)
	})

	t.Run("requires a clipboard", func(t *testing.T) {
		t.Parallel()

		err := chatwatch.WithClipboard(nil, "temp", func() error { return nil })

		assert.Equal(t, chatwatch.EINVALID, chatwatch.ErrorCode(err))
	})
}
