package chatwatch_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/chatwatch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := chatwatch.Errorf(chatwatch.ENOTFOUND, "chat %q not found", "test")

	assert.Equal(t, chatwatch.ENOTFOUND, chatwatch.ErrorCode(err))
	assert.Equal(t, "chat \"test\" not found", chatwatch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, chatwatch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, chatwatch.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("finding chat: %w", chatwatch.Errorf(chatwatch.EINVALID, "bad"))

	assert.Equal(t, chatwatch.EINVALID, chatwatch.ErrorCode(err))
	assert.Equal(t, "bad", chatwatch.ErrorMessage(err))
}

func TestErrorCode_InternalError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("disk on fire")

	assert.Equal(t, chatwatch.EINTERNAL, chatwatch.ErrorCode(err))
	assert.Equal(t, "Internal error.", chatwatch.ErrorMessage(err))
}

func TestChat_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()

		c := &chatwatch.Chat{URL: "https://www.messenger.com/t/123"}
		assert.Equal(t, chatwatch.EINVALID, chatwatch.ErrorCode(c.Validate()))
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		c := &chatwatch.Chat{Name: "friends"}
		assert.Equal(t, chatwatch.EINVALID, chatwatch.ErrorCode(c.Validate()))
	})

	t.Run("accepts name and URL", func(t *testing.T) {
		t.Parallel()

		c := &chatwatch.Chat{Name: "friends", URL: "https://www.messenger.com/t/123"}
		assert.NoError(t, c.Validate())
	})
}
