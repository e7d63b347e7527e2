package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/chatwatch"
	main "github.com/fwojciec/chatwatch/cmd/chatwatch"
	"github.com/fwojciec/chatwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates chat from arguments and flags", func(t *testing.T) {
		t.Parallel()

		var created *chatwatch.Chat
		chats := &mock.ChatService{
			CreateChatFn: func(_ context.Context, chat *chatwatch.Chat) error {
				chat.ID = "chat-123"
				created = chat
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Chats:  chats,
		}

		cmd := &main.AddCmd{
			Name:     "friends",
			URL:      "https://www.messenger.com/t/100",
			Email:    "bot@example.com",
			Profile:  "/tmp/profile",
			Headless: true,
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "friends", created.Name)
		assert.Equal(t, "https://www.messenger.com/t/100", created.URL)
		assert.Equal(t, "bot@example.com", created.Email)
		assert.Equal(t, "/tmp/profile", created.ProfilePath)
		assert.True(t, created.Headless)
		assert.Contains(t, stdout.String(), "chat-123")
	})

	t.Run("reports service error", func(t *testing.T) {
		t.Parallel()

		chats := &mock.ChatService{
			CreateChatFn: func(_ context.Context, _ *chatwatch.Chat) error {
				return chatwatch.Errorf(chatwatch.EINVALID, "chat URL required")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Chats:  chats,
		}

		err := (&main.AddCmd{Name: "friends"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "chat URL required")
	})
}
