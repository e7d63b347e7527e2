package chatwatch

import (
	"context"
	"time"
)

// Chat is a registered conversation the bot can watch or post to.
type Chat struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Email       string    `json:"email"`
	ProfilePath string    `json:"profilePath"`
	Headless    bool      `json:"headless"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the chat contains invalid fields.
func (c *Chat) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "chat name required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "chat URL required")
	}
	return nil
}

// ChatService represents a service for managing chats.
type ChatService interface {
	// CreateChat registers a new chat.
	// Returns ECONFLICT if a chat with the same name exists.
	CreateChat(ctx context.Context, chat *Chat) error

	// FindChatByID retrieves a chat by ID.
	// Returns ENOTFOUND if chat does not exist.
	FindChatByID(ctx context.Context, id string) (*Chat, error)

	// FindChats retrieves chats matching the filter.
	FindChats(ctx context.Context, filter ChatFilter) ([]*Chat, error)

	// DeleteChat permanently removes a chat.
	// Returns ENOTFOUND if chat does not exist.
	DeleteChat(ctx context.Context, id string) error
}

// ChatFilter represents a filter for FindChats.
type ChatFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
