package mock

import (
	"context"

	"github.com/fwojciec/chatwatch"
)

var _ chatwatch.ChatService = (*ChatService)(nil)

// ChatService is a mock implementation of chatwatch.ChatService.
type ChatService struct {
	CreateChatFn   func(ctx context.Context, chat *chatwatch.Chat) error
	FindChatByIDFn func(ctx context.Context, id string) (*chatwatch.Chat, error)
	FindChatsFn    func(ctx context.Context, filter chatwatch.ChatFilter) ([]*chatwatch.Chat, error)
	DeleteChatFn   func(ctx context.Context, id string) error
}

func (s *ChatService) CreateChat(ctx context.Context, chat *chatwatch.Chat) error {
	return s.CreateChatFn(ctx, chat)
}

func (s *ChatService) FindChatByID(ctx context.Context, id string) (*chatwatch.Chat, error) {
	return s.FindChatByIDFn(ctx, id)
}

func (s *ChatService) FindChats(ctx context.Context, filter chatwatch.ChatFilter) ([]*chatwatch.Chat, error) {
	return s.FindChatsFn(ctx, filter)
}

func (s *ChatService) DeleteChat(ctx context.Context, id string) error {
	return s.DeleteChatFn(ctx, id)
}
