package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/chatwatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ chatwatch.ChatService = (*ChatService)(nil)

// ChatService implements chatwatch.ChatService using SQLite.
type ChatService struct {
	db *DB
}

// NewChatService creates a new ChatService.
func NewChatService(db *DB) *ChatService {
	return &ChatService{db: db}
}

const chatColumns = "id, name, url, email, profile_path, headless, created_at, updated_at"

// CreateChat registers a new chat.
func (s *ChatService) CreateChat(ctx context.Context, chat *chatwatch.Chat) error {
	if err := chat.Validate(); err != nil {
		return err
	}

	name := chat.Name
	existing, err := s.FindChats(ctx, chatwatch.ChatFilter{Name: &name, Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return chatwatch.Errorf(chatwatch.ECONFLICT, "chat %q already exists", chat.Name)
	}

	chat.ID = uuid.New().String()
	now := time.Now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chats (`+chatColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, chat.ID, chat.Name, chat.URL, chat.Email, chat.ProfilePath, chat.Headless,
		chat.CreatedAt.Format(time.RFC3339), chat.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindChatByID retrieves a chat by ID.
func (s *ChatService) FindChatByID(ctx context.Context, id string) (*chatwatch.Chat, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+chatColumns+` FROM chats WHERE id = ?`, id)

	chat, err := scanChat(row)
	if err == sql.ErrNoRows {
		return nil, chatwatch.Errorf(chatwatch.ENOTFOUND, "chat not found")
	}
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// FindChats retrieves chats matching the filter, newest first.
func (s *ChatService) FindChats(ctx context.Context, filter chatwatch.ChatFilter) ([]*chatwatch.Chat, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + chatColumns + " FROM chats WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC, name ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []*chatwatch.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}

	return chats, rows.Err()
}

// DeleteChat permanently removes a chat.
func (s *ChatService) DeleteChat(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM chats WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return chatwatch.Errorf(chatwatch.ENOTFOUND, "chat not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanChat(row scanner) (*chatwatch.Chat, error) {
	var chat chatwatch.Chat
	var createdAt, updatedAt string

	if err := row.Scan(&chat.ID, &chat.Name, &chat.URL, &chat.Email, &chat.ProfilePath, &chat.Headless,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if chat.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if chat.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &chat, nil
}
