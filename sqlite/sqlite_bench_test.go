package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/chatwatch"
	"github.com/fwojciec/chatwatch/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateChat measures registering chats in a file-backed database.
func BenchmarkCreateChat(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewChatService(db)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chat := &chatwatch.Chat{
			Name: fmt.Sprintf("chat-%d", i),
			URL:  fmt.Sprintf("https://www.messenger.com/t/%d", i),
		}
		if err := svc.CreateChat(ctx, chat); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindChats measures name lookups, the query every browser command
// starts with.
func BenchmarkFindChats(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewChatService(db)
	for i := 0; i < 500; i++ {
		require.NoError(b, svc.CreateChat(ctx, &chatwatch.Chat{
			Name: fmt.Sprintf("chat-%d", i),
			URL:  fmt.Sprintf("https://www.messenger.com/t/%d", i),
		}))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		name := fmt.Sprintf("chat-%d", i%500)
		chats, err := svc.FindChats(ctx, chatwatch.ChatFilter{Name: &name, Limit: 1})
		if err != nil {
			b.Fatal(err)
		}
		if len(chats) != 1 {
			b.Fatalf("expected 1 chat, got %d", len(chats))
		}
	}
}
