package repos

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/types"
)

func TestConversationDefaultTitle(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC))
	repo := NewConversationRepo(store, mustTestLogger(t))

	id, err := repo.Create(ctx, "u1", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	conv, err := repo.Get(ctx, id, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if conv == nil {
		t.Fatalf("Get returned nil for fresh conversation")
	}
	if !strings.HasPrefix(conv.Title, "Conversation 2026-06-02") {
		t.Fatalf("default title: got %q", conv.Title)
	}
	if len(conv.Messages) != 0 {
		t.Fatalf("fresh conversation should have no messages, got %d", len(conv.Messages))
	}
}

func TestConversationAppendOrderAndTimestamps(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC))
	repo := NewConversationRepo(store, mustTestLogger(t))

	id, err := repo.Create(ctx, "u1", "checkin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	pairs := []struct{ typ, content string }{
		{types.MessageTypeUser, "hi"},
		{types.MessageTypeAI, "hello, how are you feeling?"},
		{types.MessageTypeUser, "tired"},
	}
	for _, p := range pairs {
		if err := repo.AppendMessage(ctx, id, p.typ, p.content); err != nil {
			t.Fatalf("AppendMessage %q: %v", p.content, err)
		}
	}

	conv, err := repo.Get(ctx, id, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(conv.Messages) != 3 {
		t.Fatalf("len(messages): want=3 got=%d", len(conv.Messages))
	}
	for i, p := range pairs {
		if conv.Messages[i].Content != p.content {
			t.Fatalf("message %d: want=%q got=%q", i, p.content, conv.Messages[i].Content)
		}
	}
	for i := 1; i < len(conv.Messages); i++ {
		if !conv.Messages[i].Timestamp.After(conv.Messages[i-1].Timestamp) {
			t.Fatalf("timestamps not increasing at %d: %v then %v", i, conv.Messages[i-1].Timestamp, conv.Messages[i].Timestamp)
		}
	}
	if conv.Version != 3 {
		t.Fatalf("version: want=3 got=%d", conv.Version)
	}
	if !conv.UpdatedAt.After(conv.CreatedAt) {
		t.Fatalf("updated_at should move past created_at: created=%v updated=%v", conv.CreatedAt, conv.UpdatedAt)
	}
}

func TestConversationAppendMissing(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC))
	repo := NewConversationRepo(store, mustTestLogger(t))

	err := repo.AppendMessage(ctx, "missing", types.MessageTypeUser, "hi")
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("append to missing conversation: want ErrNotFound got %v", err)
	}
}

func TestConversationOwnershipIndistinguishable(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC))
	repo := NewConversationRepo(store, mustTestLogger(t))

	id, err := repo.Create(ctx, "alice", "private")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	missing, err := repo.Get(ctx, "no-such-id", "alice")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	foreign, err := repo.Get(ctx, id, "bob")
	if err != nil {
		t.Fatalf("Get foreign: %v", err)
	}
	if missing != nil || foreign != nil {
		t.Fatalf("absent and unowned must both be nil: missing=%+v foreign=%+v", missing, foreign)
	}
}

func TestConversationDeleteDeniedForNonOwner(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC))
	repo := NewConversationRepo(store, mustTestLogger(t))

	id, err := repo.Create(ctx, "alice", "private")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, id, "bob"); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("Delete by non-owner: want ErrNotFound got %v", err)
	}
	if conv, err := repo.Get(ctx, id, "alice"); err != nil || conv == nil {
		t.Fatalf("conversation should survive denied delete: conv=%+v err=%v", conv, err)
	}
	if err := repo.Delete(ctx, id, "alice"); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
}

func TestConversationListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC))
	repo := NewConversationRepo(store, mustTestLogger(t))

	first, err := repo.Create(ctx, "u1", "first")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := repo.Create(ctx, "u1", "second")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Touch the older conversation so it becomes the most recently updated.
	if err := repo.AppendMessage(ctx, first, types.MessageTypeUser, "back again"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	convs, err := repo.List(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("len(convs): want=2 got=%d", len(convs))
	}
	if convs[0].ID != first || convs[1].ID != second {
		t.Fatalf("order by updated_at desc: got %s,%s", convs[0].ID, convs[1].ID)
	}
}
