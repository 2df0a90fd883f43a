package repos

import (
	"context"
	"fmt"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/types"
)

// ChatMessageRepo is the legacy flat chat log, kept for clients that predate
// first-class conversations. Messages are grouped by a caller-supplied
// session id and are immutable once written.
type ChatMessageRepo interface {
	Create(ctx context.Context, userID, sessionID, msgType, content string) (string, error)
	// History returns messages in chronological order, at most limit of the
	// most recent ones. Empty sessionID means all sessions for the user.
	History(ctx context.Context, userID, sessionID string, limit int) ([]*types.ChatMessage, error)
}

type chatMessageRepo struct {
	store docstore.Store
	log   *logger.Logger
}

func NewChatMessageRepo(store docstore.Store, baseLog *logger.Logger) ChatMessageRepo {
	repoLog := baseLog.With("repo", "ChatMessageRepo")
	return &chatMessageRepo{store: store, log: repoLog}
}

func (r *chatMessageRepo) Create(ctx context.Context, userID, sessionID, msgType, content string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("chat message requires a user id")
	}
	id, err := r.store.Create(ctx, types.CollectionChatSessions, map[string]interface{}{
		"user_id":    userID,
		"session_id": sessionID,
		"type":       msgType,
		"content":    content,
		"timestamp":  r.store.Now(),
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *chatMessageRepo) History(ctx context.Context, userID, sessionID string, limit int) ([]*types.ChatMessage, error) {
	filters := []docstore.Filter{{Field: "user_id", Op: docstore.OpEqual, Value: userID}}
	if sessionID != "" {
		filters = append(filters, docstore.Filter{Field: "session_id", Op: docstore.OpEqual, Value: sessionID})
	}
	docs, err := r.store.Query(ctx, types.CollectionChatSessions, docstore.Query{
		Filters: filters,
		OrderBy: "timestamp",
		Desc:    true,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	// Fetched newest-first to honor the limit; reverse into reading order.
	messages := make([]*types.ChatMessage, len(docs))
	for i, d := range docs {
		messages[len(docs)-1-i] = &types.ChatMessage{
			ID:        d.ID,
			UserID:    docstore.Str(d.Data, "user_id"),
			SessionID: docstore.Str(d.Data, "session_id"),
			Type:      docstore.Str(d.Data, "type"),
			Content:   docstore.Str(d.Data, "content"),
			Timestamp: docstore.Time(d.Data, "timestamp"),
		}
	}
	return messages, nil
}
