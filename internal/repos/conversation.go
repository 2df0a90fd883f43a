package repos

import (
	"context"
	"fmt"
	"sort"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/types"
)

// ConversationRepo manages owned, named message threads. Ownership checks are
// part of the read path: a conversation that exists but belongs to someone
// else is reported exactly like one that does not exist, so non-owners cannot
// probe for existence.
type ConversationRepo interface {
	Create(ctx context.Context, userID, title string) (string, error)
	// Get returns (nil, nil) when the conversation is absent or, if
	// requestingUserID is non-empty, not owned by that user.
	Get(ctx context.Context, conversationID, requestingUserID string) (*types.Conversation, error)
	List(ctx context.Context, userID string, limit int) ([]*types.Conversation, error)
	// AppendMessage stamps the message timestamp, bumps the version counter
	// and refreshes updated_at, all inside one store transaction.
	AppendMessage(ctx context.Context, conversationID, msgType, content string) error
	Delete(ctx context.Context, conversationID, requestingUserID string) error
}

type conversationRepo struct {
	store docstore.Store
	log   *logger.Logger
}

func NewConversationRepo(store docstore.Store, baseLog *logger.Logger) ConversationRepo {
	repoLog := baseLog.With("repo", "ConversationRepo")
	return &conversationRepo{store: store, log: repoLog}
}

func (r *conversationRepo) Create(ctx context.Context, userID, title string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("conversation requires a user id")
	}
	now := r.store.Now()
	if title == "" {
		title = "Conversation " + now.Format("2006-01-02 15:04")
	}
	id, err := r.store.Create(ctx, types.CollectionConversations, map[string]interface{}{
		"user_id":    userID,
		"title":      title,
		"messages":   []interface{}{},
		"version":    int64(0),
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		return "", err
	}
	r.log.Info("Conversation created", "conversation_id", id, "user_id", userID)
	return id, nil
}

func (r *conversationRepo) Get(ctx context.Context, conversationID, requestingUserID string) (*types.Conversation, error) {
	doc, err := r.store.Get(ctx, types.CollectionConversations, conversationID)
	if err == docstore.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	conv := decodeConversation(doc)
	if requestingUserID != "" && conv.UserID != requestingUserID {
		// Deliberately indistinguishable from not-found.
		return nil, nil
	}
	return conv, nil
}

func (r *conversationRepo) List(ctx context.Context, userID string, limit int) ([]*types.Conversation, error) {
	docs, err := r.store.Query(ctx, types.CollectionConversations, docstore.Query{
		Filters: []docstore.Filter{{Field: "user_id", Op: docstore.OpEqual, Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	convs := make([]*types.Conversation, 0, len(docs))
	for _, d := range docs {
		convs = append(convs, decodeConversation(d))
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	if limit > 0 && len(convs) > limit {
		convs = convs[:limit]
	}
	return convs, nil
}

func (r *conversationRepo) AppendMessage(ctx context.Context, conversationID, msgType, content string) error {
	now := r.store.Now()
	err := r.store.Mutate(ctx, types.CollectionConversations, conversationID, func(data map[string]interface{}) (map[string]interface{}, error) {
		messages, _ := data["messages"].([]interface{})
		messages = append(messages, map[string]interface{}{
			"type":      msgType,
			"content":   content,
			"timestamp": now,
		})
		return map[string]interface{}{
			"messages":   messages,
			"version":    docstore.Int64(data, "version") + 1,
			"updated_at": now,
		}, nil
	})
	if err != nil {
		return err
	}
	r.log.Debug("Conversation message appended", "conversation_id", conversationID, "type", msgType)
	return nil
}

func (r *conversationRepo) Delete(ctx context.Context, conversationID, requestingUserID string) error {
	doc, err := r.store.Get(ctx, types.CollectionConversations, conversationID)
	if err != nil {
		return err
	}
	if requestingUserID != "" && docstore.Str(doc.Data, "user_id") != requestingUserID {
		return docstore.ErrNotFound
	}
	if err := r.store.Delete(ctx, types.CollectionConversations, conversationID); err != nil {
		return err
	}
	r.log.Info("Conversation deleted", "conversation_id", conversationID)
	return nil
}

func decodeConversation(d docstore.Doc) *types.Conversation {
	conv := &types.Conversation{
		ID:        d.ID,
		UserID:    docstore.Str(d.Data, "user_id"),
		Title:     docstore.Str(d.Data, "title"),
		Version:   docstore.Int64(d.Data, "version"),
		CreatedAt: docstore.Time(d.Data, "created_at"),
		UpdatedAt: docstore.Time(d.Data, "updated_at"),
	}
	raw, _ := d.Data["messages"].([]interface{})
	for _, m := range raw {
		mm, ok := m.(map[string]interface{})
		if !ok {
			continue
		}
		conv.Messages = append(conv.Messages, types.ConversationMessage{
			Type:      docstore.Str(mm, "type"),
			Content:   docstore.Str(mm, "content"),
			Timestamp: docstore.Time(mm, "timestamp"),
		})
	}
	return conv
}
