package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/repos"
	"github.com/mindease/mindease-backend/internal/types"
)

const maxTitleChars = 120

type ConversationService interface {
	Create(ctx context.Context, userID, title string) (*types.Conversation, error)
	Get(ctx context.Context, userID, conversationID string) (*types.Conversation, error)
	List(ctx context.Context, userID string, limit int) ([]*types.Conversation, error)
	Delete(ctx context.Context, userID, conversationID string) error
}

type conversationService struct {
	convRepo repos.ConversationRepo
	log      *logger.Logger
}

func NewConversationService(convRepo repos.ConversationRepo, baseLog *logger.Logger) ConversationService {
	return &conversationService{
		convRepo: convRepo,
		log:      baseLog.With("service", "conversation"),
	}
}

func (s *conversationService) Create(ctx context.Context, userID, title string) (*types.Conversation, error) {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) > maxTitleChars {
		return nil, fmt.Errorf("title exceeds %d characters: %w", maxTitleChars, ErrValidation)
	}
	id, err := s.convRepo.Create(ctx, userID, title)
	if err != nil {
		return nil, err
	}
	conv, err := s.convRepo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %s vanished after create: %w", id, ErrNotFound)
	}
	return conv, nil
}

func (s *conversationService) Get(ctx context.Context, userID, conversationID string) (*types.Conversation, error) {
	conv, err := s.convRepo.Get(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrNotFound)
	}
	return conv, nil
}

func (s *conversationService) List(ctx context.Context, userID string, limit int) ([]*types.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.convRepo.List(ctx, userID, limit)
}

func (s *conversationService) Delete(ctx context.Context, userID, conversationID string) error {
	return s.convRepo.Delete(ctx, conversationID, userID)
}
