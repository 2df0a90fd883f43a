package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/repos"
	"github.com/mindease/mindease-backend/internal/types"
)

const (
	maxChatMessageChars = 1000
	historyFetchLimit   = 20
)

var conversationStarters = []string{
	"How are you feeling today?",
	"What's been on your mind lately?",
	"Is there something you'd like to talk through?",
	"What was the best part of your day so far?",
	"What's one thing that's been weighing on you?",
	"If you could change one thing about today, what would it be?",
	"What usually helps you feel calmer?",
	"What's something small you're grateful for right now?",
}

// ChatReply is the outcome of one chat turn. Saved reports whether both
// sides of the exchange made it into storage; the reply itself is delivered
// either way.
type ChatReply struct {
	Message   string    `json:"message"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Saved     bool      `json:"saved"`
}

type ChatService interface {
	// HandleMessage runs one turn of the legacy session-keyed chat flow.
	HandleMessage(ctx context.Context, userID, sessionID, text string) (*ChatReply, error)
	// HandleConversationMessage runs one turn inside a named conversation
	// owned by userID.
	HandleConversationMessage(ctx context.Context, userID, conversationID, text string) (*ChatReply, error)
	History(ctx context.Context, userID, sessionID string, limit int) ([]*types.ChatMessage, error)
	ConversationStarter() string
	AIAvailable() bool
}

type chatService struct {
	ai       AIClient
	chatRepo repos.ChatMessageRepo
	convRepo repos.ConversationRepo
	moodRepo repos.MoodLogRepo
	verifier MoodVerifier
	log      *logger.Logger
}

func NewChatService(ai AIClient, chatRepo repos.ChatMessageRepo, convRepo repos.ConversationRepo, moodRepo repos.MoodLogRepo, verifier MoodVerifier, baseLog *logger.Logger) ChatService {
	return &chatService{
		ai:       ai,
		chatRepo: chatRepo,
		convRepo: convRepo,
		moodRepo: moodRepo,
		verifier: verifier,
		log:      baseLog.With("service", "chat"),
	}
}

func (s *chatService) HandleMessage(ctx context.Context, userID, sessionID, text string) (*ChatReply, error) {
	text = strings.TrimSpace(text)
	if err := validateMessage(text); err != nil {
		return nil, err
	}
	if sessionID == "" {
		sessionID = "session_" + uuid.NewString()
	}

	history, latestMood := s.gatherContext(ctx, userID, sessionID)

	reply, err := s.generate(ctx, text, history, latestMood)
	if err != nil {
		return nil, err
	}

	saved := true
	if _, err := s.chatRepo.Create(ctx, userID, sessionID, types.MessageTypeUser, text); err != nil {
		saved = false
		s.log.Warn("failed to save user message", "user_id", userID, "session_id", sessionID, "error", err)
	}
	if _, err := s.chatRepo.Create(ctx, userID, sessionID, types.MessageTypeAI, reply); err != nil {
		saved = false
		s.log.Warn("failed to save ai message", "user_id", userID, "session_id", sessionID, "error", err)
	}

	return &ChatReply{
		Message:   reply,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Saved:     saved,
	}, nil
}

func (s *chatService) HandleConversationMessage(ctx context.Context, userID, conversationID, text string) (*ChatReply, error) {
	text = strings.TrimSpace(text)
	if err := validateMessage(text); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.Get(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrNotFound)
	}

	latestMood := s.latestMood(ctx, userID)

	reply, err := s.generate(ctx, text, conv.Messages, latestMood)
	if err != nil {
		return nil, err
	}

	saved := true
	if err := s.convRepo.AppendMessage(ctx, conversationID, types.MessageTypeUser, text); err != nil {
		saved = false
		s.log.Warn("failed to append user message", "conversation_id", conversationID, "error", err)
	}
	if err := s.convRepo.AppendMessage(ctx, conversationID, types.MessageTypeAI, reply); err != nil {
		saved = false
		s.log.Warn("failed to append ai message", "conversation_id", conversationID, "error", err)
	}

	return &ChatReply{
		Message:   reply,
		SessionID: conversationID,
		Timestamp: time.Now().UTC(),
		Saved:     saved,
	}, nil
}

func (s *chatService) History(ctx context.Context, userID, sessionID string, limit int) ([]*types.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.chatRepo.History(ctx, userID, sessionID, limit)
}

func (s *chatService) ConversationStarter() string {
	return conversationStarters[rand.Intn(len(conversationStarters))]
}

func (s *chatService) AIAvailable() bool {
	return s.ai != nil
}

// generate assembles the prompt and calls the model. AI failures are the one
// class of error a chat turn cannot survive.
func (s *chatService) generate(ctx context.Context, text string, history []types.ConversationMessage, latestMood *types.MoodLog) (string, error) {
	in := PromptInput{Message: text, History: history}
	if latestMood != nil {
		if s.verifier.InferVerificationState(history) {
			in.VerifiedMood = latestMood.Mood
		} else {
			in.LatestMood = latestMood.Mood
		}
	}

	if s.ai == nil {
		return "", fmt.Errorf("ai client not configured: %w", ErrUpstreamAI)
	}
	reply, err := s.ai.Generate(ctx, BuildPrompt(in))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamAI, err)
	}
	return reply, nil
}

// gatherContext fetches recent history and the latest mood entry in parallel.
// Either read failing degrades that half of the context to empty; reads never
// fail a chat turn.
func (s *chatService) gatherContext(ctx context.Context, userID, sessionID string) ([]types.ConversationMessage, *types.MoodLog) {
	var (
		history []*types.ChatMessage
		latest  *types.MoodLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := s.chatRepo.History(gctx, userID, sessionID, historyFetchLimit)
		if err != nil {
			s.log.Warn("history read failed, continuing without it", "user_id", userID, "error", err)
			return nil
		}
		history = h
		return nil
	})
	g.Go(func() error {
		m, err := s.moodRepo.Latest(gctx, userID)
		if err != nil {
			s.log.Warn("mood read failed, continuing without it", "user_id", userID, "error", err)
			return nil
		}
		latest = m
		return nil
	})
	_ = g.Wait()

	msgs := make([]types.ConversationMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, types.ConversationMessage{Type: m.Type, Content: m.Content, Timestamp: m.Timestamp})
	}
	return msgs, latest
}

func (s *chatService) latestMood(ctx context.Context, userID string) *types.MoodLog {
	m, err := s.moodRepo.Latest(ctx, userID)
	if err != nil {
		s.log.Warn("mood read failed, continuing without it", "user_id", userID, "error", err)
		return nil
	}
	return m
}

func validateMessage(text string) error {
	if text == "" {
		return fmt.Errorf("message is required: %w", ErrValidation)
	}
	if utf8.RuneCountInString(text) > maxChatMessageChars {
		return fmt.Errorf("message exceeds %d characters: %w", maxChatMessageChars, ErrValidation)
	}
	return nil
}
