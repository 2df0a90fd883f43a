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

const (
	maxJournalChars      = 2000
	maxMoodLogsPerDay    = 3
	defaultHistoryWindow = 30
)

var validIntensities = map[string]bool{
	types.IntensityLow:    true,
	types.IntensityMedium: true,
	types.IntensityHigh:   true,
}

type MoodService interface {
	Record(ctx context.Context, userID, mood, journal, intensity string) (*types.MoodLog, error)
	Latest(ctx context.Context, userID string) (*types.MoodLog, error)
	History(ctx context.Context, userID string, days int) ([]*types.MoodLog, error)
	// AnalyzeText asks the model for a structured mood read of free text and,
	// when persist is set, records it as a chat_analysis entry.
	AnalyzeText(ctx context.Context, userID, text string, persist bool) (*types.MoodAnalysis, error)
}

type moodService struct {
	ai       AIClient
	moodRepo repos.MoodLogRepo
	log      *logger.Logger
}

func NewMoodService(ai AIClient, moodRepo repos.MoodLogRepo, baseLog *logger.Logger) MoodService {
	return &moodService{
		ai:       ai,
		moodRepo: moodRepo,
		log:      baseLog.With("service", "mood"),
	}
}

func (s *moodService) Record(ctx context.Context, userID, mood, journal, intensity string) (*types.MoodLog, error) {
	mood = strings.TrimSpace(strings.ToLower(mood))
	if mood == "" {
		return nil, fmt.Errorf("mood is required: %w", ErrValidation)
	}
	if utf8.RuneCountInString(journal) > maxJournalChars {
		return nil, fmt.Errorf("journal exceeds %d characters: %w", maxJournalChars, ErrValidation)
	}
	if intensity != "" && !validIntensities[intensity] {
		return nil, fmt.Errorf("intensity must be low, medium or high: %w", ErrValidation)
	}

	if err := s.checkDailyCap(ctx, userID); err != nil {
		return nil, err
	}

	entry := &types.MoodLog{
		UserID:    userID,
		Mood:      mood,
		Journal:   journal,
		Intensity: intensity,
		Source:    types.MoodSourceManualLog,
	}
	id, err := s.moodRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

func (s *moodService) Latest(ctx context.Context, userID string) (*types.MoodLog, error) {
	return s.moodRepo.Latest(ctx, userID)
}

func (s *moodService) History(ctx context.Context, userID string, days int) ([]*types.MoodLog, error) {
	if days <= 0 {
		days = defaultHistoryWindow
	}
	return s.moodRepo.History(ctx, userID, days)
}

func (s *moodService) AnalyzeText(ctx context.Context, userID, text string, persist bool) (*types.MoodAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text is required: %w", ErrValidation)
	}
	if utf8.RuneCountInString(text) > maxJournalChars {
		return nil, fmt.Errorf("text exceeds %d characters: %w", maxJournalChars, ErrValidation)
	}
	if s.ai == nil {
		return nil, fmt.Errorf("ai client not configured: %w", ErrUpstreamAI)
	}

	var analysis types.MoodAnalysis
	if err := s.ai.GenerateJSON(ctx, analysisPrompt(text), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAI, err)
	}
	if analysis.Mood == "" {
		return nil, fmt.Errorf("%w: empty analysis", ErrUpstreamAI)
	}

	if persist {
		entry := &types.MoodLog{
			UserID:    userID,
			Mood:      analysis.Mood,
			Journal:   text,
			Intensity: analysis.Intensity,
			Source:    types.MoodSourceChatAnalysis,
		}
		if _, err := s.moodRepo.Create(ctx, entry); err != nil {
			s.log.Warn("failed to persist mood analysis", "user_id", userID, "error", err)
		}
	}
	return &analysis, nil
}

// checkDailyCap rejects a fourth manual entry within the current UTC day.
// Entries whose stored timestamp is unreadable never count against the cap.
func (s *moodService) checkDailyCap(ctx context.Context, userID string) error {
	entries, err := s.moodRepo.History(ctx, userID, 1)
	if err != nil {
		return err
	}
	now := s.moodRepo.Now().UTC()
	today := 0
	for _, e := range entries {
		if e.Timestamp.IsZero() {
			continue
		}
		y, m, d := e.Timestamp.UTC().Date()
		if y == now.Year() && m == now.Month() && d == now.Day() {
			today++
		}
	}
	if today >= maxMoodLogsPerDay {
		return fmt.Errorf("mood can be logged at most %d times per day: %w", maxMoodLogsPerDay, ErrValidation)
	}
	return nil
}

func analysisPrompt(text string) string {
	return `Analyze the emotional tone of the following text and respond with JSON only, using exactly these fields: {"mood": "<one of: happy, sad, anxious, angry, calm, neutral>", "intensity": "<one of: low, medium, high>", "sentiment": <number between -1 and 1>, "confidence": <number between 0 and 1>, "keywords": [<up to 5 emotional keywords from the text>], "suggestions": [<up to 3 short wellness suggestions>]}.

Text: ` + text
}
