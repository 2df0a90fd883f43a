package services

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/repos"
	"github.com/mindease/mindease-backend/internal/types"
)

//go:embed content/wellness.yaml
var wellnessContentRaw []byte

// Quote is a canned inspirational quote.
type Quote struct {
	Text   string `yaml:"text" json:"text"`
	Author string `yaml:"author" json:"author"`
}

// CrisisResource is a hotline or directory entry served with every crisis
// response.
type CrisisResource struct {
	Name      string `yaml:"name" json:"name"`
	Contact   string `yaml:"contact" json:"contact"`
	Available string `yaml:"available" json:"available"`
}

// CrisisInfo bundles the resources with the mandatory disclaimer.
type CrisisInfo struct {
	Disclaimer string           `yaml:"disclaimer" json:"disclaimer"`
	Resources  []CrisisResource `yaml:"resources" json:"resources"`
}

// UserStats is the aggregate activity summary for one user.
type UserStats struct {
	MoodLogs           int    `json:"mood_logs"`
	ChatMessages       int    `json:"chat_messages"`
	WellnessActivities int    `json:"wellness_activities"`
	MostFrequentMood   string `json:"most_frequent_mood,omitempty"`
}

type wellnessContent struct {
	CopingStrategies map[string][]string `yaml:"coping_strategies"`
	Quotes           []Quote             `yaml:"quotes"`
	MeditationTips   []string            `yaml:"meditation_tips"`
	Crisis           CrisisInfo          `yaml:"crisis"`
}

type WellnessService interface {
	// CopingStrategies returns the strategy list for a mood, falling back to
	// the general list for moods with no dedicated content.
	CopingStrategies(mood string) []string
	RandomQuote() Quote
	MeditationTips() []string
	Crisis() CrisisInfo
	LogActivity(ctx context.Context, userID, activity, details string) (*types.WellnessActivity, error)
	Activities(ctx context.Context, userID string, limit int) ([]*types.WellnessActivity, error)
	Stats(ctx context.Context, userID string) (*UserStats, error)
}

type wellnessService struct {
	content      wellnessContent
	wellnessRepo repos.WellnessActivityRepo
	moodRepo     repos.MoodLogRepo
	chatRepo     repos.ChatMessageRepo
	log          *logger.Logger

	mu sync.Mutex
	r  *rand.Rand
}

func NewWellnessService(wellnessRepo repos.WellnessActivityRepo, moodRepo repos.MoodLogRepo, chatRepo repos.ChatMessageRepo, baseLog *logger.Logger, seed int64) (WellnessService, error) {
	var content wellnessContent
	if err := yaml.Unmarshal(wellnessContentRaw, &content); err != nil {
		return nil, fmt.Errorf("failed to parse wellness content: %w", err)
	}
	if len(content.Quotes) == 0 || len(content.CopingStrategies["general"]) == 0 {
		return nil, fmt.Errorf("wellness content is incomplete")
	}
	return &wellnessService{
		content:      content,
		wellnessRepo: wellnessRepo,
		moodRepo:     moodRepo,
		chatRepo:     chatRepo,
		log:          baseLog.With("service", "wellness"),
		r:            rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *wellnessService) CopingStrategies(mood string) []string {
	mood = strings.TrimSpace(strings.ToLower(mood))
	if list, ok := s.content.CopingStrategies[mood]; ok && len(list) > 0 {
		return list
	}
	return s.content.CopingStrategies["general"]
}

func (s *wellnessService) RandomQuote() Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content.Quotes[s.r.Intn(len(s.content.Quotes))]
}

func (s *wellnessService) MeditationTips() []string {
	return s.content.MeditationTips
}

func (s *wellnessService) Crisis() CrisisInfo {
	return s.content.Crisis
}

func (s *wellnessService) LogActivity(ctx context.Context, userID, activity, details string) (*types.WellnessActivity, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return nil, fmt.Errorf("activity is required: %w", ErrValidation)
	}
	entry := &types.WellnessActivity{
		UserID:   userID,
		Activity: activity,
		Details:  details,
	}
	id, err := s.wellnessRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

func (s *wellnessService) Activities(ctx context.Context, userID string, limit int) ([]*types.WellnessActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.wellnessRepo.List(ctx, userID, limit)
}

func (s *wellnessService) Stats(ctx context.Context, userID string) (*UserStats, error) {
	moods, err := s.moodRepo.History(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	chats, err := s.chatRepo.History(ctx, userID, "", 0)
	if err != nil {
		return nil, err
	}
	activities, err := s.wellnessRepo.List(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		MoodLogs:           len(moods),
		ChatMessages:       len(chats),
		WellnessActivities: len(activities),
	}
	counts := map[string]int{}
	for _, m := range moods {
		counts[m.Mood]++
	}
	best := 0
	for mood, n := range counts {
		if n > best || (n == best && mood < stats.MostFrequentMood) {
			best = n
			stats.MostFrequentMood = mood
		}
	}
	return stats, nil
}
