package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/repos"
	"github.com/mindease/mindease-backend/internal/types"
)

func newWellnessFixture(t *testing.T) (WellnessService, docstore.Store) {
	t.Helper()
	log := mustTestLogger(t)
	store := newTestStore(time.Date(2026, 4, 3, 11, 0, 0, 0, time.UTC))
	svc, err := NewWellnessService(
		repos.NewWellnessActivityRepo(store, log),
		repos.NewMoodLogRepo(store, log),
		repos.NewChatMessageRepo(store, log),
		log,
		42,
	)
	if err != nil {
		t.Fatalf("NewWellnessService: %v", err)
	}
	return svc, store
}

func TestCopingStrategiesKnownMood(t *testing.T) {
	svc, _ := newWellnessFixture(t)
	strategies := svc.CopingStrategies("Anxious")
	if len(strategies) == 0 {
		t.Fatalf("anxious should have dedicated strategies")
	}
}

func TestCopingStrategiesFallback(t *testing.T) {
	svc, _ := newWellnessFixture(t)
	unknown := svc.CopingStrategies("bewildered")
	general := svc.CopingStrategies("")
	if len(unknown) == 0 {
		t.Fatalf("unknown mood must fall back to general strategies")
	}
	if len(unknown) != len(general) || unknown[0] != general[0] {
		t.Fatalf("unknown mood should serve the general list")
	}
}

func TestRandomQuoteAndTips(t *testing.T) {
	svc, _ := newWellnessFixture(t)
	for i := 0; i < 5; i++ {
		q := svc.RandomQuote()
		if q.Text == "" {
			t.Fatalf("quote text should never be empty")
		}
	}
	if len(svc.MeditationTips()) == 0 {
		t.Fatalf("meditation tips missing")
	}
}

func TestCrisisContent(t *testing.T) {
	svc, _ := newWellnessFixture(t)
	crisis := svc.Crisis()
	if crisis.Disclaimer == "" {
		t.Fatalf("crisis disclaimer is mandatory")
	}
	if len(crisis.Resources) == 0 {
		t.Fatalf("crisis resources missing")
	}
	for _, r := range crisis.Resources {
		if r.Name == "" || r.Contact == "" {
			t.Fatalf("incomplete crisis resource: %+v", r)
		}
	}
}

func TestLogActivity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWellnessFixture(t)

	if _, err := svc.LogActivity(ctx, "u1", "  ", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank activity: want ErrValidation got %v", err)
	}
	entry, err := svc.LogActivity(ctx, "u1", "meditation", "10 minutes")
	if err != nil {
		t.Fatalf("LogActivity: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("logged activity should carry its id")
	}

	activities, err := svc.Activities(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if len(activities) != 1 || activities[0].Activity != "meditation" {
		t.Fatalf("activities: got %+v", activities)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	log := mustTestLogger(t)
	store := newTestStore(time.Date(2026, 4, 3, 11, 0, 0, 0, time.UTC))
	moodRepo := repos.NewMoodLogRepo(store, log)
	chatRepo := repos.NewChatMessageRepo(store, log)
	svc, err := NewWellnessService(repos.NewWellnessActivityRepo(store, log), moodRepo, chatRepo, log, 7)
	if err != nil {
		t.Fatalf("NewWellnessService: %v", err)
	}

	for _, mood := range []string{"calm", "calm", "sad"} {
		if _, err := moodRepo.Create(ctx, &types.MoodLog{UserID: "u1", Mood: mood, Source: types.MoodSourceManualLog}); err != nil {
			t.Fatalf("mood Create: %v", err)
		}
	}
	if _, err := chatRepo.Create(ctx, "u1", "s1", types.MessageTypeUser, "hi"); err != nil {
		t.Fatalf("chat Create: %v", err)
	}
	if _, err := svc.LogActivity(ctx, "u1", "breathing", ""); err != nil {
		t.Fatalf("LogActivity: %v", err)
	}

	stats, err := svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.MoodLogs != 3 || stats.ChatMessages != 1 || stats.WellnessActivities != 1 {
		t.Fatalf("stats: got %+v", stats)
	}
	if stats.MostFrequentMood != "calm" {
		t.Fatalf("most frequent mood: want=calm got=%s", stats.MostFrequentMood)
	}
}
