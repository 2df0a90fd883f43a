package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mindease/mindease-backend/internal/repos"
	"github.com/mindease/mindease-backend/internal/types"
)

func newMoodService(t *testing.T, ai *fakeAI, start time.Time) (MoodService, repos.MoodLogRepo) {
	t.Helper()
	log := mustTestLogger(t)
	moodRepo := repos.NewMoodLogRepo(newTestStore(start), log)
	return NewMoodService(ai, moodRepo, log), moodRepo
}

func TestMoodRecordAndLatest(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMoodService(t, nil, time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))

	entry, err := svc.Record(ctx, "u1", "Anxious", "long day", types.IntensityMedium)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.Mood != "anxious" {
		t.Fatalf("mood should be normalized: got %q", entry.Mood)
	}
	if entry.ID == "" {
		t.Fatalf("recorded entry should carry its id")
	}

	latest, err := svc.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Mood != "anxious" {
		t.Fatalf("Latest: got %+v", latest)
	}
	if latest.Source != types.MoodSourceManualLog {
		t.Fatalf("source: want=%s got=%s", types.MoodSourceManualLog, latest.Source)
	}
}

func TestMoodRecordValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMoodService(t, nil, time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))

	if _, err := svc.Record(ctx, "u1", "", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing mood: want ErrValidation got %v", err)
	}
	if _, err := svc.Record(ctx, "u1", "sad", strings.Repeat("x", 2001), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("oversized journal: want ErrValidation got %v", err)
	}
	if _, err := svc.Record(ctx, "u1", "sad", "", "extreme"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad intensity: want ErrValidation got %v", err)
	}
}

func TestMoodRecordDailyCap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMoodService(t, nil, time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(ctx, "u1", "calm", "", ""); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}
	if _, err := svc.Record(ctx, "u1", "calm", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("fourth entry of the day: want ErrValidation got %v", err)
	}
	// Other users are unaffected.
	if _, err := svc.Record(ctx, "u2", "calm", "", ""); err != nil {
		t.Fatalf("other user's Record: %v", err)
	}
}

func TestMoodHistoryDefaultWindow(t *testing.T) {
	ctx := context.Background()
	svc, moodRepo := newMoodService(t, nil, time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))

	if _, err := moodRepo.Create(ctx, &types.MoodLog{UserID: "u1", Mood: "calm", Source: types.MoodSourceManualLog}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	entries, err := svc.History(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries): want=1 got=%d", len(entries))
	}
}

func TestAnalyzeTextPersists(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{jsonReply: `{"mood":"anxious","intensity":"high","sentiment":-0.6,"confidence":0.9,"keywords":["deadline"],"suggestions":["take a short walk"]}`}
	svc, moodRepo := newMoodService(t, ai, time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))

	analysis, err := svc.AnalyzeText(ctx, "u1", "the deadline is crushing me", true)
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if analysis.Mood != "anxious" || analysis.Intensity != "high" {
		t.Fatalf("analysis: got %+v", analysis)
	}

	latest, err := moodRepo.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Source != types.MoodSourceChatAnalysis {
		t.Fatalf("persisted analysis entry: got %+v", latest)
	}
}

func TestAnalyzeTextWithoutPersist(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{jsonReply: `{"mood":"calm","intensity":"low","sentiment":0.4,"confidence":0.8,"keywords":[],"suggestions":[]}`}
	svc, moodRepo := newMoodService(t, ai, time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))

	if _, err := svc.AnalyzeText(ctx, "u1", "feeling okay today", false); err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	latest, err := moodRepo.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest != nil {
		t.Fatalf("no entry should be written without persist, got %+v", latest)
	}
}

func TestAnalyzeTextErrors(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{err: errors.New("model down")}
	svc, _ := newMoodService(t, ai, time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))

	if _, err := svc.AnalyzeText(ctx, "u1", "", false); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty text: want ErrValidation got %v", err)
	}
	if _, err := svc.AnalyzeText(ctx, "u1", "some text", false); !errors.Is(err, ErrUpstreamAI) {
		t.Fatalf("model failure: want ErrUpstreamAI got %v", err)
	}
}
