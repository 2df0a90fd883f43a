package repos

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/types"
)

// MoodLogRepo is the append-only mood ledger. There is no update or delete:
// entries are immutable once written, and the ledger itself enforces no
// per-day cap (that is the caller's policy).
type MoodLogRepo interface {
	Create(ctx context.Context, entry *types.MoodLog) (string, error)
	Latest(ctx context.Context, userID string) (*types.MoodLog, error)
	History(ctx context.Context, userID string, windowDays int) ([]*types.MoodLog, error)
	// Now exposes the store clock so callers stamp policy decisions with the
	// same time source entries are stamped with.
	Now() time.Time
}

type moodLogRepo struct {
	store docstore.Store
	log   *logger.Logger
}

func NewMoodLogRepo(store docstore.Store, baseLog *logger.Logger) MoodLogRepo {
	repoLog := baseLog.With("repo", "MoodLogRepo")
	return &moodLogRepo{store: store, log: repoLog}
}

func (r *moodLogRepo) Create(ctx context.Context, entry *types.MoodLog) (string, error) {
	if entry == nil || entry.UserID == "" {
		return "", fmt.Errorf("mood entry requires a user id")
	}
	data := map[string]interface{}{
		"user_id":   entry.UserID,
		"mood":      entry.Mood,
		"journal":   entry.Journal,
		"source":    entry.Source,
		"timestamp": r.store.Now(),
	}
	if entry.Intensity != "" {
		data["intensity"] = entry.Intensity
	}
	id, err := r.store.Create(ctx, types.CollectionMoodLogs, data)
	if err != nil {
		return "", err
	}
	r.log.Info("Mood log saved", "mood_log_id", id, "user_id", entry.UserID)
	return id, nil
}

func (r *moodLogRepo) Now() time.Time {
	return r.store.Now()
}

func (r *moodLogRepo) Latest(ctx context.Context, userID string) (*types.MoodLog, error) {
	entries, err := r.fetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// History returns entries newest first. The window filter is applied in
// process rather than in the store query so that entries with a missing or
// unreadable timestamp are included instead of silently dropped: losing a
// mood entry to a store-side inconsistency is worse than over-reporting.
func (r *moodLogRepo) History(ctx context.Context, userID string, windowDays int) ([]*types.MoodLog, error) {
	entries, err := r.fetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if windowDays <= 0 {
		return entries, nil
	}
	cutoff := r.store.Now().Add(-time.Duration(windowDays) * 24 * time.Hour)
	out := make([]*types.MoodLog, 0, len(entries))
	for _, e := range entries {
		if e.Timestamp.IsZero() || !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *moodLogRepo) fetchAll(ctx context.Context, userID string) ([]*types.MoodLog, error) {
	docs, err := r.store.Query(ctx, types.CollectionMoodLogs, docstore.Query{
		Filters: []docstore.Filter{{Field: "user_id", Op: docstore.OpEqual, Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	entries := make([]*types.MoodLog, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, decodeMoodLog(d))
	}
	// Newest first; zero timestamps sort to the back.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

func decodeMoodLog(d docstore.Doc) *types.MoodLog {
	return &types.MoodLog{
		ID:        d.ID,
		UserID:    docstore.Str(d.Data, "user_id"),
		Mood:      docstore.Str(d.Data, "mood"),
		Journal:   docstore.Str(d.Data, "journal"),
		Intensity: docstore.Str(d.Data, "intensity"),
		Source:    docstore.Str(d.Data, "source"),
		Timestamp: docstore.Time(d.Data, "timestamp"),
	}
}
