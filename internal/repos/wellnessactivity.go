package repos

import (
	"context"
	"fmt"
	"sort"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/types"
)

type WellnessActivityRepo interface {
	Create(ctx context.Context, activity *types.WellnessActivity) (string, error)
	List(ctx context.Context, userID string, limit int) ([]*types.WellnessActivity, error)
}

type wellnessActivityRepo struct {
	store docstore.Store
	log   *logger.Logger
}

func NewWellnessActivityRepo(store docstore.Store, baseLog *logger.Logger) WellnessActivityRepo {
	repoLog := baseLog.With("repo", "WellnessActivityRepo")
	return &wellnessActivityRepo{store: store, log: repoLog}
}

func (r *wellnessActivityRepo) Create(ctx context.Context, activity *types.WellnessActivity) (string, error) {
	if activity == nil || activity.UserID == "" {
		return "", fmt.Errorf("wellness activity requires a user id")
	}
	id, err := r.store.Create(ctx, types.CollectionWellnessActivities, map[string]interface{}{
		"user_id":   activity.UserID,
		"activity":  activity.Activity,
		"details":   activity.Details,
		"timestamp": r.store.Now(),
	})
	if err != nil {
		return "", err
	}
	r.log.Info("Wellness activity saved", "activity_id", id, "user_id", activity.UserID)
	return id, nil
}

func (r *wellnessActivityRepo) List(ctx context.Context, userID string, limit int) ([]*types.WellnessActivity, error) {
	docs, err := r.store.Query(ctx, types.CollectionWellnessActivities, docstore.Query{
		Filters: []docstore.Filter{{Field: "user_id", Op: docstore.OpEqual, Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	activities := make([]*types.WellnessActivity, 0, len(docs))
	for _, d := range docs {
		activities = append(activities, &types.WellnessActivity{
			ID:        d.ID,
			UserID:    docstore.Str(d.Data, "user_id"),
			Activity:  docstore.Str(d.Data, "activity"),
			Details:   docstore.Str(d.Data, "details"),
			Timestamp: docstore.Time(d.Data, "timestamp"),
		})
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}
