package repos

import (
	"context"
	"fmt"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/types"
)

// UserRepo stores app-side user profiles keyed by the identity provider's
// uid. The document id IS the uid, so lookups never need a query.
type UserRepo interface {
	Ensure(ctx context.Context, uid, email, displayName string) (*types.User, error)
	Get(ctx context.Context, uid string) (*types.User, error)
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
}

type userRepo struct {
	store docstore.Store
	log   *logger.Logger
}

func NewUserRepo(store docstore.Store, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{store: store, log: repoLog}
}

// Ensure fetches the profile for uid, creating it on first sight.
func (r *userRepo) Ensure(ctx context.Context, uid, email, displayName string) (*types.User, error) {
	if uid == "" {
		return nil, fmt.Errorf("user requires a uid")
	}
	user, err := r.Get(ctx, uid)
	if err != nil || user != nil {
		return user, err
	}
	now := r.store.Now()
	if err := r.store.Set(ctx, types.CollectionUsers, uid, map[string]interface{}{
		"email":        email,
		"display_name": displayName,
		"created_at":   now,
		"updated_at":   now,
	}); err != nil {
		return nil, err
	}
	r.log.Info("User profile created", "user_id", uid)
	return r.Get(ctx, uid)
}

func (r *userRepo) Get(ctx context.Context, uid string) (*types.User, error) {
	doc, err := r.store.Get(ctx, types.CollectionUsers, uid)
	if err == docstore.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &types.User{
		ID:          doc.ID,
		Email:       docstore.Str(doc.Data, "email"),
		DisplayName: docstore.Str(doc.Data, "display_name"),
		CreatedAt:   docstore.Time(doc.Data, "created_at"),
		UpdatedAt:   docstore.Time(doc.Data, "updated_at"),
	}, nil
}

func (r *userRepo) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	fields["updated_at"] = r.store.Now()
	return r.store.Update(ctx, types.CollectionUsers, uid, fields)
}
