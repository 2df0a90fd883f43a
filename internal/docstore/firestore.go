package docstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mindease/mindease-backend/internal/logger"
)

type firestoreStore struct {
	client *firestore.Client
	log    *logger.Logger
}

// NewFirestore wraps a Firestore client as a Store. A nil client is the
// degraded mode: the store stays constructible and every operation returns
// ErrUnavailable instead of the process crashing at startup.
func NewFirestore(client *firestore.Client, baseLog *logger.Logger) Store {
	storeLog := baseLog.With("store", "FirestoreStore")
	return &firestoreStore{client: client, log: storeLog}
}

func (s *firestoreStore) available() error {
	if s.client == nil {
		return ErrUnavailable
	}
	return nil
}

func (s *firestoreStore) Now() time.Time {
	return time.Now().UTC()
}

func (s *firestoreStore) Create(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	if err := s.available(); err != nil {
		return "", err
	}
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", classify(err)
	}
	return ref.ID, nil
}

func (s *firestoreStore) Get(ctx context.Context, collection, id string) (Doc, error) {
	if err := s.available(); err != nil {
		return Doc{}, err
	}
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return Doc{}, classify(err)
	}
	return Doc{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *firestoreStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	if err := s.available(); err != nil {
		return err
	}
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, data)
	return classify(err)
}

func (s *firestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if err := s.available(); err != nil {
		return err
	}
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	return classify(err)
}

func (s *firestoreStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.available(); err != nil {
		return err
	}
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return classify(err)
}

func (s *firestoreStore) Query(ctx context.Context, collection string, q Query) ([]Doc, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	fq := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, f.Op, f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	iter := fq.Documents(ctx)
	defer iter.Stop()

	var docs []Doc
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err)
		}
		docs = append(docs, Doc{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *firestoreStore) Mutate(ctx context.Context, collection, id string, fn func(data map[string]interface{}) (map[string]interface{}, error)) error {
	if err := s.available(); err != nil {
		return err
	}
	ref := s.client.Collection(collection).Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		fields, err := fn(snap.Data())
		if err != nil {
			return err
		}
		return tx.Set(ref, fields, firestore.MergeAll)
	})
	return classify(err)
}

// classify folds transport-level failures into the store's own error
// vocabulary so callers can branch on sentinels instead of grpc codes.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.Unavailable:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case codes.Aborted:
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
