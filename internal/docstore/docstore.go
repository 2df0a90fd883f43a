package docstore

import (
	"context"
	"errors"
	"time"
)

// Store level errors. ErrUnavailable is the degraded-mode signal: the backing
// database never connected, every call fails fast and the caller decides how
// much of the feature survives.
var (
	ErrUnavailable = errors.New("document store unavailable")
	ErrNotFound    = errors.New("document not found")
	ErrConflict    = errors.New("document modified concurrently")
)

// Doc is one stored record plus its collection-unique ID.
type Doc struct {
	ID   string
	Data map[string]interface{}
}

// Filter ops mirror what the managed store supports natively.
const (
	OpEqual          = "=="
	OpGreaterOrEqual = ">="
	OpLessOrEqual    = "<="
)

type Filter struct {
	Field string
	Op    string
	Value interface{}
}

type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Store is the document database contract the repos are written against.
// Timestamps on writes always come from the adapter's clock (Now), never from
// the client, so retrieval ordering stays monotonic per writer.
type Store interface {
	Create(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	Get(ctx context.Context, collection, id string) (Doc, error)
	// Set writes a full document at a caller-chosen id, creating or
	// replacing it. Update merges fields into an existing document and
	// fails with ErrNotFound when it is absent.
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]Doc, error)
	// Mutate runs a transactional read-modify-write of a single document. fn
	// receives the current data and returns the fields to write. The store
	// retries internally on contention; ErrNotFound if the doc is absent.
	Mutate(ctx context.Context, collection, id string, fn func(data map[string]interface{}) (map[string]interface{}, error)) error
	Now() time.Time
}

// Loose decode helpers. Stored documents can drift (older writers, manual
// edits), so reads prefer a zero value over an error.

func Str(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func Time(data map[string]interface{}, key string) time.Time {
	if data == nil {
		return time.Time{}
	}
	switch v := data[key].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func Int64(data map[string]interface{}, key string) int64 {
	if data == nil {
		return 0
	}
	switch v := data[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
