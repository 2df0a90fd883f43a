package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memStore is the in-process implementation used by tests and by the
// STORE_MODE=memory dev configuration. Semantics match the Firestore adapter:
// documents are schemaless maps, queries support equality plus one range
// field, Mutate is serialized.
type memStore struct {
	mu    sync.Mutex
	cols  map[string]map[string]map[string]interface{}
	seq   int
	clock func() time.Time
}

func NewMemory() Store {
	return &memStore{
		cols:  map[string]map[string]map[string]interface{}{},
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// NewMemoryWithClock pins the adapter clock, so tests can control the
// server-side stamps.
func NewMemoryWithClock(clock func() time.Time) Store {
	return &memStore{
		cols:  map[string]map[string]map[string]interface{}{},
		clock: clock,
	}
}

func (s *memStore) Now() time.Time {
	return s.clock()
}

func (s *memStore) Create(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.cols[collection]
	if !ok {
		col = map[string]map[string]interface{}{}
		s.cols[collection] = col
	}
	s.seq++
	id := fmt.Sprintf("doc-%06d", s.seq)
	col[id] = copyDoc(data)
	return id, nil
}

func (s *memStore) Get(ctx context.Context, collection, id string) (Doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.cols[collection][id]
	if !ok {
		return Doc{}, ErrNotFound
	}
	return Doc{ID: id, Data: copyDoc(data)}, nil
}

func (s *memStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.cols[collection]
	if !ok {
		col = map[string]map[string]interface{}{}
		s.cols[collection] = col
	}
	col[id] = copyDoc(data)
	return nil
}

func (s *memStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.cols[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range copyDoc(fields) {
		data[k] = v
	}
	return nil
}

func (s *memStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.cols[collection]
	if !ok {
		return nil
	}
	delete(col, id)
	return nil
}

func (s *memStore) Query(ctx context.Context, collection string, q Query) ([]Doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []Doc
	for id, data := range s.cols[collection] {
		if matches(data, q.Filters) {
			docs = append(docs, Doc{ID: id, Data: copyDoc(data)})
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			less := lessValue(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			if q.Desc {
				return !less && !sameValue(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			}
			return less
		})
	} else {
		// Stable iteration for tests: fall back to ID order.
		sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	}

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (s *memStore) Mutate(ctx context.Context, collection, id string, fn func(data map[string]interface{}) (map[string]interface{}, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.cols[collection][id]
	if !ok {
		return ErrNotFound
	}
	fields, err := fn(copyDoc(data))
	if err != nil {
		return err
	}
	for k, v := range copyDoc(fields) {
		data[k] = v
	}
	return nil
}

func matches(data map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		switch f.Op {
		case OpEqual:
			if !ok || !sameValue(v, f.Value) {
				return false
			}
		case OpGreaterOrEqual:
			if !ok || lessValue(v, f.Value) {
				return false
			}
		case OpLessOrEqual:
			if !ok || lessValue(f.Value, v) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func sameValue(a, b interface{}) bool {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
		return false
	}
	return a == b
}

func lessValue(a, b interface{}) bool {
	switch va := a.(type) {
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Before(vb)
		}
	case string:
		if vb, ok := b.(string); ok {
			return va < vb
		}
	case int64:
		if vb, ok := toInt64(b); ok {
			return va < vb
		}
	case int:
		if vb, ok := toInt64(b); ok {
			return int64(va) < vb
		}
	case float64:
		if vb, ok := b.(float64); ok {
			return va < vb
		}
	}
	// Missing or incomparable values sort last.
	return a != nil && b == nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func copyDoc(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		switch vv := v.(type) {
		case map[string]interface{}:
			out[k] = copyDoc(vv)
		case []interface{}:
			cp := make([]interface{}, len(vv))
			for i, e := range vv {
				if m, ok := e.(map[string]interface{}); ok {
					cp[i] = copyDoc(m)
				} else {
					cp[i] = e
				}
			}
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}
