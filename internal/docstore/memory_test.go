package docstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	id, err := store.Create(ctx, "things", map[string]interface{}{"name": "first"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatalf("Create returned empty id")
	}

	doc, err := store.Get(ctx, "things", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := Str(doc.Data, "name"); got != "first" {
		t.Fatalf("name: want=first got=%s", got)
	}

	if err := store.Delete(ctx, "things", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "things", id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: want ErrNotFound got %v", err)
	}
}

func TestMemoryUpdateMissingDoc(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	err := store.Update(ctx, "things", "nope", map[string]interface{}{"x": 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing: want ErrNotFound got %v", err)
	}
}

func TestMemorySetUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if err := store.Set(ctx, "users", "u1", map[string]interface{}{"email": "a@b.c"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "users", "u1", map[string]interface{}{"email": "z@b.c"}); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	doc, err := store.Get(ctx, "users", "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := Str(doc.Data, "email"); got != "z@b.c" {
		t.Fatalf("email: want=z@b.c got=%s", got)
	}
}

func TestMemoryQueryFilterOrderLimit(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemory()

	for i := 0; i < 5; i++ {
		owner := "alice"
		if i%2 == 1 {
			owner = "bob"
		}
		_, err := store.Create(ctx, "entries", map[string]interface{}{
			"user_id":   owner,
			"timestamp": base.Add(time.Duration(i) * time.Hour),
			"n":         i,
		})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	docs, err := store.Query(ctx, "entries", Query{
		Filters: []Filter{{Field: "user_id", Op: OpEqual, Value: "alice"}},
		OrderBy: "timestamp",
		Desc:    true,
		Limit:   2,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs): want=2 got=%d", len(docs))
	}
	first := Time(docs[0].Data, "timestamp")
	second := Time(docs[1].Data, "timestamp")
	if !first.After(second) {
		t.Fatalf("descending order violated: %v then %v", first, second)
	}
}

func TestMemoryQueryRangeOps(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemory()

	for i := 0; i < 4; i++ {
		if _, err := store.Create(ctx, "entries", map[string]interface{}{
			"timestamp": base.AddDate(0, 0, i),
		}); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	docs, err := store.Query(ctx, "entries", Query{
		Filters: []Filter{{Field: "timestamp", Op: OpGreaterOrEqual, Value: base.AddDate(0, 0, 2)}},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs): want=2 got=%d", len(docs))
	}
}

func TestMemoryMutate(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	id, err := store.Create(ctx, "counters", map[string]interface{}{"count": int64(0)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		err := store.Mutate(ctx, "counters", id, func(data map[string]interface{}) (map[string]interface{}, error) {
			data["count"] = Int64(data, "count") + 1
			return data, nil
		})
		if err != nil {
			t.Fatalf("Mutate %d: %v", i, err)
		}
	}

	doc, err := store.Get(ctx, "counters", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := Int64(doc.Data, "count"); got != 3 {
		t.Fatalf("count: want=3 got=%d", got)
	}
}

func TestMemoryMutateCallbackErrorLeavesDocAlone(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	id, err := store.Create(ctx, "docs", map[string]interface{}{"v": "original"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	boom := errors.New("boom")
	err = store.Mutate(ctx, "docs", id, func(data map[string]interface{}) (map[string]interface{}, error) {
		data["v"] = "changed"
		return data, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Mutate error: want boom got %v", err)
	}
	doc, err := store.Get(ctx, "docs", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := Str(doc.Data, "v"); got != "original" {
		t.Fatalf("v: want=original got=%s", got)
	}
}

func TestMemoryClockIsInjectable(t *testing.T) {
	fixed := time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return fixed })
	if got := store.Now(); !got.Equal(fixed) {
		t.Fatalf("Now: want=%v got=%v", fixed, got)
	}
}
