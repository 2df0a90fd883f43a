package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type testClock struct {
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(start time.Time) docstore.Store {
	return docstore.NewMemoryWithClock(newTestClock(start).Now)
}

// fakeAI records the last prompt and plays back canned responses.
type fakeAI struct {
	reply      string
	jsonReply  string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeAI) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeAI) GenerateJSON(_ context.Context, prompt string, out interface{}) error {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.jsonReply), out)
}

// faultyStore wraps a real store and fails selected operations, for
// exercising the degrade paths.
type faultyStore struct {
	docstore.Store
	failCreate bool
	failQuery  bool
}

func (s *faultyStore) Create(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	if s.failCreate {
		return "", docstore.ErrUnavailable
	}
	return s.Store.Create(ctx, collection, data)
}

func (s *faultyStore) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Doc, error) {
	if s.failQuery {
		return nil, docstore.ErrUnavailable
	}
	return s.Store.Query(ctx, collection, q)
}
