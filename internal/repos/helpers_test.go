package repos

import (
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

// testClock hands out strictly increasing times so every write gets a
// distinct timestamp.
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

func newTestStore(start time.Time) (docstore.Store, *testClock) {
	clock := newTestClock(start)
	return docstore.NewMemoryWithClock(clock.Now), clock
}
