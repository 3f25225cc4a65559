package factory

import (
	"time"

	"go.uber.org/zap"

	cachememory "github.com/mcoot/golfhandicap/internal/cache/memory"
	"github.com/mcoot/golfhandicap/internal/dependencies/mocks"
	"github.com/mcoot/golfhandicap/internal/retry"
	"github.com/mcoot/golfhandicap/internal/services/player"
	"github.com/mcoot/golfhandicap/internal/storage"
	"github.com/mcoot/golfhandicap/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.SequentialIDs
}

// TestEpoch is the time the test clock starts at
var TestEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NewTestApp creates an App backed by in-memory stores with a mocked clock,
// predictable IDs and a fast retry policy
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(TestEpoch)
	mockIDs := mocks.NewSequentialIDs()

	store := memory.New(storage.WithClock(mockClock), storage.WithIDGenerator(mockIDs))
	playerCache := cachememory.New(cachememory.WithClock(mockClock))

	playerCfg := player.Config{
		Retry: retry.Config{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2,
		},
	}

	app := newWithDependencies(store, playerCache, mockClock, mockIDs, playerCfg, zap.NewNop())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}
