package factory

import (
	"time"

	"github.com/hweijian/ghostgame-go/internal/dependencies/mocks"
	"github.com/hweijian/ghostgame-go/internal/services/roles"
	"github.com/hweijian/ghostgame-go/internal/services/room"
	"github.com/hweijian/ghostgame-go/internal/storage/memory"
	"github.com/hweijian/ghostgame-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockBroadcast *mocks.MockBroadcast
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The coordinator publishes to a MockBroadcast so tests can assert on
// broadcast traffic.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockBroadcast := mocks.NewMockBroadcast()
	logger := testutil.NopLogger()

	app := newWithDependencies(store, mockClock, mockRandom, logger)
	engine := roles.NewEngine(mockRandom)
	app.Engine = engine
	app.Coordinator = room.NewCoordinator(store, mockBroadcast, engine, mockClock, mockRandom, logger)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockBroadcast: mockBroadcast,
	}
}
