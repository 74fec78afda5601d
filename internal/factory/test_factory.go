package factory

import (
	"time"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/dependencies/mocks"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/guard"
	"github.com/mcoot/sportfinder/internal/services/auth"
	"github.com/mcoot/sportfinder/internal/storage/memory"
	"github.com/mcoot/sportfinder/internal/testutil"
)

// TestSecret signs session cookies in tests
const TestSecret = "test-session-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
	Memory    *memory.Storage
}

// TestOptions tweaks the test app; zero values pick test defaults
type TestOptions struct {
	// BackendURL points the API client at a fake backend (e.g. an httptest server)
	BackendURL string
	Locator    geo.Locator
	Policy     guard.Policy
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(opts TestOptions) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()
	logger := testutil.NopLogger()

	client := backend.New(backend.Config{
		BaseURL: opts.BackendURL,
		Timeout: 5 * time.Second,
		Logger:  logger,
	})

	app, err := newWithDependencies(store, mockClock, mockIDs, client, Config{
		AuthConfig: auth.Config{Secret: TestSecret},
		Locator:    opts.Locator,
		Policy:     opts.Policy,
	}, logger)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
		Memory:    store,
	}
}
