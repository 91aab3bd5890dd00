package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"localnotes/internal/notes/adapters/storage/memory"
	"localnotes/internal/notes/app"
	"localnotes/internal/notes/domain/entities"
	"localnotes/pkg/logger"
)

var ErrStorageUnavailable = errors.New("storage unavailable")

var baseTime = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

type mockSnapshotStorage struct {
	mock.Mock
}

func (m *mockSnapshotStorage) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockSnapshotStorage) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockSnapshotStorage) Close() error {
	return m.Called().Error(0)
}

// frozenClock returns the same instant until advanced.
type frozenClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *frozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *frozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type sequentialIDs struct {
	mu      sync.Mutex
	notes   int
	folders int
}

func (g *sequentialIDs) NewNoteID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notes++
	return fmt.Sprintf("note-%d", g.notes)
}

func (g *sequentialIDs) NewFolderID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.folders++
	return fmt.Sprintf("folder-x%d", g.folders)
}

type fixture struct {
	store   *app.NoteStore
	storage *memory.Storage
	clock   *frozenClock
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newFixture(t *testing.T, opts ...app.Option) *fixture {
	t.Helper()

	storage := memory.New(nil)
	clock := &frozenClock{now: baseTime}
	store := app.NewNoteStore(entities.DefaultSnapshot(entities.English), storage, &sequentialIDs{}, clock, opts...)

	return &fixture{store: store, storage: storage, clock: clock}
}

func ids(notes []entities.Note) []string {
	result := make([]string, 0, len(notes))
	for _, n := range notes {
		result = append(result, n.ID)
	}
	return result
}
