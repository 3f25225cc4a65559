package player

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/mcoot/golfhandicap/internal/cache"
	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/storage"
)

var errFlaky = errors.New("connection reset by peer")

// flakyStorage injects transient failures in front of a real store
type flakyStorage struct {
	storage.Storage

	mu sync.Mutex
	// failures is the number of upcoming calls to fail per method; -1 fails forever
	failures map[string]int
	// commitThenFail runs the real call and then reports an error anyway
	commitThenFail map[string]int
	calls          map[string]int
}

func newFlakyStorage(inner storage.Storage) *flakyStorage {
	return &flakyStorage{
		Storage:        inner,
		failures:       make(map[string]int),
		commitThenFail: make(map[string]int),
		calls:          make(map[string]int),
	}
}

func (f *flakyStorage) failNext(method string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = n
}

func (f *flakyStorage) failAfterCommit(method string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commitThenFail[method] = n
}

func (f *flakyStorage) heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = make(map[string]int)
	f.commitThenFail = make(map[string]int)
}

func (f *flakyStorage) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *flakyStorage) before(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	switch n := f.failures[method]; {
	case n < 0:
		return errFlaky
	case n > 0:
		f.failures[method] = n - 1
		return errFlaky
	}
	return nil
}

func (f *flakyStorage) after(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n := f.commitThenFail[method]; n > 0 {
		f.commitThenFail[method] = n - 1
		return errFlaky
	}
	return nil
}

func (f *flakyStorage) SavePlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	if err := f.before("SavePlayer"); err != nil {
		return nil, err
	}
	saved, err := f.Storage.SavePlayer(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := f.after("SavePlayer"); err != nil {
		return nil, err
	}
	return saved, nil
}

func (f *flakyStorage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if err := f.before("GetPlayer"); err != nil {
		return nil, err
	}
	return f.Storage.GetPlayer(ctx, id)
}

func (f *flakyStorage) UpdatePlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	if err := f.before("UpdatePlayer"); err != nil {
		return nil, err
	}
	return f.Storage.UpdatePlayer(ctx, p)
}

func (f *flakyStorage) SaveScore(ctx context.Context, e *model.ScoreEntry) (*model.ScoreEntry, error) {
	if err := f.before("SaveScore"); err != nil {
		return nil, err
	}
	saved, err := f.Storage.SaveScore(ctx, e)
	if err != nil {
		return nil, err
	}
	if err := f.after("SaveScore"); err != nil {
		return nil, err
	}
	return saved, nil
}

func (f *flakyStorage) UpdateScore(ctx context.Context, e *model.ScoreEntry) (*model.ScoreEntry, error) {
	if err := f.before("UpdateScore"); err != nil {
		return nil, err
	}
	return f.Storage.UpdateScore(ctx, e)
}

func (f *flakyStorage) ListScoresByPlayer(ctx context.Context, id model.PlayerID) ([]*model.ScoreEntry, error) {
	if err := f.before("ListScoresByPlayer"); err != nil {
		return nil, err
	}
	return f.Storage.ListScoresByPlayer(ctx, id)
}

func (f *flakyStorage) DeletePlayerCascade(ctx context.Context, id model.PlayerID) error {
	if err := f.before("DeletePlayerCascade"); err != nil {
		return err
	}
	return f.Storage.DeletePlayerCascade(ctx, id)
}

// mockCache is a testify mock of cache.PlayerCache
type mockCache struct {
	mock.Mock
}

var _ cache.PlayerCache = (*mockCache)(nil)

func (m *mockCache) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Player)
	return p, args.Error(1)
}

func (m *mockCache) Put(ctx context.Context, p *model.Player) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockCache) Evict(ctx context.Context, id model.PlayerID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCache) Close() error {
	return nil
}
