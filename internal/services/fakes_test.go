package services

import (
	"context"
	"sync"

	"arcade/internal/models"
	repo "arcade/internal/repository"
)

// In-memory repository fakes. The unsafe/locked/atomic variants behave the
// same here; the tests only care which one the service dispatches to.

type fakePosts struct {
	mu     sync.Mutex
	posts  map[int64]*models.Post
	nextID int64

	unsafeCalls int
	lockedCalls int
	atomicCalls int
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: map[int64]*models.Post{}}
}

func (f *fakePosts) GetByID(_ context.Context, id int64) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return models.Post{}, repo.ErrNotFound
	}
	return *p, nil
}

func (f *fakePosts) Create(_ context.Context, title, content string) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := &models.Post{ID: f.nextID, Title: title, Content: content}
	f.posts[p.ID] = p
	return *p, nil
}

func (f *fakePosts) increment(id int64) (int64, error) {
	p, ok := f.posts[id]
	if !ok {
		return 0, repo.ErrNotFound
	}
	p.Views++
	return p.Views, nil
}

func (f *fakePosts) IncrementViewsUnsafe(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsafeCalls++
	return f.increment(id)
}

func (f *fakePosts) IncrementViewsLocked(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lockedCalls++
	return f.increment(id)
}

func (f *fakePosts) IncrementViewsAtomic(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.atomicCalls++
	return f.increment(id)
}

type fakePlayers struct {
	mu      sync.Mutex
	players map[int64]*models.Player
	nextID  int64
}

func newFakePlayers() *fakePlayers {
	return &fakePlayers{players: map[int64]*models.Player{}}
}

func (f *fakePlayers) GetByID(_ context.Context, id int64) (models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[id]
	if !ok {
		return models.Player{}, repo.ErrNotFound
	}
	return *p, nil
}

func (f *fakePlayers) Create(_ context.Context, name string, money int64) (models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := &models.Player{ID: f.nextID, Name: name, Money: money, Level: 1}
	f.players[p.ID] = p
	return *p, nil
}

func (f *fakePlayers) Grant(_ context.Context, id int64, amount int64) (models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[id]
	if !ok {
		return models.Player{}, repo.ErrNotFound
	}
	if p.Money+amount < 0 {
		return models.Player{}, repo.ErrInsufficientFunds
	}
	p.Money += amount
	return *p, nil
}

func (f *fakePlayers) upgrade(id int64, cost int64) (models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return models.Player{}, repo.ErrNotFound
	}
	if p.Money < cost {
		return models.Player{}, repo.ErrInsufficientFunds
	}
	p.Money -= cost
	p.Level++
	return *p, nil
}

func (f *fakePlayers) UpgradeUnsafe(_ context.Context, id, cost int64) (models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upgrade(id, cost)
}

func (f *fakePlayers) UpgradeLocked(_ context.Context, id, cost int64) (models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upgrade(id, cost)
}

func (f *fakePlayers) UpgradeAtomic(_ context.Context, id, cost int64) (models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upgrade(id, cost)
}

type fakeUpgrades struct {
	mu   sync.Mutex
	recs []models.UpgradeRecord
}

func (f *fakeUpgrades) Record(_ context.Context, rec models.UpgradeRecord) (models.UpgradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.ID == "" {
		rec.ID = "fake"
	}
	f.recs = append(f.recs, rec)
	return rec, nil
}

func (f *fakeUpgrades) ListByPlayer(_ context.Context, playerID int64, limit, offset int) ([]models.UpgradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UpgradeRecord
	for _, rec := range f.recs {
		if rec.PlayerID == playerID {
			out = append(out, rec)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUpgrades) records() []models.UpgradeRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.UpgradeRecord(nil), f.recs...)
}
