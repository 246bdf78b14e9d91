package repository

import (
	"context"
	"errors"

	"arcade/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientFunds is returned when an upgrade cannot cover its cost.
	// The database CHECK constraint surfaces as this error too, so even the
	// unsafe code path cannot produce a negative balance.
	ErrInsufficientFunds = errors.New("not enough money")
)

// Posts exposes one increment method per demo strategy; the service picks
// one based on the configured counter mode.
type Posts interface {
	GetByID(ctx context.Context, id int64) (models.Post, error)
	Create(ctx context.Context, title, content string) (models.Post, error)

	// IncrementViewsUnsafe is the read-then-write baseline. Concurrent
	// callers overwrite each other and views are lost.
	IncrementViewsUnsafe(ctx context.Context, id int64) (int64, error)
	// IncrementViewsLocked takes SELECT ... FOR UPDATE in a transaction.
	IncrementViewsLocked(ctx context.Context, id int64) (int64, error)
	// IncrementViewsAtomic pushes the read-modify-write into a single
	// UPDATE statement.
	IncrementViewsAtomic(ctx context.Context, id int64) (int64, error)
}

type Players interface {
	GetByID(ctx context.Context, id int64) (models.Player, error)
	Create(ctx context.Context, name string, money int64) (models.Player, error)
	Grant(ctx context.Context, id int64, amount int64) (models.Player, error)

	// The three upgrade strategies mirror the view-counter ones. Each
	// debits cost and increments level, or fails with
	// ErrInsufficientFunds leaving the row untouched.
	UpgradeUnsafe(ctx context.Context, id int64, cost int64) (models.Player, error)
	UpgradeLocked(ctx context.Context, id int64, cost int64) (models.Player, error)
	UpgradeAtomic(ctx context.Context, id int64, cost int64) (models.Player, error)
}

type Upgrades interface {
	Record(ctx context.Context, rec models.UpgradeRecord) (models.UpgradeRecord, error)
	ListByPlayer(ctx context.Context, playerID int64, limit, offset int) ([]models.UpgradeRecord, error)
}
