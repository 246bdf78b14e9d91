package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"

	repo "arcade/internal/repository"
	"arcade/internal/repository/postgres/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayersRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repos := NewRepositories(testDB.Pool)
	ctx := context.Background()

	t.Run("player not found", func(t *testing.T) {
		_, err := repos.Players.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("create then get", func(t *testing.T) {
		want := testutil.NewTestPlayer("Alice", 1000)
		created, err := repos.Players.Create(ctx, want.Name, want.Money)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, 1, created.Level)

		got, err := repos.Players.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Money, got.Money)
	})

	t.Run("negative starting money rejected by schema", func(t *testing.T) {
		_, err := repos.Players.Create(ctx, "Broke", -1)
		assert.ErrorIs(t, err, repo.ErrInsufficientFunds)
	})
}

func TestPlayersRepo_Grant(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repos := NewRepositories(testDB.Pool)
	ctx := context.Background()

	p, err := repos.Players.Create(ctx, "Bob", 100)
	require.NoError(t, err)

	t.Run("credit", func(t *testing.T) {
		got, err := repos.Players.Grant(ctx, p.ID, 400)
		require.NoError(t, err)
		assert.Equal(t, int64(500), got.Money)
	})

	t.Run("missing player", func(t *testing.T) {
		_, err := repos.Players.Grant(ctx, 999999, 100)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("debit past zero hits the check constraint", func(t *testing.T) {
		_, err := repos.Players.Grant(ctx, p.ID, -100000)
		assert.ErrorIs(t, err, repo.ErrInsufficientFunds)

		got, err := repos.Players.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(500), got.Money)
	})
}

func TestPlayersRepo_Upgrade(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repos := NewRepositories(testDB.Pool)
	ctx := context.Background()

	const cost = 150

	for _, tc := range []struct {
		name string
		fn   string
	}{
		{name: "unsafe", fn: "unsafe"},
		{name: "locked", fn: "locked"},
		{name: "atomic", fn: "atomic"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := repos.Players.Create(ctx, "Up-"+tc.name, 200)
			require.NoError(t, err)

			upgrade := func(id, cost int64) (money int64, level int, err error) {
				switch tc.fn {
				case "unsafe":
					got, err := repos.Players.UpgradeUnsafe(ctx, id, cost)
					return got.Money, got.Level, err
				case "locked":
					got, err := repos.Players.UpgradeLocked(ctx, id, cost)
					return got.Money, got.Level, err
				default:
					got, err := repos.Players.UpgradeAtomic(ctx, id, cost)
					return got.Money, got.Level, err
				}
			}

			money, level, err := upgrade(p.ID, cost)
			require.NoError(t, err)
			assert.Equal(t, int64(50), money)
			assert.Equal(t, 2, level)

			// 50 left, cannot afford another one
			_, _, err = upgrade(p.ID, cost)
			assert.ErrorIs(t, err, repo.ErrInsufficientFunds)

			got, err := repos.Players.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(50), got.Money)
			assert.Equal(t, 2, got.Level)

			_, _, err = upgrade(999999, cost)
			assert.ErrorIs(t, err, repo.ErrNotFound)
		})
	}
}

// With 1000 money and a cost of 150 exactly six concurrent upgrades may
// succeed; the rest must fail cleanly and the balance must stay at 100.
func TestPlayersRepo_ConcurrentUpgrades(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repos := NewRepositories(testDB.Pool)
	ctx := context.Background()

	const (
		cost     = 150
		attempts = 20
	)

	run := func(t *testing.T, upgrade func(context.Context, int64, int64) error, id int64) (ok, rejected int) {
		t.Helper()
		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- upgrade(ctx, id, cost)
			}()
		}
		wg.Wait()
		close(results)
		for err := range results {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, repo.ErrInsufficientFunds):
				rejected++
			default:
				t.Errorf("unexpected upgrade error: %v", err)
			}
		}
		return ok, rejected
	}

	t.Run("atomic", func(t *testing.T) {
		p, err := repos.Players.Create(ctx, "Atomic", 1000)
		require.NoError(t, err)

		ok, rejected := run(t, func(ctx context.Context, id, cost int64) error {
			_, err := repos.Players.UpgradeAtomic(ctx, id, cost)
			return err
		}, p.ID)

		assert.Equal(t, 6, ok)
		assert.Equal(t, attempts-6, rejected)

		got, err := repos.Players.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), got.Money)
		assert.Equal(t, 7, got.Level)
	})

	t.Run("locked", func(t *testing.T) {
		p, err := repos.Players.Create(ctx, "Locked", 1000)
		require.NoError(t, err)

		ok, rejected := run(t, func(ctx context.Context, id, cost int64) error {
			_, err := repos.Players.UpgradeLocked(ctx, id, cost)
			return err
		}, p.ID)

		assert.Equal(t, 6, ok)
		assert.Equal(t, attempts-6, rejected)

		got, err := repos.Players.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), got.Money)
		assert.Equal(t, 7, got.Level)
	})

	// The unsafe strategy double-spends, but the CHECK constraint still
	// refuses to take the balance negative.
	t.Run("unsafe never goes negative", func(t *testing.T) {
		p, err := repos.Players.Create(ctx, "Unsafe", 1000)
		require.NoError(t, err)

		run(t, func(ctx context.Context, id, cost int64) error {
			_, err := repos.Players.UpgradeUnsafe(ctx, id, cost)
			return err
		}, p.ID)

		got, err := repos.Players.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Money, int64(0))
	})
}
