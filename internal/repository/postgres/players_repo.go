package postgres

import (
	"context"
	"errors"

	"arcade/internal/db"
	"arcade/internal/models"
	repo "arcade/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type playersRepo struct{ pool *pgxpool.Pool }

const playerColumns = `id, name, money, level, created_at, updated_at`

func scanPlayer(row pgx.Row) (models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.Name, &p.Money, &p.Level, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func getPlayer(ctx context.Context, q queryable, id int64) (models.Player, error) {
	return scanPlayer(q.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id=$1`, id))
}

func (r *playersRepo) GetByID(ctx context.Context, id int64) (models.Player, error) {
	p, err := getPlayer(ctx, r.pool, id)
	if err != nil {
		return models.Player{}, mapErr("get player", err)
	}
	return p, nil
}

func (r *playersRepo) Create(ctx context.Context, name string, money int64) (models.Player, error) {
	p, err := scanPlayer(r.pool.QueryRow(ctx,
		`INSERT INTO players (name, money) VALUES ($1, $2)
		 RETURNING `+playerColumns, name, money))
	if err != nil {
		return models.Player{}, mapErr("create player", err)
	}
	return p, nil
}

// Grant credits money with a relative UPDATE. Always atomic; there is no
// unsafe variant because nothing in the demo ever needed one.
func (r *playersRepo) Grant(ctx context.Context, id int64, amount int64) (models.Player, error) {
	p, err := scanPlayer(r.pool.QueryRow(ctx,
		`UPDATE players SET money = money + $2, updated_at = now()
		  WHERE id=$1
		  RETURNING `+playerColumns, id, amount))
	if err != nil {
		return models.Player{}, mapErr("grant", err)
	}
	return p, nil
}

// UpgradeUnsafe is check-then-act: the balance test and the debit are
// separate statements, so two concurrent upgrades can both pass the check
// and one debit overwrites the other. The CHECK (money >= 0) constraint is
// the backstop for any write that would go negative; a violation maps to
// ErrInsufficientFunds.
func (r *playersRepo) UpgradeUnsafe(ctx context.Context, id int64, cost int64) (models.Player, error) {
	p, err := getPlayer(ctx, r.pool, id)
	if err != nil {
		return models.Player{}, mapErr("get player", err)
	}
	if p.Money < cost {
		return models.Player{}, repo.ErrInsufficientFunds
	}
	p, err = scanPlayer(r.pool.QueryRow(ctx,
		`UPDATE players SET money=$2, level=$3, updated_at=now()
		  WHERE id=$1
		  RETURNING `+playerColumns, id, p.Money-cost, p.Level+1))
	if err != nil {
		return models.Player{}, mapErr("unsafe upgrade", err)
	}
	return p, nil
}

// UpgradeLocked takes the row lock first, so the balance check and the debit
// see a stable row. Concurrent upgrades queue behind the lock.
func (r *playersRepo) UpgradeLocked(ctx context.Context, id int64, cost int64) (models.Player, error) {
	var p models.Player
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		cur, err := scanPlayer(tx.QueryRow(ctx,
			`SELECT `+playerColumns+` FROM players WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if cur.Money < cost {
			return repo.ErrInsufficientFunds
		}
		p, err = scanPlayer(tx.QueryRow(ctx,
			`UPDATE players SET money = money - $2, level = level + 1, updated_at = now()
			  WHERE id=$1
			  RETURNING `+playerColumns, id, cost))
		return err
	})
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientFunds) {
			return models.Player{}, repo.ErrInsufficientFunds
		}
		return models.Player{}, mapErr("locked upgrade", err)
	}
	return p, nil
}

// UpgradeAtomic folds the check into the UPDATE's WHERE clause. Zero rows
// updated means either the player is missing or the balance fell short;
// a follow-up existence probe tells the two apart.
func (r *playersRepo) UpgradeAtomic(ctx context.Context, id int64, cost int64) (models.Player, error) {
	p, err := scanPlayer(r.pool.QueryRow(ctx,
		`UPDATE players SET money = money - $2, level = level + 1, updated_at = now()
		  WHERE id=$1 AND money >= $2
		  RETURNING `+playerColumns, id, cost))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.Player{}, mapErr("atomic upgrade", err)
	}

	var exists bool
	if probeErr := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE id=$1)`, id).Scan(&exists); probeErr != nil {
		return models.Player{}, mapErr("atomic upgrade probe", probeErr)
	}
	if !exists {
		return models.Player{}, repo.ErrNotFound
	}
	return models.Player{}, repo.ErrInsufficientFunds
}
