package postgres

import (
	"context"

	"arcade/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type upgradesRepo struct{ pool *pgxpool.Pool }

func (r *upgradesRepo) Record(ctx context.Context, rec models.UpgradeRecord) (models.UpgradeRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO upgrade_history (id, player_id, cost, level_after, money_after)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		rec.ID, rec.PlayerID, rec.Cost, rec.LevelAfter, rec.MoneyAfter,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return models.UpgradeRecord{}, mapErr("record upgrade", err)
	}
	return rec, nil
}

func (r *upgradesRepo) ListByPlayer(ctx context.Context, playerID int64, limit, offset int) ([]models.UpgradeRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, player_id, cost, level_after, money_after, created_at
		   FROM upgrade_history
		  WHERE player_id=$1
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		playerID, limit, offset)
	if err != nil {
		return nil, mapErr("list upgrades", err)
	}
	defer rows.Close()

	var out []models.UpgradeRecord
	for rows.Next() {
		var rec models.UpgradeRecord
		if err := rows.Scan(&rec.ID, &rec.PlayerID, &rec.Cost, &rec.LevelAfter, &rec.MoneyAfter, &rec.CreatedAt); err != nil {
			return nil, mapErr("scan upgrade", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
