package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemo inserts the demo rows the endpoints are exercised against:
// one blog post and one player. Safe to run on every boot.
func SeedDemo(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO posts (id, title, content, views)
		VALUES (1, 'Example blog post', 'Hello! This is a blog post', 0)
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("seed post: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO players (id, name, money, level)
		VALUES (1, 'Alice', 1000, 1)
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("seed player: %w", err)
	}

	// keep the sequences ahead of the fixed-id seed rows
	_, err = pool.Exec(ctx, `
		SELECT setval('posts_id_seq', GREATEST((SELECT MAX(id) FROM posts), 1)),
		       setval('players_id_seq', GREATEST((SELECT MAX(id) FROM players), 1))`)
	if err != nil {
		return fmt.Errorf("advance sequences: %w", err)
	}
	return nil
}
