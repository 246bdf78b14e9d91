package postgres

import (
	"context"

	"arcade/internal/db"
	"arcade/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postsRepo struct{ pool *pgxpool.Pool }

const postColumns = `id, title, content, views, created_at, updated_at`

func scanPost(row pgx.Row) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Views, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *postsRepo) GetByID(ctx context.Context, id int64) (models.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id=$1`, id))
	if err != nil {
		return models.Post{}, mapErr("get post", err)
	}
	return p, nil
}

func (r *postsRepo) Create(ctx context.Context, title, content string) (models.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`INSERT INTO posts (title, content) VALUES ($1, $2)
		 RETURNING `+postColumns, title, content))
	if err != nil {
		return models.Post{}, mapErr("create post", err)
	}
	return p, nil
}

// IncrementViewsUnsafe reads the counter into Go, adds one, and writes the
// absolute value back. Two concurrent callers read the same value and one
// increment is lost. Kept as the demo's broken baseline.
func (r *postsRepo) IncrementViewsUnsafe(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := r.pool.QueryRow(ctx, `SELECT views FROM posts WHERE id=$1`, id).Scan(&views)
	if err != nil {
		return 0, mapErr("read views", err)
	}
	views++
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET views=$2, updated_at=now() WHERE id=$1`, id, views)
	if err != nil {
		return 0, mapErr("write views", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, mapErr("write views", pgx.ErrNoRows)
	}
	return views, nil
}

// IncrementViewsLocked serializes writers on the row: SELECT ... FOR UPDATE
// holds the row lock until the surrounding transaction commits.
func (r *postsRepo) IncrementViewsLocked(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`SELECT views FROM posts WHERE id=$1 FOR UPDATE`, id).Scan(&views); err != nil {
			return err
		}
		views++
		_, err := tx.Exec(ctx,
			`UPDATE posts SET views=$2, updated_at=now() WHERE id=$1`, id, views)
		return err
	})
	if err != nil {
		return 0, mapErr("locked increment", err)
	}
	return views, nil
}

// IncrementViewsAtomic performs the whole read-modify-write inside the
// database engine. No lock is held in client code and nothing can be lost.
func (r *postsRepo) IncrementViewsAtomic(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := r.pool.QueryRow(ctx,
		`UPDATE posts SET views = views + 1, updated_at = now()
		  WHERE id=$1
		  RETURNING views`, id).Scan(&views)
	if err != nil {
		return 0, mapErr("atomic increment", err)
	}
	return views, nil
}
