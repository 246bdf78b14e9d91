package postgres

import (
	repo "arcade/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Posts    repo.Posts
	Players  repo.Players
	Upgrades repo.Upgrades
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Posts:    &postsRepo{pool: pool},
		Players:  &playersRepo{pool: pool},
		Upgrades: &upgradesRepo{pool: pool},
	}
}
