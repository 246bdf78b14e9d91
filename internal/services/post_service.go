package services

import (
	"context"
	"fmt"

	"arcade/internal/config"
	"arcade/internal/metrics"
	"arcade/internal/models"
	repo "arcade/internal/repository"
)

type PostService struct {
	posts repo.Posts
	mode  config.CounterMode
}

func NewPostService(posts repo.Posts, mode config.CounterMode) *PostService {
	return &PostService{posts: posts, mode: mode}
}

func (s *PostService) Get(ctx context.Context, id int64) (models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, title, content string) (models.Post, error) {
	return s.posts.Create(ctx, title, content)
}

// View registers one view using the configured strategy and returns the
// counter value the strategy observed.
func (s *PostService) View(ctx context.Context, id int64) (int64, error) {
	var (
		views int64
		err   error
	)
	switch s.mode {
	case config.ModeUnsafe:
		views, err = s.posts.IncrementViewsUnsafe(ctx, id)
	case config.ModeLocked:
		views, err = s.posts.IncrementViewsLocked(ctx, id)
	case config.ModeAtomic:
		views, err = s.posts.IncrementViewsAtomic(ctx, id)
	default:
		return 0, fmt.Errorf("unknown counter mode %q", s.mode)
	}
	if err != nil {
		return 0, err
	}
	metrics.ViewsTotal.Inc()
	return views, nil
}
