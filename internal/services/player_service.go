package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"arcade/internal/config"
	"arcade/internal/metrics"
	"arcade/internal/models"
	repo "arcade/internal/repository"
	"arcade/internal/worker"
)

type PlayerService struct {
	players repo.Players
	history repo.Upgrades
	wp      *worker.Pool
	mode    config.CounterMode
	cost    int64
}

func NewPlayerService(players repo.Players, history repo.Upgrades, wp *worker.Pool, cfg config.Config) *PlayerService {
	return &PlayerService{
		players: players,
		history: history,
		wp:      wp,
		mode:    cfg.CounterMode,
		cost:    cfg.UpgradeCost,
	}
}

func (s *PlayerService) Get(ctx context.Context, id int64) (models.Player, error) {
	return s.players.GetByID(ctx, id)
}

func (s *PlayerService) Create(ctx context.Context, name string, money int64) (models.Player, error) {
	p := models.Player{Name: name, Money: money, Level: 1}
	if err := p.Validate(); err != nil {
		return models.Player{}, err
	}
	return s.players.Create(ctx, p.Name, p.Money)
}

func (s *PlayerService) Grant(ctx context.Context, id int64, amount int64) (models.Player, error) {
	if amount <= 0 {
		return models.Player{}, errors.New("amount must be > 0")
	}
	return s.players.Grant(ctx, id, amount)
}

// Upgrade spends the configured cost to raise the player's level by one,
// using whichever strategy the counter mode selects. The history row is
// appended off the request path.
func (s *PlayerService) Upgrade(ctx context.Context, id int64) (models.Player, error) {
	var (
		p   models.Player
		err error
	)
	switch s.mode {
	case config.ModeUnsafe:
		p, err = s.players.UpgradeUnsafe(ctx, id, s.cost)
	case config.ModeLocked:
		p, err = s.players.UpgradeLocked(ctx, id, s.cost)
	case config.ModeAtomic:
		p, err = s.players.UpgradeAtomic(ctx, id, s.cost)
	default:
		return models.Player{}, fmt.Errorf("unknown counter mode %q", s.mode)
	}
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientFunds) {
			metrics.UpgradesTotal.WithLabelValues("insufficient_funds").Inc()
		} else if !errors.Is(err, repo.ErrNotFound) {
			metrics.UpgradesTotal.WithLabelValues("error").Inc()
		}
		return models.Player{}, err
	}
	metrics.UpgradesTotal.WithLabelValues("ok").Inc()

	cost := s.cost
	s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := s.history.Record(ctx, models.UpgradeRecord{
			PlayerID:   p.ID,
			Cost:       cost,
			LevelAfter: p.Level,
			MoneyAfter: p.Money,
		})
		if err != nil {
			slog.Error("record upgrade history", "player_id", p.ID, "err", err)
		}
	})
	return p, nil
}

func (s *PlayerService) History(ctx context.Context, id int64, limit, offset int) ([]models.UpgradeRecord, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.history.ListByPlayer(ctx, id, limit, offset)
}
