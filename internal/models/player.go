package models

import (
	"errors"
	"strings"
	"time"
)

type Player struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Money     int64     `json:"money"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name required")
	}
	if p.Money < 0 {
		return errors.New("money cannot be negative")
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return nil
}
