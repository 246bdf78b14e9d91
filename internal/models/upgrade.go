package models

import "time"

// UpgradeRecord is the audit trail of a successful level upgrade.
// money_after and level_after are the row values the upgrade produced,
// so the history doubles as a consistency check on the balance.
type UpgradeRecord struct {
	ID         string    `json:"id"`
	PlayerID   int64     `json:"player_id"`
	Cost       int64     `json:"cost"`
	LevelAfter int       `json:"level_after"`
	MoneyAfter int64     `json:"money_after"`
	CreatedAt  time.Time `json:"created_at"`
}
