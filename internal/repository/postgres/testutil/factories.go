package testutil

import "arcade/internal/models"

// NewTestPlayer returns a player with the demo defaults.
func NewTestPlayer(name string, money int64) models.Player {
	return models.Player{Name: name, Money: money, Level: 1}
}

// NewTestPost returns a post with zero views.
func NewTestPost(title string) models.Post {
	return models.Post{Title: title, Content: "test content"}
}
