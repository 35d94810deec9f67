package models

import (
	"time"

	"github.com/google/uuid"
)

// Player представляет игрока лиги. Игроки не удаляются, только деактивируются.
type Player struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Sector      string    `json:"sector" db:"sector"`
	PhotoURL    *string   `json:"photo_url,omitempty" db:"photo_url"`
	PhotoKey    *string   `json:"-" db:"photo_key"`
	PointsTotal int       `json:"points_total" db:"points_total"`
	Wins        int       `json:"wins" db:"wins"`
	Appearances int       `json:"appearances" db:"appearances"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// StatsDelta is an additive change to a player's cumulative stats.
type StatsDelta struct {
	Points      int `json:"points"`
	Wins        int `json:"wins"`
	Appearances int `json:"appearances"`
}

// LeagueStats aggregates the whole registry for the ranking page.
type LeagueStats struct {
	TotalPlayers       int     `json:"total_players"`
	TotalPoints        int     `json:"total_points"`
	TotalWins          int     `json:"total_wins"`
	AverageAppearances float64 `json:"average_appearances"`
}
