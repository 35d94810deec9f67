package models

import (
	"time"

	"github.com/google/uuid"
)

// Pair is a doubles team ("dupla") within one edition.
type Pair struct {
	ID             uuid.UUID `json:"id" db:"id"`
	EditionID      uuid.UUID `json:"edition_id" db:"edition_id"`
	Player1ID      uuid.UUID `json:"player1_id" db:"player1_id"`
	Player2ID      uuid.UUID `json:"player2_id" db:"player2_id"`
	CombinedPoints int       `json:"combined_points" db:"combined_points"`
	Position       int       `json:"position" db:"position"`
	DisplayName    string    `json:"display_name" db:"display_name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func PairDisplayName(player1, player2 string) string {
	return player1 + " & " + player2
}

func (p Pair) HasPlayer(playerID uuid.UUID) bool {
	return p.Player1ID == playerID || p.Player2ID == playerID
}

// PendingBye marks a pair that skips the first round and joins the next one.
type PendingBye struct {
	ID        uuid.UUID `json:"id" db:"id"`
	EditionID uuid.UUID `json:"edition_id" db:"edition_id"`
	PairID    uuid.UUID `json:"pair_id" db:"pair_id"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
