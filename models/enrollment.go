package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	EditionID uuid.UUID `json:"edition_id" db:"edition_id"`
	PlayerID  uuid.UUID `json:"player_id" db:"player_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
