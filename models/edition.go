package models

import (
	"time"

	"github.com/google/uuid"
)

// EditionStatus представляет статусы издания турнира, соответствующие ENUM в БД.
type EditionStatus string

const (
	StatusRegistrationOpen EditionStatus = "registration_open"
	StatusBracketing       EditionStatus = "bracketing"
	StatusInProgress       EditionStatus = "in_progress"
	StatusFinished         EditionStatus = "finished"
)

func (s EditionStatus) IsValid() bool {
	switch s {
	case StatusRegistrationOpen, StatusBracketing, StatusInProgress, StatusFinished:
		return true
	}
	return false
}

// Edition is one quarterly tournament.
type Edition struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Number    int           `json:"number" db:"number"`
	Year      int           `json:"year" db:"year"`
	StartDate time.Time     `json:"start_date" db:"start_date"`
	Status    EditionStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// EditionOverview bundles everything a bracket page renders.
type EditionOverview struct {
	Edition     *Edition     `json:"edition"`
	Players     []Player     `json:"players"`
	Pairs       []Pair       `json:"pairs"`
	Matches     []Match      `json:"matches"`
	PendingByes []PendingBye `json:"pending_byes"`
}
