package models

import (
	"time"

	"github.com/google/uuid"
)

// Phase представляет стадию плей-офф.
type Phase string

const (
	PhaseRoundOf16    Phase = "round_of_16"
	PhaseQuarterfinal Phase = "quarterfinal"
	PhaseSemifinal    Phase = "semifinal"
	PhaseFinal        Phase = "final"
)

// PhaseSequence lists phases from earliest to latest.
var PhaseSequence = []Phase{PhaseRoundOf16, PhaseQuarterfinal, PhaseSemifinal, PhaseFinal}

// Rank returns the phase's index in PhaseSequence, or -1 for an unknown phase.
func (p Phase) Rank() int {
	for i, phase := range PhaseSequence {
		if phase == p {
			return i
		}
	}
	return -1
}

func (p Phase) IsValid() bool {
	return p.Rank() >= 0
}

// Next returns the phase that follows p. ok is false for the final.
func (p Phase) Next() (next Phase, ok bool) {
	rank := p.Rank()
	if rank < 0 || rank == len(PhaseSequence)-1 {
		return "", false
	}
	return PhaseSequence[rank+1], true
}

// Later returns every phase after p, in order.
func (p Phase) Later() []Phase {
	rank := p.Rank()
	if rank < 0 {
		return nil
	}
	return PhaseSequence[rank+1:]
}

type Match struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	EditionID uuid.UUID  `json:"edition_id" db:"edition_id"`
	Phase     Phase      `json:"phase" db:"phase"`
	Pair1ID   *uuid.UUID `json:"pair1_id,omitempty" db:"pair1_id"`
	Pair2ID   *uuid.UUID `json:"pair2_id,omitempty" db:"pair2_id"`
	WinnerID  *uuid.UUID `json:"winner_id,omitempty" db:"winner_id"`
	Position  int        `json:"position" db:"position"`
	IsBye     bool       `json:"is_bye" db:"is_bye"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

func (m Match) HasBothPairs() bool {
	return m.Pair1ID != nil && m.Pair2ID != nil
}

func (m Match) HasPair(pairID uuid.UUID) bool {
	return (m.Pair1ID != nil && *m.Pair1ID == pairID) || (m.Pair2ID != nil && *m.Pair2ID == pairID)
}

func (m Match) IsDecided() bool {
	return m.WinnerID != nil
}

// Loser returns the pair that lost a decided match.
func (m Match) Loser() *uuid.UUID {
	if m.WinnerID == nil || !m.HasBothPairs() {
		return nil
	}
	if *m.Pair1ID == *m.WinnerID {
		return m.Pair2ID
	}
	return m.Pair1ID
}
