package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
)

var (
	ErrNotEnoughPairs = errors.New("at least 2 pairs are required to generate a bracket")
	ErrTooManyPairs   = errors.New("bracket supports at most 16 pairs")
	ErrOddEntrants    = errors.New("odd number of entrants cannot be paired into matches")
)

type GenerateBracketParams struct {
	EditionID uuid.UUID
	// Pairs ordered by position.
	Pairs []models.Pair
}

// FirstRound is the opening phase of a bracket plus the pairs that skip it.
type FirstRound struct {
	Phase   models.Phase
	Matches []models.Match
	Byes    []models.Pair
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*FirstRound, error)

	GetName() string
}
