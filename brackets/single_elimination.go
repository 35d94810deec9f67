package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
)

// MaxPairs is the largest bracket the phase ladder can express.
const MaxPairs = 16

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket builds round one. When the pair count is not a power of two
// the weakest pairs by combined points receive byes and the rest play.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*FirstRound, error) {
	n := len(params.Pairs)
	if n < 2 {
		return nil, ErrNotEnoughPairs
	}
	if n > MaxPairs {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyPairs, n)
	}

	size := NextPowerOfTwo(n)
	phase := PhaseForSize(size)
	numByes := size - n

	ordered := make([]models.Pair, n)
	copy(ordered, params.Pairs)

	if numByes == 0 {
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	} else {
		// Слабейшие пары проходят дальше без игры.
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].CombinedPoints < ordered[j].CombinedPoints })
	}

	byes := ordered[:numByes]
	playing := ordered[numByes:]

	entrants := make([]uuid.UUID, len(playing))
	for i, p := range playing {
		entrants[i] = p.ID
	}

	matches, err := PairUp(params.EditionID, phase, entrants)
	if err != nil {
		return nil, err
	}

	return &FirstRound{
		Phase:   phase,
		Matches: matches,
		Byes:    append([]models.Pair(nil), byes...),
	}, nil
}

// PairUp turns an ordered entrant list into consecutive matches (1v2, 3v4, ...).
func PairUp(editionID uuid.UUID, phase models.Phase, entrants []uuid.UUID) ([]models.Match, error) {
	if len(entrants)%2 != 0 {
		return nil, fmt.Errorf("%w: %d entrants for %s", ErrOddEntrants, len(entrants), phase)
	}

	matches := make([]models.Match, 0, len(entrants)/2)
	for i := 0; i < len(entrants); i += 2 {
		pair1, pair2 := entrants[i], entrants[i+1]
		matches = append(matches, models.Match{
			EditionID: editionID,
			Phase:     phase,
			Pair1ID:   &pair1,
			Pair2ID:   &pair2,
			Position:  i/2 + 1,
		})
	}
	return matches, nil
}

func NextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// PhaseForSize names the phase played by a bracket of the given size.
func PhaseForSize(size int) models.Phase {
	switch {
	case size <= 2:
		return models.PhaseFinal
	case size <= 4:
		return models.PhaseSemifinal
	case size <= 8:
		return models.PhaseQuarterfinal
	default:
		return models.PhaseRoundOf16
	}
}
