package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairsWithPoints(points ...int) []models.Pair {
	pairs := make([]models.Pair, len(points))
	for i, p := range points {
		pairs[i] = models.Pair{
			ID:             uuid.New(),
			CombinedPoints: p,
			Position:       i + 1,
			DisplayName:    fmt.Sprintf("pair-%d", i+1),
		}
	}
	return pairs
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 7: 8, 8: 8, 9: 16, 16: 16}
	for n, want := range cases {
		assert.Equal(t, want, NextPowerOfTwo(n), "n=%d", n)
	}
}

func TestPhaseForSize(t *testing.T) {
	assert.Equal(t, models.PhaseFinal, PhaseForSize(2))
	assert.Equal(t, models.PhaseSemifinal, PhaseForSize(4))
	assert.Equal(t, models.PhaseQuarterfinal, PhaseForSize(8))
	assert.Equal(t, models.PhaseRoundOf16, PhaseForSize(16))
}

func TestGenerateBracket_PowerOfTwo(t *testing.T) {
	gen := NewSingleEliminationGenerator()
	editionID := uuid.New()

	cases := []struct {
		pairs int
		phase models.Phase
	}{
		{2, models.PhaseFinal},
		{4, models.PhaseSemifinal},
		{8, models.PhaseQuarterfinal},
		{16, models.PhaseRoundOf16},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d pairs", tc.pairs), func(t *testing.T) {
			points := make([]int, tc.pairs)
			for i := range points {
				points[i] = 100 - i
			}
			pairs := pairsWithPoints(points...)

			round, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{EditionID: editionID, Pairs: pairs})
			require.NoError(t, err)

			assert.Equal(t, tc.phase, round.Phase)
			assert.Empty(t, round.Byes)
			require.Len(t, round.Matches, tc.pairs/2)

			for i, m := range round.Matches {
				assert.Equal(t, editionID, m.EditionID)
				assert.Equal(t, tc.phase, m.Phase)
				assert.Equal(t, i+1, m.Position)
				assert.Equal(t, pairs[2*i].ID, *m.Pair1ID)
				assert.Equal(t, pairs[2*i+1].ID, *m.Pair2ID)
				assert.Nil(t, m.WinnerID)
			}
		})
	}
}

func TestGenerateBracket_Byes(t *testing.T) {
	gen := NewSingleEliminationGenerator()

	cases := []struct {
		points  []int
		byes    int
		matches int
		phase   models.Phase
	}{
		{[]int{30, 10, 20}, 1, 1, models.PhaseSemifinal},
		{[]int{50, 10, 40, 20, 30}, 3, 1, models.PhaseQuarterfinal},
		{[]int{60, 10, 50, 20, 40, 30}, 2, 2, models.PhaseQuarterfinal},
		{[]int{70, 10, 60, 20, 50, 30, 40}, 1, 3, models.PhaseQuarterfinal},
		{[]int{90, 10, 80, 20, 70, 30, 60, 40, 50}, 7, 1, models.PhaseRoundOf16},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d pairs", len(tc.points)), func(t *testing.T) {
			pairs := pairsWithPoints(tc.points...)

			round, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{EditionID: uuid.New(), Pairs: pairs})
			require.NoError(t, err)

			assert.Equal(t, tc.phase, round.Phase)
			require.Len(t, round.Byes, tc.byes)
			assert.Len(t, round.Matches, tc.matches)
			assert.Equal(t, NextPowerOfTwo(len(pairs))-len(pairs), len(round.Byes))
			assert.Equal(t, (len(pairs)-tc.byes)/2, len(round.Matches))

			// Byes go to the lowest combined points, weakest first.
			for i, bye := range round.Byes {
				assert.Equal(t, (i+1)*10, bye.CombinedPoints)
			}

			playing := make(map[uuid.UUID]bool)
			for _, m := range round.Matches {
				playing[*m.Pair1ID] = true
				playing[*m.Pair2ID] = true
			}
			for _, bye := range round.Byes {
				assert.False(t, playing[bye.ID], "bye pair %s must not play round one", bye.DisplayName)
			}
			assert.Len(t, playing, len(pairs)-tc.byes)
		})
	}
}

func TestGenerateBracket_Limits(t *testing.T) {
	gen := NewSingleEliminationGenerator()

	_, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{Pairs: pairsWithPoints(10)})
	assert.ErrorIs(t, err, ErrNotEnoughPairs)

	_, err = gen.GenerateBracket(context.Background(), GenerateBracketParams{})
	assert.ErrorIs(t, err, ErrNotEnoughPairs)

	_, err = gen.GenerateBracket(context.Background(), GenerateBracketParams{Pairs: pairsWithPoints(make([]int, 17)...)})
	assert.ErrorIs(t, err, ErrTooManyPairs)
}

func TestPairUp(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	matches, err := PairUp(uuid.New(), models.PhaseSemifinal, []uuid.UUID{a, b, c, d})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, a, *matches[0].Pair1ID)
	assert.Equal(t, b, *matches[0].Pair2ID)
	assert.Equal(t, c, *matches[1].Pair1ID)
	assert.Equal(t, d, *matches[1].Pair2ID)
	assert.Equal(t, 2, matches[1].Position)

	_, err = PairUp(uuid.New(), models.PhaseFinal, []uuid.UUID{a, b, c})
	assert.ErrorIs(t, err, ErrOddEntrants)
}
