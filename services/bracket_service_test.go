package services

import (
	"fmt"
	"sort"
	"testing"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketService_PowerOfTwoHasNoByes(t *testing.T) {
	cases := []struct {
		pairs int
		phase models.Phase
	}{
		{2, models.PhaseFinal},
		{4, models.PhaseSemifinal},
		{8, models.PhaseQuarterfinal},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d pairs", tc.pairs), func(t *testing.T) {
			f := newFixture(t)
			combined := make([]int, tc.pairs)
			for i := range combined {
				combined[i] = 40 - i
			}
			edition, pairs := f.seedPairs(t, combined...)

			result, err := f.bracket.Generate(f.ctx, edition.ID, false)
			require.NoError(t, err)
			assert.Equal(t, tc.phase, result.Phase)
			assert.Equal(t, tc.pairs/2, result.MatchCount)
			assert.Empty(t, result.ByePairNames)

			matches := f.phaseMatches(t, edition.ID, tc.phase)
			require.Len(t, matches, tc.pairs/2)
			for i, m := range matches {
				assert.Equal(t, i+1, m.Position)
				assert.Equal(t, pairs[2*i].ID, *m.Pair1ID)
				assert.Equal(t, pairs[2*i+1].ID, *m.Pair2ID)
			}
		})
	}
}

func TestBracketService_ByesGoToLowestPairs(t *testing.T) {
	cases := []struct {
		combined []int
		phase    models.Phase
		byes     int
	}{
		{[]int{20, 5, 12}, models.PhaseSemifinal, 1},
		{[]int{14, 3, 9, 22, 6}, models.PhaseQuarterfinal, 3},
		{[]int{8, 30, 2, 17, 11, 4}, models.PhaseQuarterfinal, 2},
		{[]int{7, 1, 13, 25, 19, 10, 4}, models.PhaseQuarterfinal, 1},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d pairs", len(tc.combined)), func(t *testing.T) {
			f := newFixture(t)
			edition, pairs := f.seedPairs(t, tc.combined...)

			result, err := f.bracket.Generate(f.ctx, edition.ID, false)
			require.NoError(t, err)

			n := len(tc.combined)
			assert.Equal(t, tc.phase, result.Phase)
			assert.Len(t, result.ByePairNames, tc.byes)
			assert.Equal(t, brackets.NextPowerOfTwo(n)-n, len(result.ByePairNames))
			assert.Equal(t, (n-tc.byes)/2, result.MatchCount)

			sorted := append([]models.Pair(nil), pairs...)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CombinedPoints < sorted[j].CombinedPoints })
			for i := 0; i < tc.byes; i++ {
				assert.Equal(t, sorted[i].DisplayName, result.ByePairNames[i])
			}

			byes, err := f.store.Byes().ListByEdition(f.ctx, edition.ID)
			require.NoError(t, err)
			require.Len(t, byes, tc.byes)
			for i, b := range byes {
				assert.Equal(t, sorted[i].ID, b.PairID)
				assert.Equal(t, i+1, b.Position)
			}
		})
	}
}

func TestBracketService_RegenerationNeedsOverwrite(t *testing.T) {
	f := newFixture(t)
	edition, _ := f.seedPairs(t, 9, 7, 5, 3, 1)

	_, err := f.bracket.Generate(f.ctx, edition.ID, false)
	require.NoError(t, err)

	_, err = f.bracket.Generate(f.ctx, edition.ID, false)
	assert.ErrorIs(t, err, ErrOverwriteRequired)

	_, err = f.bracket.Generate(f.ctx, edition.ID, true)
	require.NoError(t, err)

	overview, err := f.editions.Overview(f.ctx, edition.ID)
	require.NoError(t, err)
	assert.Len(t, overview.Matches, 1)
	assert.Len(t, overview.PendingByes, 3)
}

func TestBracketService_NotEnoughPairs(t *testing.T) {
	f := newFixture(t)
	edition, players := f.bracketingEdition(t, 4, 3, 2, 1)
	_, err := f.pairing.Create(f.ctx, edition.ID, CreatePairInput{Player1ID: players[0].ID, Player2ID: players[1].ID})
	require.NoError(t, err)

	_, err = f.bracket.Generate(f.ctx, edition.ID, false)
	assert.ErrorIs(t, err, ErrNotEnoughPairs)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBracketService_FrozenOnceStarted(t *testing.T) {
	f := newFixture(t)
	edition, _ := f.startedEdition(t, 4, 3)

	_, err := f.bracket.Generate(f.ctx, edition.ID, true)
	assert.ErrorIs(t, err, ErrEditionNotBracketing)
}
