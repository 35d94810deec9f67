package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	invalidations int
}

func (c *countingCache) GetRanking(ctx context.Context) ([]models.Player, bool, error) {
	return nil, false, nil
}

func (c *countingCache) SetRanking(ctx context.Context, players []models.Player) error { return nil }

func (c *countingCache) Invalidate(ctx context.Context) error {
	c.invalidations++
	return nil
}

func (c *countingCache) Close() error { return nil }

func TestSettlementService_DistributesPoints(t *testing.T) {
	f := newFixture(t)
	rankingCache := &countingCache{}
	f.settlement = NewSettlementService(f.store, rankingCache, f.notifier, discardLogger())

	edition, pairs := f.startedEdition(t, 10, 8, 6, 4)
	f.playPhase(t, edition.ID, models.PhaseSemifinal)
	f.playPhase(t, edition.ID, models.PhaseFinal)

	before := map[uuid.UUID]models.Player{}
	for _, p := range f.playersOf(t, edition.ID) {
		before[p.ID] = p
	}

	result, err := f.settlement.Settle(f.ctx, edition.ID)
	require.NoError(t, err)
	assert.Equal(t, pairs[0].ID, result.Champion.ID)
	assert.Equal(t, pairs[2].ID, result.RunnerUp.ID)
	assert.Equal(t, 8, result.PlayersAwarded)
	assert.Equal(t, 1, rankingCache.invalidations)

	expect := func(pair models.Pair, points, wins int) {
		for _, id := range []uuid.UUID{pair.Player1ID, pair.Player2ID} {
			after := f.player(t, id)
			assert.Equal(t, before[id].PointsTotal+points, after.PointsTotal)
			assert.Equal(t, before[id].Wins+wins, after.Wins)
			assert.Equal(t, before[id].Appearances+1, after.Appearances)
		}
	}
	expect(pairs[0], ChampionPoints, 1)
	expect(pairs[2], RunnerUpPoints, 0)
	expect(pairs[1], ParticipationPoints, 0)
	expect(pairs[3], ParticipationPoints, 0)

	stored, err := f.editions.GetByID(f.ctx, edition.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, stored.Status)
}

func TestSettlementService_SecondCallIsRejected(t *testing.T) {
	f := newFixture(t)
	edition, _ := f.startedEdition(t, 10, 8, 6, 4)
	f.playPhase(t, edition.ID, models.PhaseSemifinal)
	f.playPhase(t, edition.ID, models.PhaseFinal)

	_, err := f.settlement.Settle(f.ctx, edition.ID)
	require.NoError(t, err)
	afterFirst, err := f.players.List(f.ctx, false)
	require.NoError(t, err)

	_, err = f.settlement.Settle(f.ctx, edition.ID)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	assert.ErrorIs(t, err, ErrConflict)

	afterSecond, err := f.players.List(f.ctx, false)
	require.NoError(t, err)
	assert.Equal(t, afterFirst, afterSecond)
}

func TestSettlementService_Preconditions(t *testing.T) {
	t.Run("final undecided", func(t *testing.T) {
		f := newFixture(t)
		edition, _ := f.startedEdition(t, 10, 8, 6, 4)
		f.playPhase(t, edition.ID, models.PhaseSemifinal)

		_, err := f.settlement.Settle(f.ctx, edition.ID)
		assert.ErrorIs(t, err, ErrFinalNotDecided)
	})

	t.Run("not started", func(t *testing.T) {
		f := newFixture(t)
		edition, _ := f.seedPairs(t, 4, 3)

		_, err := f.settlement.Settle(f.ctx, edition.ID)
		assert.ErrorIs(t, err, ErrEditionNotInProgress)
	})

	t.Run("unknown edition", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.settlement.Settle(f.ctx, uuid.New())
		assert.ErrorIs(t, err, ErrEditionNotFound)
	})
}

func TestSettlementDeltas_FinalistsOverrideParticipation(t *testing.T) {
	p := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	enrolled := make([]models.Enrollment, len(p))
	for i, id := range p {
		enrolled[i] = models.Enrollment{PlayerID: id}
	}
	champion := &models.Pair{Player1ID: p[0], Player2ID: p[3]}
	runnerUp := &models.Pair{Player1ID: p[1], Player2ID: p[2]}

	order, deltas := settlementDeltas(enrolled, champion, runnerUp)
	assert.Equal(t, p, order)
	assert.Equal(t, models.StatsDelta{Points: 10, Wins: 1, Appearances: 1}, deltas[p[0]])
	assert.Equal(t, models.StatsDelta{Points: 6, Appearances: 1}, deltas[p[1]])
	assert.Equal(t, models.StatsDelta{Points: 2, Appearances: 1}, deltas[p[4]])
}
