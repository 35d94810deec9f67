package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploaded []string
	deleted  []string
	failPut  bool
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.failPut {
		return nil, errors.New("bucket unavailable")
	}
	if _, err := io.ReadAll(reader); err != nil {
		return nil, err
	}
	u.uploaded = append(u.uploaded, key)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type memoryRankingCache struct {
	players []models.Player
	cached  bool
	gets    int
}

func (c *memoryRankingCache) GetRanking(ctx context.Context) ([]models.Player, bool, error) {
	c.gets++
	return c.players, c.cached, nil
}

func (c *memoryRankingCache) SetRanking(ctx context.Context, players []models.Player) error {
	c.players, c.cached = players, true
	return nil
}

func (c *memoryRankingCache) Invalidate(ctx context.Context) error {
	c.players, c.cached = nil, false
	return nil
}

func (c *memoryRankingCache) Close() error { return nil }

func TestPlayerService_RegisterAndUpdate(t *testing.T) {
	f := newFixture(t)

	player, err := f.players.Register(f.ctx, RegisterPlayerInput{Name: "  Maria Souza ", Sector: "Financeiro"})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", player.Name)
	assert.True(t, player.Active)
	assert.Zero(t, player.PointsTotal)

	_, err = f.players.Register(f.ctx, RegisterPlayerInput{Name: "Al", Sector: "TI"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	sector := "Comercial"
	updated, err := f.players.Update(f.ctx, player.ID, UpdatePlayerInput{Sector: &sector})
	require.NoError(t, err)
	assert.Equal(t, "Comercial", updated.Sector)
	assert.Equal(t, "Maria Souza", updated.Name)

	_, err = f.players.Update(f.ctx, uuid.New(), UpdatePlayerInput{Sector: &sector})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestPlayerService_ListAndDeactivate(t *testing.T) {
	f := newFixture(t)
	players := f.registerPlayers(t, 3, 9, 5)

	_, err := f.players.Deactivate(f.ctx, players[1].ID)
	require.NoError(t, err)

	all, err := f.players.List(f.ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := f.players.List(f.ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, players[2].ID, active[0].ID)
}

func TestPlayerService_RankingPodiumAndStats(t *testing.T) {
	f := newFixture(t)
	rankingCache := &memoryRankingCache{}
	f.players = NewPlayerService(f.store, nil, rankingCache, discardLogger())

	players := f.registerPlayers(t, 12, 20, 12, 4, 7)
	require.NoError(t, f.store.Players().AddStats(f.ctx, players[2].ID, models.StatsDelta{Wins: 1, Appearances: 2}))
	require.NoError(t, f.store.Players().AddStats(f.ctx, players[0].ID, models.StatsDelta{Appearances: 1}))
	require.NoError(t, rankingCache.Invalidate(f.ctx))

	ranking, err := f.players.Ranking(f.ctx)
	require.NoError(t, err)
	require.Len(t, ranking, 5)
	assert.Equal(t, players[1].ID, ranking[0].ID)
	// При равных очках выше тот, у кого больше побед.
	assert.Equal(t, players[2].ID, ranking[1].ID)
	assert.Equal(t, players[0].ID, ranking[2].ID)
	assert.True(t, rankingCache.cached)

	podium, err := f.players.Podium(f.ctx)
	require.NoError(t, err)
	assert.Len(t, podium, 3)

	stats, err := f.players.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalPlayers)
	assert.Equal(t, 55, stats.TotalPoints)
	assert.Equal(t, 1, stats.TotalWins)
	assert.Equal(t, 0.6, stats.AverageAppearances)
}

func TestPlayerService_RankingCacheInvalidatedOnSettlement(t *testing.T) {
	f := newFixture(t)
	rankingCache := &memoryRankingCache{}
	f.players = NewPlayerService(f.store, nil, rankingCache, discardLogger())
	f.settlement = NewSettlementService(f.store, rankingCache, f.notifier, discardLogger())

	edition, _ := f.startedEdition(t, 4, 3)
	_, err := f.players.Ranking(f.ctx)
	require.NoError(t, err)
	require.True(t, rankingCache.cached)

	f.playPhase(t, edition.ID, models.PhaseFinal)
	_, err = f.settlement.Settle(f.ctx, edition.ID)
	require.NoError(t, err)
	assert.False(t, rankingCache.cached)

	ranking, err := f.players.Ranking(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, ranking[0].PointsTotal)
}

func TestPlayerService_UploadPhoto(t *testing.T) {
	f := newFixture(t)
	uploader := &fakeUploader{}
	f.players = NewPlayerService(f.store, uploader, nil, discardLogger())
	player := f.registerPlayers(t, 0)[0]

	updated, err := f.players.UploadPhoto(f.ctx, player.ID, strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	require.NotNil(t, updated.PhotoURL)
	require.Len(t, uploader.uploaded, 1)
	assert.True(t, strings.HasSuffix(uploader.uploaded[0], ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+uploader.uploaded[0], *updated.PhotoURL)

	_, err = f.players.UploadPhoto(f.ctx, player.ID, strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, []string{uploader.uploaded[0]}, uploader.deleted)

	_, err = f.players.UploadPhoto(f.ctx, player.ID, strings.NewReader("%PDF"), "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidPhotoType)
}

func TestPlayerService_UploadPhotoWithoutStorage(t *testing.T) {
	f := newFixture(t)
	player := f.registerPlayers(t, 0)[0]

	_, err := f.players.UploadPhoto(f.ctx, player.ID, strings.NewReader("x"), "image/png")
	assert.ErrorIs(t, err, ErrPhotoStorageDisabled)
}
