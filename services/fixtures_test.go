package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type publishedEvent struct {
	EditionID uuid.UUID
	Type      string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Publish(editionID uuid.UUID, eventType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{EditionID: editionID, Type: eventType})
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	ctx         context.Context
	store       *repositories.MemoryStore
	notifier    *recordingNotifier
	players     PlayerService
	editions    EditionService
	pairing     PairingService
	bracket     BracketService
	matches     MatchService
	corrections CorrectionService
	settlement  SettlementService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositories.NewMemoryStore()
	notifier := &recordingNotifier{}
	logger := discardLogger()
	return &fixture{
		ctx:         context.Background(),
		store:       store,
		notifier:    notifier,
		players:     NewPlayerService(store, nil, nil, logger),
		editions:    NewEditionService(store, notifier, logger),
		pairing:     NewPairingService(store, notifier, logger),
		bracket:     NewBracketService(store, nil, notifier, logger),
		matches:     NewMatchService(store, notifier, logger),
		corrections: NewCorrectionService(store, notifier, logger),
		settlement:  NewSettlementService(store, nil, notifier, logger),
	}
}

// registerPlayers creates one player per entry with the given point total.
func (f *fixture) registerPlayers(t *testing.T, points ...int) []models.Player {
	t.Helper()
	players := make([]models.Player, 0, len(points))
	for i, p := range points {
		player, err := f.players.Register(f.ctx, RegisterPlayerInput{
			Name:   fmt.Sprintf("Player %02d", i+1),
			Sector: "Logistics",
		})
		require.NoError(t, err)
		if p != 0 {
			require.NoError(t, f.store.Players().AddStats(f.ctx, player.ID, models.StatsDelta{Points: p}))
			player.PointsTotal = p
		}
		players = append(players, *player)
	}
	return players
}

func (f *fixture) createEdition(t *testing.T) *models.Edition {
	t.Helper()
	edition, err := f.editions.Create(f.ctx, CreateEditionInput{
		Name:      "Copa Sinuca Q1",
		Year:      2025,
		StartDate: "2025-01-15",
	})
	require.NoError(t, err)
	return edition
}

func (f *fixture) enroll(t *testing.T, editionID uuid.UUID, players []models.Player) {
	t.Helper()
	for _, p := range players {
		_, err := f.editions.Enroll(f.ctx, editionID, p.ID)
		require.NoError(t, err)
	}
}

// bracketingEdition returns an edition in bracketing with one enrolled player per points entry.
func (f *fixture) bracketingEdition(t *testing.T, points ...int) (*models.Edition, []models.Player) {
	t.Helper()
	edition := f.createEdition(t)
	players := f.registerPlayers(t, points...)
	f.enroll(t, edition.ID, players)
	edition, err := f.editions.OpenBracketing(f.ctx, edition.ID)
	require.NoError(t, err)
	return edition, players
}

// seedPairs builds one manual pair per entry whose combined points equal that entry.
func (f *fixture) seedPairs(t *testing.T, combined ...int) (*models.Edition, []models.Pair) {
	t.Helper()
	points := make([]int, 0, len(combined)*2)
	for _, c := range combined {
		points = append(points, c, 0)
	}
	edition, players := f.bracketingEdition(t, points...)

	pairs := make([]models.Pair, 0, len(combined))
	for i := range combined {
		pair, err := f.pairing.Create(f.ctx, edition.ID, CreatePairInput{
			Player1ID: players[2*i].ID,
			Player2ID: players[2*i+1].ID,
		})
		require.NoError(t, err)
		pairs = append(pairs, *pair)
	}
	return edition, pairs
}

// startedEdition seeds pairs, generates the bracket and starts play.
func (f *fixture) startedEdition(t *testing.T, combined ...int) (*models.Edition, []models.Pair) {
	t.Helper()
	edition, pairs := f.seedPairs(t, combined...)
	_, err := f.bracket.Generate(f.ctx, edition.ID, false)
	require.NoError(t, err)
	edition, err = f.editions.Start(f.ctx, edition.ID)
	require.NoError(t, err)
	return edition, pairs
}

func (f *fixture) phaseMatches(t *testing.T, editionID uuid.UUID, phase models.Phase) []models.Match {
	t.Helper()
	matches, err := f.matches.List(f.ctx, editionID, &phase)
	require.NoError(t, err)
	return matches
}

// playPhase lets pair1 win every undecided match of phase.
func (f *fixture) playPhase(t *testing.T, editionID uuid.UUID, phase models.Phase) *RegisterWinnerResult {
	t.Helper()
	var last *RegisterWinnerResult
	for _, m := range f.phaseMatches(t, editionID, phase) {
		if m.IsDecided() {
			continue
		}
		res, err := f.matches.RegisterWinner(f.ctx, editionID, m.ID, RegisterWinnerInput{WinnerID: *m.Pair1ID})
		require.NoError(t, err)
		last = res
	}
	return last
}

func (f *fixture) player(t *testing.T, id uuid.UUID) *models.Player {
	t.Helper()
	p, err := f.players.GetByID(f.ctx, id)
	require.NoError(t, err)
	return p
}
