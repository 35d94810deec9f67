package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/cache"
	"github.com/Dosada05/sinuca-cup/metrics"
	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/google/uuid"
)

// Очки за итоговое место в издании.
const (
	ChampionPoints      = 10
	RunnerUpPoints      = 6
	ParticipationPoints = 2
)

type SettlementResult struct {
	Edition        *models.Edition `json:"edition"`
	Champion       *models.Pair    `json:"champion"`
	RunnerUp       *models.Pair    `json:"runner_up"`
	PlayersAwarded int             `json:"players_awarded"`
}

type SettlementService interface {
	// Settle finishes the edition and distributes ranking points in one transaction.
	Settle(ctx context.Context, editionID uuid.UUID) (*SettlementResult, error)
}

type settlementService struct {
	store    repositories.Store
	ranking  cache.RankingCache
	notifier Notifier
	logger   *slog.Logger
}

func NewSettlementService(store repositories.Store, ranking cache.RankingCache, notifier Notifier, logger *slog.Logger) SettlementService {
	if ranking == nil {
		ranking = cache.NewNoopRankingCache()
	}
	return &settlementService{store: store, ranking: ranking, notifier: notifierOrNoop(notifier), logger: logger}
}

func (s *settlementService) Settle(ctx context.Context, editionID uuid.UUID) (*SettlementResult, error) {
	result, err := s.settle(ctx, editionID)
	switch {
	case err == nil:
		metrics.SettlementsTotal.WithLabelValues("settled").Inc()
	case errors.Is(err, ErrAlreadyFinalized):
		metrics.SettlementsTotal.WithLabelValues("already_finalized").Inc()
		return nil, err
	default:
		metrics.SettlementsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	if err := s.ranking.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "ranking cache invalidation failed", slog.Any("error", err))
	}
	s.logger.InfoContext(ctx, "edition settled",
		slog.String("edition_id", editionID.String()),
		slog.String("champion", result.Champion.DisplayName),
		slog.Int("players_awarded", result.PlayersAwarded))
	s.notifier.Publish(editionID, brackets.EventEditionSettled, result)
	return result, nil
}

func (s *settlementService) settle(ctx context.Context, editionID uuid.UUID) (*SettlementResult, error) {
	result := &SettlementResult{}
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		edition, err := loadEdition(ctx, tx, editionID, "", nil)
		if err != nil {
			return err
		}
		if edition.Status == models.StatusFinished {
			return ErrAlreadyFinalized
		}
		if edition.Status != models.StatusInProgress {
			return fmt.Errorf("%w (current status: %s)", ErrEditionNotInProgress, edition.Status)
		}

		final := models.PhaseFinal
		finals, err := tx.Matches().ListByEdition(ctx, editionID, repositories.ListMatchesFilter{Phase: &final})
		if err != nil {
			return fmt.Errorf("failed to load final: %w", err)
		}
		if len(finals) == 0 || !finals[0].IsDecided() || finals[0].Loser() == nil {
			return ErrFinalNotDecided
		}

		champion, err := tx.Pairs().GetByID(ctx, *finals[0].WinnerID)
		if err != nil {
			return mapRepoError(err)
		}
		runnerUp, err := tx.Pairs().GetByID(ctx, *finals[0].Loser())
		if err != nil {
			return mapRepoError(err)
		}

		// Условное обновление статуса защищает от повторного закрытия.
		if err := tx.Editions().UpdateStatus(ctx, editionID, models.StatusInProgress, models.StatusFinished); err != nil {
			if !errors.Is(err, repositories.ErrEditionStatusChanged) {
				return fmt.Errorf("failed to finish edition: %w", err)
			}
			current, getErr := tx.Editions().GetByID(ctx, editionID)
			if getErr == nil && current.Status == models.StatusFinished {
				return ErrAlreadyFinalized
			}
			return ErrConcurrentUpdate
		}

		enrolled, err := tx.Enrollments().ListByEdition(ctx, editionID)
		if err != nil {
			return fmt.Errorf("failed to list enrollments: %w", err)
		}
		order, deltas := settlementDeltas(enrolled, champion, runnerUp)
		for _, playerID := range order {
			if err := tx.Players().AddStats(ctx, playerID, deltas[playerID]); err != nil {
				return fmt.Errorf("failed to award player %s: %w", playerID, mapRepoError(err))
			}
		}

		edition.Status = models.StatusFinished
		result.Edition = edition
		result.Champion = champion
		result.RunnerUp = runnerUp
		result.PlayersAwarded = len(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settlementDeltas assigns every enrolled player its award. Finalists override participation.
func settlementDeltas(enrolled []models.Enrollment, champion, runnerUp *models.Pair) ([]uuid.UUID, map[uuid.UUID]models.StatsDelta) {
	deltas := make(map[uuid.UUID]models.StatsDelta, len(enrolled))
	order := make([]uuid.UUID, 0, len(enrolled))
	set := func(playerID uuid.UUID, delta models.StatsDelta) {
		if _, ok := deltas[playerID]; !ok {
			order = append(order, playerID)
		}
		deltas[playerID] = delta
	}

	for _, e := range enrolled {
		set(e.PlayerID, models.StatsDelta{Points: ParticipationPoints, Appearances: 1})
	}
	for _, id := range []uuid.UUID{runnerUp.Player1ID, runnerUp.Player2ID} {
		set(id, models.StatsDelta{Points: RunnerUpPoints, Appearances: 1})
	}
	for _, id := range []uuid.UUID{champion.Player1ID, champion.Player2ID} {
		set(id, models.StatsDelta{Points: ChampionPoints, Wins: 1, Appearances: 1})
	}
	return order, deltas
}
