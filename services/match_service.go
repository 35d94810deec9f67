package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/metrics"
	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/google/uuid"
)

type RegisterWinnerInput struct {
	WinnerID uuid.UUID `json:"winner_id" validate:"required"`
}

// RegisterWinnerResult describes the recorded match and what it triggered.
type RegisterWinnerResult struct {
	Match              *models.Match `json:"match"`
	NextRoundCreated   bool          `json:"next_round_created"`
	NextPhase          *models.Phase `json:"next_phase,omitempty"`
	TournamentComplete bool          `json:"tournament_complete"`
}

// AdvanceResult is the outcome of evaluating one phase for completion.
type AdvanceResult struct {
	PhaseComplete      bool          `json:"phase_complete"`
	NextRoundCreated   bool          `json:"next_round_created"`
	NextPhase          *models.Phase `json:"next_phase,omitempty"`
	TournamentComplete bool          `json:"tournament_complete"`
}

type MatchService interface {
	GetByID(ctx context.Context, editionID, matchID uuid.UUID) (*models.Match, error)
	List(ctx context.Context, editionID uuid.UUID, phase *models.Phase) ([]models.Match, error)
	RegisterWinner(ctx context.Context, editionID, matchID uuid.UUID, input RegisterWinnerInput) (*RegisterWinnerResult, error)
	// Advance creates the next round when phase is complete. Repeated calls are no-ops.
	Advance(ctx context.Context, editionID uuid.UUID, phase models.Phase) (*AdvanceResult, error)
}

type matchService struct {
	store    repositories.Store
	notifier Notifier
	logger   *slog.Logger
}

func NewMatchService(store repositories.Store, notifier Notifier, logger *slog.Logger) MatchService {
	return &matchService{store: store, notifier: notifierOrNoop(notifier), logger: logger}
}

func (s *matchService) GetByID(ctx context.Context, editionID, matchID uuid.UUID) (*models.Match, error) {
	return loadMatchOfEdition(ctx, s.store, editionID, matchID)
}

func (s *matchService) List(ctx context.Context, editionID uuid.UUID, phase *models.Phase) ([]models.Match, error) {
	if phase != nil && !phase.IsValid() {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, *phase)
	}
	if _, err := loadEdition(ctx, s.store, editionID, "", nil); err != nil {
		return nil, err
	}
	matches, err := s.store.Matches().ListByEdition(ctx, editionID, repositories.ListMatchesFilter{Phase: phase})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for edition %s: %w", editionID, err)
	}
	return matches, nil
}

func (s *matchService) RegisterWinner(ctx context.Context, editionID, matchID uuid.UUID, input RegisterWinnerInput) (*RegisterWinnerResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var match *models.Match
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := loadEdition(ctx, tx, editionID, models.StatusInProgress, ErrEditionNotInProgress); err != nil {
			return err
		}
		m, err := loadMatchOfEdition(ctx, tx, editionID, matchID)
		if err != nil {
			return err
		}
		if !m.HasBothPairs() {
			return ErrMatchIncomplete
		}
		if m.IsDecided() {
			return ErrMatchAlreadyDecided
		}
		if !m.HasPair(input.WinnerID) {
			return ErrWinnerNotInMatch
		}

		winner := input.WinnerID
		if err := tx.Matches().UpdateWinner(ctx, m.ID, &winner); err != nil {
			return mapRepoError(err)
		}
		m.WinnerID = &winner
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.MatchesDecidedTotal.WithLabelValues(string(match.Phase)).Inc()
	s.logger.InfoContext(ctx, "winner registered",
		slog.String("edition_id", editionID.String()),
		slog.String("match_id", match.ID.String()),
		slog.String("phase", string(match.Phase)))

	// Завершённость фазы проверяется уже после записи победителя.
	advance, err := s.Advance(ctx, editionID, match.Phase)
	if err != nil {
		return nil, err
	}

	result := &RegisterWinnerResult{
		Match:              match,
		NextRoundCreated:   advance.NextRoundCreated,
		NextPhase:          advance.NextPhase,
		TournamentComplete: advance.TournamentComplete,
	}
	s.notifier.Publish(editionID, brackets.EventWinnerRegistered, result)
	return result, nil
}

func (s *matchService) Advance(ctx context.Context, editionID uuid.UUID, phase models.Phase) (*AdvanceResult, error) {
	if !phase.IsValid() {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, phase)
	}

	result := &AdvanceResult{}
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		current, err := tx.Matches().ListByEdition(ctx, editionID, repositories.ListMatchesFilter{Phase: &phase})
		if err != nil {
			return fmt.Errorf("failed to list %s matches: %w", phase, err)
		}
		if len(current) == 0 {
			return nil
		}
		for _, m := range current {
			if !m.IsDecided() {
				return nil
			}
		}
		result.PhaseComplete = true

		next, ok := phase.Next()
		if !ok {
			result.TournamentComplete = true
			return nil
		}
		result.NextPhase = &next

		existing, err := tx.Matches().ListByEdition(ctx, editionID, repositories.ListMatchesFilter{Phase: &next})
		if err != nil {
			return fmt.Errorf("failed to list %s matches: %w", next, err)
		}
		if len(existing) > 0 {
			return nil
		}

		byes, err := tx.Byes().ListByEdition(ctx, editionID)
		if err != nil {
			return fmt.Errorf("failed to list pending byes: %w", err)
		}
		entrants := make([]uuid.UUID, 0, len(byes)+len(current))
		for _, b := range byes {
			entrants = append(entrants, b.PairID)
		}
		for _, m := range current {
			entrants = append(entrants, *m.WinnerID)
		}

		matches, err := brackets.PairUp(editionID, next, entrants)
		if err != nil {
			if errors.Is(err, brackets.ErrOddEntrants) {
				return fmt.Errorf("%w: %d pairs advancing to %s", ErrOddAdvancement, len(entrants), next)
			}
			return err
		}
		for i := range matches {
			if err := tx.Matches().Create(ctx, &matches[i]); err != nil {
				return err
			}
		}
		if err := tx.Byes().DeleteByEdition(ctx, editionID); err != nil {
			return fmt.Errorf("failed to clear pending byes: %w", err)
		}
		result.NextRoundCreated = true
		return nil
	})
	if errors.Is(err, repositories.ErrMatchSlotTaken) {
		// Другой запрос уже создал следующий раунд.
		s.logger.InfoContext(ctx, "next round already created",
			slog.String("edition_id", editionID.String()),
			slog.String("phase", string(phase)))
		result.NextRoundCreated = false
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	if result.NextRoundCreated {
		metrics.RoundsGeneratedTotal.WithLabelValues(string(*result.NextPhase)).Inc()
		s.logger.InfoContext(ctx, "next round created",
			slog.String("edition_id", editionID.String()),
			slog.String("phase", string(*result.NextPhase)))
	}
	if result.TournamentComplete {
		s.logger.InfoContext(ctx, "final decided", slog.String("edition_id", editionID.String()))
	}
	return result, nil
}

func loadMatchOfEdition(ctx context.Context, store repositories.Store, editionID, matchID uuid.UUID) (*models.Match, error) {
	match, err := store.Matches().GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if match.EditionID != editionID {
		return nil, ErrMatchNotFound
	}
	return match, nil
}
