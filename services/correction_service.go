package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/metrics"
	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/google/uuid"
)

type CorrectResultInput struct {
	NewWinnerID uuid.UUID `json:"new_winner_id" validate:"required"`
}

// CorrectionImpact lists what a winner change would touch in later phases.
type CorrectionImpact struct {
	HasImpact       bool           `json:"has_impact"`
	Phases          []models.Phase `json:"phases"`
	AffectedMatches int            `json:"affected_matches"`
}

type CorrectionResult struct {
	Match         *models.Match  `json:"match"`
	ClearedPhases []models.Phase `json:"cleared_phases"`
}

type CorrectionService interface {
	AnalyzeImpact(ctx context.Context, editionID, matchID uuid.UUID, input CorrectResultInput) (*CorrectionImpact, error)
	// Apply sets the new winner and moves it into every later slot held by the old one,
	// clearing the winners of those matches.
	Apply(ctx context.Context, editionID, matchID uuid.UUID, input CorrectResultInput) (*CorrectionResult, error)
}

type correctionService struct {
	store    repositories.Store
	notifier Notifier
	logger   *slog.Logger
}

func NewCorrectionService(store repositories.Store, notifier Notifier, logger *slog.Logger) CorrectionService {
	return &correctionService{store: store, notifier: notifierOrNoop(notifier), logger: logger}
}

func (s *correctionService) AnalyzeImpact(ctx context.Context, editionID, matchID uuid.UUID, input CorrectResultInput) (*CorrectionImpact, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	match, err := s.loadCorrectable(ctx, s.store, editionID, matchID, input.NewWinnerID)
	if err != nil {
		return nil, err
	}
	later, err := laterMatches(ctx, s.store, match)
	if err != nil {
		return nil, err
	}

	impact := &CorrectionImpact{Phases: []models.Phase{}}
	oldWinner := *match.WinnerID
	for _, m := range later {
		if m.HasPair(oldWinner) || sameUUID(m.WinnerID, oldWinner) {
			impact.AffectedMatches++
			impact.Phases = appendPhase(impact.Phases, m.Phase)
		}
	}
	impact.HasImpact = impact.AffectedMatches > 0
	return impact, nil
}

func (s *correctionService) Apply(ctx context.Context, editionID, matchID uuid.UUID, input CorrectResultInput) (*CorrectionResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	result := &CorrectionResult{ClearedPhases: []models.Phase{}}
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		match, err := s.loadCorrectable(ctx, tx, editionID, matchID, input.NewWinnerID)
		if err != nil {
			return err
		}
		oldWinner := *match.WinnerID
		newWinner := input.NewWinnerID

		if err := tx.Matches().UpdateWinner(ctx, match.ID, &newWinner); err != nil {
			return mapRepoError(err)
		}
		match.WinnerID = &newWinner
		result.Match = match

		later, err := laterMatches(ctx, tx, match)
		if err != nil {
			return err
		}
		for i := range later {
			m := &later[i]
			switch {
			case sameUUID(m.Pair1ID, oldWinner):
				m.Pair1ID = &newWinner
			case sameUUID(m.Pair2ID, oldWinner):
				m.Pair2ID = &newWinner
			default:
				continue
			}
			m.WinnerID = nil
			if err := tx.Matches().UpdateSlots(ctx, m); err != nil {
				return mapRepoError(err)
			}
			result.ClearedPhases = appendPhase(result.ClearedPhases, m.Phase)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ResultCorrectionsTotal.Inc()
	s.logger.InfoContext(ctx, "result corrected",
		slog.String("edition_id", editionID.String()),
		slog.String("match_id", matchID.String()),
		slog.Int("cleared_phases", len(result.ClearedPhases)))
	s.notifier.Publish(editionID, brackets.EventResultCorrected, result)
	return result, nil
}

func (s *correctionService) loadCorrectable(ctx context.Context, store repositories.Store, editionID, matchID, newWinner uuid.UUID) (*models.Match, error) {
	if _, err := loadEdition(ctx, store, editionID, models.StatusInProgress, ErrEditionNotInProgress); err != nil {
		return nil, err
	}
	match, err := loadMatchOfEdition(ctx, store, editionID, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsDecided() {
		return nil, ErrMatchNotDecided
	}
	if !match.HasPair(newWinner) {
		return nil, ErrWinnerNotInMatch
	}
	if *match.WinnerID == newWinner {
		return nil, ErrSameWinner
	}
	return match, nil
}

// laterMatches returns the matches of every phase after match's phase.
func laterMatches(ctx context.Context, store repositories.Store, match *models.Match) ([]models.Match, error) {
	var later []models.Match
	for _, phase := range match.Phase.Later() {
		p := phase
		matches, err := store.Matches().ListByEdition(ctx, match.EditionID, repositories.ListMatchesFilter{Phase: &p})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s matches: %w", p, err)
		}
		later = append(later, matches...)
	}
	return later, nil
}

func appendPhase(phases []models.Phase, phase models.Phase) []models.Phase {
	for _, p := range phases {
		if p == phase {
			return phases
		}
	}
	return append(phases, phase)
}

func sameUUID(id *uuid.UUID, other uuid.UUID) bool {
	return id != nil && *id == other
}
