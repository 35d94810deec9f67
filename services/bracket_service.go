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

// GenerateBracketResult summarizes the first round that was just created.
type GenerateBracketResult struct {
	Phase        models.Phase `json:"phase"`
	ByePairNames []string     `json:"bye_pair_names"`
	MatchCount   int          `json:"match_count"`
}

type BracketService interface {
	Generate(ctx context.Context, editionID uuid.UUID, overwrite bool) (*GenerateBracketResult, error)
}

type bracketService struct {
	store     repositories.Store
	generator brackets.BracketGenerator
	notifier  Notifier
	logger    *slog.Logger
}

func NewBracketService(store repositories.Store, generator brackets.BracketGenerator, notifier Notifier, logger *slog.Logger) BracketService {
	if generator == nil {
		generator = brackets.NewSingleEliminationGenerator()
	}
	return &bracketService{store: store, generator: generator, notifier: notifierOrNoop(notifier), logger: logger}
}

func (s *bracketService) Generate(ctx context.Context, editionID uuid.UUID, overwrite bool) (*GenerateBracketResult, error) {
	result := &GenerateBracketResult{ByePairNames: []string{}}

	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := loadEdition(ctx, tx, editionID, models.StatusBracketing, ErrEditionNotBracketing); err != nil {
			return err
		}

		existing, err := tx.Matches().ListByEdition(ctx, editionID, repositories.ListMatchesFilter{})
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		if len(existing) > 0 && !overwrite {
			return fmt.Errorf("%w (bracket has %d matches)", ErrOverwriteRequired, len(existing))
		}
		// Старая сетка и ожидающие пары удаляются всегда.
		if err := tx.Matches().DeleteByEdition(ctx, editionID); err != nil {
			return fmt.Errorf("failed to clear matches: %w", err)
		}
		if err := tx.Byes().DeleteByEdition(ctx, editionID); err != nil {
			return fmt.Errorf("failed to clear pending byes: %w", err)
		}

		pairs, err := tx.Pairs().ListByEdition(ctx, editionID)
		if err != nil {
			return fmt.Errorf("failed to list pairs: %w", err)
		}

		round, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{EditionID: editionID, Pairs: pairs})
		if err != nil {
			return mapGeneratorError(err, len(pairs))
		}

		for i := range round.Matches {
			if err := tx.Matches().Create(ctx, &round.Matches[i]); err != nil {
				return fmt.Errorf("failed to create match %d of %s: %w", round.Matches[i].Position, round.Phase, err)
			}
		}
		for i, p := range round.Byes {
			bye := models.PendingBye{EditionID: editionID, PairID: p.ID, Position: i + 1}
			if err := tx.Byes().Create(ctx, &bye); err != nil {
				return fmt.Errorf("failed to create bye for %s: %w", p.DisplayName, err)
			}
			result.ByePairNames = append(result.ByePairNames, p.DisplayName)
		}

		result.Phase = round.Phase
		result.MatchCount = len(round.Matches)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BracketsGeneratedTotal.WithLabelValues(string(result.Phase)).Inc()
	s.logger.InfoContext(ctx, "bracket generated",
		slog.String("edition_id", editionID.String()),
		slog.String("phase", string(result.Phase)),
		slog.Int("matches", result.MatchCount),
		slog.Int("byes", len(result.ByePairNames)))
	s.notifier.Publish(editionID, brackets.EventBracketGenerated, result)
	return result, nil
}

func mapGeneratorError(err error, pairCount int) error {
	switch {
	case errors.Is(err, brackets.ErrNotEnoughPairs):
		return fmt.Errorf("%w (got %d)", ErrNotEnoughPairs, pairCount)
	case errors.Is(err, brackets.ErrTooManyPairs):
		return fmt.Errorf("%w (got %d)", ErrTooManyPairs, pairCount)
	case errors.Is(err, brackets.ErrOddEntrants):
		return fmt.Errorf("%w: %v", ErrOddAdvancement, err)
	default:
		return fmt.Errorf("failed to generate bracket: %w", err)
	}
}
