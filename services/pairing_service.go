package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/google/uuid"
)

type CreatePairInput struct {
	Player1ID uuid.UUID `json:"player1_id" validate:"required"`
	Player2ID uuid.UUID `json:"player2_id" validate:"required"`
}

type SwapPlayersInput struct {
	PairAID uuid.UUID `json:"pair_a_id" validate:"required"`
	SlotA   int       `json:"slot_a" validate:"required"`
	PairBID uuid.UUID `json:"pair_b_id" validate:"required"`
	SlotB   int       `json:"slot_b" validate:"required"`
}

type PairingService interface {
	// AutoPair replaces the edition's pairs with a balanced pairing of the enrolled players.
	AutoPair(ctx context.Context, editionID uuid.UUID, overwrite bool) ([]models.Pair, error)
	Create(ctx context.Context, editionID uuid.UUID, input CreatePairInput) (*models.Pair, error)
	Delete(ctx context.Context, editionID, pairID uuid.UUID) error
	Swap(ctx context.Context, editionID uuid.UUID, input SwapPlayersInput) ([]models.Pair, error)
	Reorder(ctx context.Context, editionID uuid.UUID, pairIDs []uuid.UUID) ([]models.Pair, error)
	List(ctx context.Context, editionID uuid.UUID) ([]models.Pair, error)
}

type pairingService struct {
	store    repositories.Store
	notifier Notifier
	logger   *slog.Logger
}

func NewPairingService(store repositories.Store, notifier Notifier, logger *slog.Logger) PairingService {
	return &pairingService{store: store, notifier: notifierOrNoop(notifier), logger: logger}
}

func (s *pairingService) AutoPair(ctx context.Context, editionID uuid.UUID, overwrite bool) ([]models.Pair, error) {
	var created []models.Pair
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := loadEdition(ctx, tx, editionID, models.StatusBracketing, ErrEditionNotBracketing); err != nil {
			return err
		}

		existing, err := tx.Pairs().ListByEdition(ctx, editionID)
		if err != nil {
			return fmt.Errorf("failed to list pairs: %w", err)
		}
		if len(existing) > 0 {
			if !overwrite {
				return fmt.Errorf("%w (%d pairs exist)", ErrOverwriteRequired, len(existing))
			}
			for _, p := range existing {
				refs, err := tx.Matches().CountReferencingPair(ctx, p.ID)
				if err != nil {
					return fmt.Errorf("failed to check pair references: %w", err)
				}
				if refs > 0 {
					return fmt.Errorf("%w (%s)", ErrPairInUse, p.DisplayName)
				}
			}
			if err := tx.Pairs().DeleteByEdition(ctx, editionID); err != nil {
				return mapRepoError(err)
			}
		}

		players, err := enrolledPlayers(ctx, tx, editionID)
		if err != nil {
			return err
		}
		pairings, err := brackets.BalancedPairs(players)
		if err != nil {
			return mapPairingError(err)
		}

		created = make([]models.Pair, 0, len(pairings))
		for _, pr := range pairings {
			pair := models.Pair{
				EditionID:      editionID,
				Player1ID:      pr.Player1.ID,
				Player2ID:      pr.Player2.ID,
				CombinedPoints: pr.CombinedPoints(),
				Position:       pr.Position,
				DisplayName:    pr.DisplayName(),
			}
			if err := tx.Pairs().Create(ctx, &pair); err != nil {
				return fmt.Errorf("failed to create pair %s: %w", pair.DisplayName, err)
			}
			created = append(created, pair)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "pairs generated",
		slog.String("edition_id", editionID.String()),
		slog.Int("pairs", len(created)))
	s.notifier.Publish(editionID, brackets.EventPairsUpdated, created)
	return created, nil
}

func (s *pairingService) Create(ctx context.Context, editionID uuid.UUID, input CreatePairInput) (*models.Pair, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Player1ID == input.Player2ID {
		return nil, ErrSamePlayer
	}

	var pair models.Pair
	var pairs []models.Pair
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := loadEdition(ctx, tx, editionID, models.StatusBracketing, ErrEditionNotBracketing); err != nil {
			return err
		}

		enrolled, err := enrolledPlayers(ctx, tx, editionID)
		if err != nil {
			return err
		}
		player1, ok1 := findPlayer(enrolled, input.Player1ID)
		player2, ok2 := findPlayer(enrolled, input.Player2ID)
		if !ok1 || !ok2 {
			return ErrPlayerNotEnrolled
		}

		existing, err := tx.Pairs().ListByEdition(ctx, editionID)
		if err != nil {
			return fmt.Errorf("failed to list pairs: %w", err)
		}
		for _, p := range existing {
			if p.HasPlayer(player1.ID) || p.HasPlayer(player2.ID) {
				return fmt.Errorf("%w (%s)", ErrPlayerAlreadyPaired, p.DisplayName)
			}
		}

		pair = models.Pair{
			EditionID:      editionID,
			Player1ID:      player1.ID,
			Player2ID:      player2.ID,
			CombinedPoints: player1.PointsTotal + player2.PointsTotal,
			Position:       len(existing) + 1,
			DisplayName:    models.PairDisplayName(player1.Name, player2.Name),
		}
		if err := tx.Pairs().Create(ctx, &pair); err != nil {
			return fmt.Errorf("failed to create pair: %w", err)
		}

		pairs, err = renumberPairs(ctx, tx, editionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(editionID, brackets.EventPairsUpdated, pairs)
	return &pair, nil
}

func (s *pairingService) Delete(ctx context.Context, editionID, pairID uuid.UUID) error {
	var pairs []models.Pair
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := loadEdition(ctx, tx, editionID, models.StatusBracketing, ErrEditionNotBracketing); err != nil {
			return err
		}
		if _, err := loadPairOfEdition(ctx, tx, editionID, pairID); err != nil {
			return err
		}
		if err := tx.Pairs().Delete(ctx, pairID); err != nil {
			return mapRepoError(err)
		}
		var err error
		pairs, err = renumberPairs(ctx, tx, editionID)
		return err
	})
	if err != nil {
		return err
	}

	s.notifier.Publish(editionID, brackets.EventPairsUpdated, pairs)
	return nil
}

func (s *pairingService) Swap(ctx context.Context, editionID uuid.UUID, input SwapPlayersInput) ([]models.Pair, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.PairAID == input.PairBID {
		return nil, ErrSamePair
	}
	if !validSlot(input.SlotA) || !validSlot(input.SlotB) {
		return nil, ErrInvalidSlot
	}

	var pairs []models.Pair
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := loadEdition(ctx, tx, editionID, models.StatusBracketing, ErrEditionNotBracketing); err != nil {
			return err
		}
		pairA, err := loadPairOfEdition(ctx, tx, editionID, input.PairAID)
		if err != nil {
			return err
		}
		pairB, err := loadPairOfEdition(ctx, tx, editionID, input.PairBID)
		if err != nil {
			return err
		}

		playerA := slotPlayer(pairA, input.SlotA)
		playerB := slotPlayer(pairB, input.SlotB)
		*playerA, *playerB = *playerB, *playerA

		for _, p := range []*models.Pair{pairA, pairB} {
			if err := refreshPairSnapshot(ctx, tx, p); err != nil {
				return err
			}
			if err := tx.Pairs().Update(ctx, p); err != nil {
				return mapRepoError(err)
			}
		}

		pairs, err = tx.Pairs().ListByEdition(ctx, editionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(editionID, brackets.EventPairsUpdated, pairs)
	return pairs, nil
}

func (s *pairingService) Reorder(ctx context.Context, editionID uuid.UUID, pairIDs []uuid.UUID) ([]models.Pair, error) {
	var pairs []models.Pair
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := loadEdition(ctx, tx, editionID, models.StatusBracketing, ErrEditionNotBracketing); err != nil {
			return err
		}
		existing, err := tx.Pairs().ListByEdition(ctx, editionID)
		if err != nil {
			return fmt.Errorf("failed to list pairs: %w", err)
		}
		if len(pairIDs) != len(existing) {
			return fmt.Errorf("%w: got %d ids for %d pairs", ErrInvalidPairOrder, len(pairIDs), len(existing))
		}

		byID := make(map[uuid.UUID]models.Pair, len(existing))
		for _, p := range existing {
			byID[p.ID] = p
		}
		seen := make(map[uuid.UUID]bool, len(pairIDs))
		for _, id := range pairIDs {
			if _, ok := byID[id]; !ok || seen[id] {
				return fmt.Errorf("%w: unexpected or repeated id %s", ErrInvalidPairOrder, id)
			}
			seen[id] = true
		}

		pairs = make([]models.Pair, 0, len(pairIDs))
		for i, id := range pairIDs {
			p := byID[id]
			p.Position = i + 1
			if err := tx.Pairs().Update(ctx, &p); err != nil {
				return mapRepoError(err)
			}
			pairs = append(pairs, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(editionID, brackets.EventPairsUpdated, pairs)
	return pairs, nil
}

func (s *pairingService) List(ctx context.Context, editionID uuid.UUID) ([]models.Pair, error) {
	if _, err := loadEdition(ctx, s.store, editionID, "", nil); err != nil {
		return nil, err
	}
	pairs, err := s.store.Pairs().ListByEdition(ctx, editionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs: %w", err)
	}
	return pairs, nil
}

func mapPairingError(err error) error {
	var odd *brackets.OddPlayersError
	switch {
	case errors.As(err, &odd):
		return fmt.Errorf("%w: %s has no partner", ErrOddPlayerCount, odd.Leftover.Name)
	case errors.Is(err, brackets.ErrNotEnoughPlayers):
		return ErrNotEnoughPlayers
	default:
		return err
	}
}

func loadPairOfEdition(ctx context.Context, store repositories.Store, editionID, pairID uuid.UUID) (*models.Pair, error) {
	pair, err := store.Pairs().GetByID(ctx, pairID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if pair.EditionID != editionID {
		return nil, ErrPairFromOtherEdition
	}
	return pair, nil
}

// renumberPairs keeps positions dense (1..N) in their current order.
func renumberPairs(ctx context.Context, store repositories.Store, editionID uuid.UUID) ([]models.Pair, error) {
	pairs, err := store.Pairs().ListByEdition(ctx, editionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs: %w", err)
	}
	for i := range pairs {
		if pairs[i].Position == i+1 {
			continue
		}
		pairs[i].Position = i + 1
		if err := store.Pairs().Update(ctx, &pairs[i]); err != nil {
			return nil, mapRepoError(err)
		}
	}
	return pairs, nil
}

// refreshPairSnapshot recomputes combined points and the display name from the current players.
func refreshPairSnapshot(ctx context.Context, store repositories.Store, pair *models.Pair) error {
	player1, err := store.Players().GetByID(ctx, pair.Player1ID)
	if err != nil {
		return mapRepoError(err)
	}
	player2, err := store.Players().GetByID(ctx, pair.Player2ID)
	if err != nil {
		return mapRepoError(err)
	}
	pair.CombinedPoints = player1.PointsTotal + player2.PointsTotal
	pair.DisplayName = models.PairDisplayName(player1.Name, player2.Name)
	return nil
}

func findPlayer(players []models.Player, id uuid.UUID) (models.Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

func validSlot(slot int) bool {
	return slot == 1 || slot == 2
}

func slotPlayer(pair *models.Pair, slot int) *uuid.UUID {
	if slot == 1 {
		return &pair.Player1ID
	}
	return &pair.Player2ID
}
