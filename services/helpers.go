package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tags and wraps failures into ErrInvalidInput.
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: rule '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: rule '%s'", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

var allowedTransitions = map[models.EditionStatus]models.EditionStatus{
	models.StatusRegistrationOpen: models.StatusBracketing,
	models.StatusBracketing:       models.StatusInProgress,
	models.StatusInProgress:       models.StatusFinished,
}

func isValidStatusTransition(from, to models.EditionStatus) bool {
	next, ok := allowedTransitions[from]
	return ok && next == to
}

// Notifier pushes edition events to live viewers.
type Notifier interface {
	Publish(editionID uuid.UUID, eventType string, payload interface{})
}

type noopNotifier struct{}

func (noopNotifier) Publish(uuid.UUID, string, interface{}) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// mapRepoError translates repository sentinels into service errors.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrEditionNotFound):
		return ErrEditionNotFound
	case errors.Is(err, repositories.ErrPairNotFound):
		return ErrPairNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrEnrollmentNotFound):
		return ErrEnrollmentNotFound
	case errors.Is(err, repositories.ErrEnrollmentConflict):
		return ErrAlreadyEnrolled
	case errors.Is(err, repositories.ErrEditionNumberConflict):
		return ErrEditionNumberTaken
	case errors.Is(err, repositories.ErrPairInUse):
		return ErrPairInUse
	case errors.Is(err, repositories.ErrEditionStatusChanged):
		return ErrConcurrentUpdate
	default:
		return err
	}
}

// loadEdition fetches an edition and optionally checks its status.
func loadEdition(ctx context.Context, store repositories.Store, id uuid.UUID, wantStatus models.EditionStatus, statusErr error) (*models.Edition, error) {
	edition, err := store.Editions().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if wantStatus != "" && edition.Status != wantStatus {
		return nil, fmt.Errorf("%w (current status: %s)", statusErr, edition.Status)
	}
	return edition, nil
}

// enrolledPlayers returns the edition's players in enrollment order.
func enrolledPlayers(ctx context.Context, store repositories.Store, editionID uuid.UUID) ([]models.Player, error) {
	enrollments, err := store.Enrollments().ListByEdition(ctx, editionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	ids := make([]uuid.UUID, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.PlayerID
	}

	players, err := store.Players().List(ctx, repositories.ListPlayersFilter{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to load enrolled players: %w", err)
	}
	byID := make(map[uuid.UUID]models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	ordered := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
