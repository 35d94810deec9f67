package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/sinuca-cup/brackets"
	"github.com/Dosada05/sinuca-cup/metrics"
	"github.com/Dosada05/sinuca-cup/models"
	"github.com/Dosada05/sinuca-cup/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const startDateLayout = "2006-01-02"

type CreateEditionInput struct {
	Name      string `json:"name" validate:"required,min=5,max=255"`
	Number    *int   `json:"number,omitempty" validate:"omitempty,gt=0"`
	Year      int    `json:"year" validate:"required,gte=2020,lte=2100"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type ListEditionsInput struct {
	Status *models.EditionStatus
	Year   *int
}

type EditionService interface {
	Create(ctx context.Context, input CreateEditionInput) (*models.Edition, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Edition, error)
	List(ctx context.Context, input ListEditionsInput) ([]models.Edition, error)
	NextNumber(ctx context.Context, year int) (int, error)
	Overview(ctx context.Context, id uuid.UUID) (*models.EditionOverview, error)

	// ChangeStatus moves the edition one step forward. Finishing goes through settlement.
	ChangeStatus(ctx context.Context, id uuid.UUID, to models.EditionStatus) (*models.Edition, error)
	OpenBracketing(ctx context.Context, id uuid.UUID) (*models.Edition, error)
	Start(ctx context.Context, id uuid.UUID) (*models.Edition, error)

	Enroll(ctx context.Context, editionID, playerID uuid.UUID) (*models.Enrollment, error)
	Unenroll(ctx context.Context, editionID, playerID uuid.UUID) error
	ListEnrolled(ctx context.Context, editionID uuid.UUID) ([]models.Player, error)
	AvailablePlayers(ctx context.Context, editionID uuid.UUID) ([]models.Player, error)
}

type editionService struct {
	store    repositories.Store
	notifier Notifier
	logger   *slog.Logger
}

func NewEditionService(store repositories.Store, notifier Notifier, logger *slog.Logger) EditionService {
	return &editionService{store: store, notifier: notifierOrNoop(notifier), logger: logger}
}

func (s *editionService) Create(ctx context.Context, input CreateEditionInput) (*models.Edition, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	startDate, err := time.Parse(startDateLayout, input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", ErrInvalidInput, err)
	}

	edition := &models.Edition{
		Name:      input.Name,
		Year:      input.Year,
		StartDate: startDate,
		Status:    models.StatusRegistrationOpen,
	}

	err = s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if input.Number != nil {
			edition.Number = *input.Number
		} else {
			maxNumber, err := tx.Editions().MaxNumber(ctx, input.Year)
			if err != nil {
				return fmt.Errorf("failed to compute next edition number: %w", err)
			}
			edition.Number = maxNumber + 1
		}
		return tx.Editions().Create(ctx, edition)
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.logger.InfoContext(ctx, "edition created",
		slog.String("edition_id", edition.ID.String()),
		slog.Int("year", edition.Year),
		slog.Int("number", edition.Number))
	return edition, nil
}

func (s *editionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Edition, error) {
	return loadEdition(ctx, s.store, id, "", nil)
}

func (s *editionService) List(ctx context.Context, input ListEditionsInput) ([]models.Edition, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)
	}
	editions, err := s.store.Editions().List(ctx, repositories.ListEditionsFilter{Status: input.Status, Year: input.Year})
	if err != nil {
		return nil, fmt.Errorf("failed to list editions: %w", err)
	}
	return editions, nil
}

func (s *editionService) NextNumber(ctx context.Context, year int) (int, error) {
	maxNumber, err := s.store.Editions().MaxNumber(ctx, year)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next edition number: %w", err)
	}
	return maxNumber + 1, nil
}

func (s *editionService) Overview(ctx context.Context, id uuid.UUID) (*models.EditionOverview, error) {
	edition, err := loadEdition(ctx, s.store, id, "", nil)
	if err != nil {
		return nil, err
	}

	overview := &models.EditionOverview{Edition: edition}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		players, err := enrolledPlayers(gctx, s.store, id)
		overview.Players = players
		return err
	})
	g.Go(func() error {
		pairs, err := s.store.Pairs().ListByEdition(gctx, id)
		overview.Pairs = pairs
		return err
	})
	g.Go(func() error {
		matches, err := s.store.Matches().ListByEdition(gctx, id, repositories.ListMatchesFilter{})
		overview.Matches = matches
		return err
	})
	g.Go(func() error {
		byes, err := s.store.Byes().ListByEdition(gctx, id)
		overview.PendingByes = byes
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load overview for edition %s: %w", id, err)
	}
	return overview, nil
}

func (s *editionService) ChangeStatus(ctx context.Context, id uuid.UUID, to models.EditionStatus) (*models.Edition, error) {
	switch to {
	case models.StatusBracketing:
		return s.OpenBracketing(ctx, id)
	case models.StatusInProgress:
		return s.Start(ctx, id)
	case models.StatusFinished:
		return nil, fmt.Errorf("%w: an edition is finished by settling it", ErrInvalidStatusTransition)
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}
}

func (s *editionService) OpenBracketing(ctx context.Context, id uuid.UUID) (*models.Edition, error) {
	return s.transition(ctx, id, models.StatusBracketing, func(tx repositories.Store) error {
		count, err := tx.Enrollments().Count(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count enrollments: %w", err)
		}
		if count < brackets.MinPlayers {
			return fmt.Errorf("%w (enrolled: %d)", ErrNotEnoughEnrollments, count)
		}
		return nil
	})
}

func (s *editionService) Start(ctx context.Context, id uuid.UUID) (*models.Edition, error) {
	return s.transition(ctx, id, models.StatusInProgress, func(tx repositories.Store) error {
		matches, err := tx.Matches().ListByEdition(ctx, id, repositories.ListMatchesFilter{})
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		if len(matches) == 0 {
			return ErrNoMatches
		}
		return nil
	})
}

// transition checks the edge and the guard, then flips the status conditionally.
func (s *editionService) transition(ctx context.Context, id uuid.UUID, to models.EditionStatus, guard func(tx repositories.Store) error) (*models.Edition, error) {
	var edition *models.Edition
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		current, err := loadEdition(ctx, tx, id, "", nil)
		if err != nil {
			return err
		}
		if !isValidStatusTransition(current.Status, to) {
			if current.Status == models.StatusFinished {
				return ErrAlreadyFinalized
			}
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, to)
		}
		if err := guard(tx); err != nil {
			return err
		}
		if err := tx.Editions().UpdateStatus(ctx, id, current.Status, to); err != nil {
			return mapRepoError(err)
		}
		edition, err = loadEdition(ctx, tx, id, "", nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.EditionTransitionsTotal.WithLabelValues(string(to)).Inc()
	s.notifier.Publish(id, brackets.EventEditionStatusChanged, map[string]interface{}{"status": edition.Status})
	s.logger.InfoContext(ctx, "edition status changed",
		slog.String("edition_id", id.String()),
		slog.String("status", string(edition.Status)))
	return edition, nil
}

func (s *editionService) Enroll(ctx context.Context, editionID, playerID uuid.UUID) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{EditionID: editionID, PlayerID: playerID}
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if err := checkEnrollmentOpen(ctx, tx, editionID); err != nil {
			return err
		}
		player, err := tx.Players().GetByID(ctx, playerID)
		if err != nil {
			return mapRepoError(err)
		}
		if !player.Active {
			return fmt.Errorf("%w: %s", ErrPlayerInactive, player.Name)
		}
		return mapRepoError(tx.Enrollments().Create(ctx, enrollment))
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player enrolled",
		slog.String("edition_id", editionID.String()),
		slog.String("player_id", playerID.String()))
	return enrollment, nil
}

func (s *editionService) Unenroll(ctx context.Context, editionID, playerID uuid.UUID) error {
	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if err := checkEnrollmentOpen(ctx, tx, editionID); err != nil {
			return err
		}
		pairs, err := tx.Pairs().ListByEdition(ctx, editionID)
		if err != nil {
			return fmt.Errorf("failed to list pairs: %w", err)
		}
		for _, p := range pairs {
			if p.HasPlayer(playerID) {
				return fmt.Errorf("%w (%s)", ErrPlayerHasPair, p.DisplayName)
			}
		}
		return mapRepoError(tx.Enrollments().Delete(ctx, editionID, playerID))
	})
}

func (s *editionService) ListEnrolled(ctx context.Context, editionID uuid.UUID) ([]models.Player, error) {
	if _, err := loadEdition(ctx, s.store, editionID, "", nil); err != nil {
		return nil, err
	}
	return enrolledPlayers(ctx, s.store, editionID)
}

// AvailablePlayers lists active players not yet enrolled, strongest first.
func (s *editionService) AvailablePlayers(ctx context.Context, editionID uuid.UUID) ([]models.Player, error) {
	if _, err := loadEdition(ctx, s.store, editionID, "", nil); err != nil {
		return nil, err
	}
	enrollments, err := s.store.Enrollments().ListByEdition(ctx, editionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	enrolled := make(map[uuid.UUID]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.PlayerID] = true
	}

	players, err := s.store.Players().List(ctx, repositories.ListPlayersFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	available := make([]models.Player, 0, len(players))
	for _, p := range players {
		if !enrolled[p.ID] {
			available = append(available, p)
		}
	}
	return available, nil
}

// Запись и отмена записи возможны до начала игр.
func checkEnrollmentOpen(ctx context.Context, store repositories.Store, editionID uuid.UUID) error {
	edition, err := loadEdition(ctx, store, editionID, "", nil)
	if err != nil {
		return err
	}
	switch edition.Status {
	case models.StatusRegistrationOpen, models.StatusBracketing:
		return nil
	case models.StatusFinished:
		return ErrAlreadyFinalized
	default:
		return fmt.Errorf("%w (current status: %s)", ErrRegistrationClosed, edition.Status)
	}
}
