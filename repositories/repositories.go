package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrPlayerNotFound        = errors.New("player not found")
	ErrEditionNotFound       = errors.New("edition not found")
	ErrEditionNumberConflict = errors.New("edition number already used for this year")
	ErrEditionStatusChanged  = errors.New("edition status does not match the expected status")
	ErrEnrollmentNotFound    = errors.New("enrollment not found")
	ErrEnrollmentConflict    = errors.New("player is already enrolled in this edition")
	ErrPairNotFound          = errors.New("pair not found")
	ErrPairInUse             = errors.New("pair is referenced by a match")
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchSlotTaken        = errors.New("a match already exists at this phase and position")
	ErrInvalidReference      = errors.New("referenced entity does not exist")
)

// SQLExecutor is satisfied by both *sqlx.DB and *sqlx.Tx.
type SQLExecutor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type ListPlayersFilter struct {
	ActiveOnly bool
	IDs        []uuid.UUID
}

type ListEditionsFilter struct {
	Status *models.EditionStatus
	Year   *int
}

type ListMatchesFilter struct {
	Phase *models.Phase
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	// List orders by points desc, wins desc, name asc.
	List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	AddStats(ctx context.Context, id uuid.UUID, delta models.StatsDelta) error
}

type EditionRepository interface {
	Create(ctx context.Context, edition *models.Edition) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Edition, error)
	// List orders by year desc, number desc.
	List(ctx context.Context, filter ListEditionsFilter) ([]models.Edition, error)
	// UpdateStatus changes the status only while it still equals from.
	// It returns ErrEditionStatusChanged when no row matched.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.EditionStatus) error
	MaxNumber(ctx context.Context, year int) (int, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, editionID, playerID uuid.UUID) error
	// ListByEdition returns enrollments in the order they were made.
	ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.Enrollment, error)
	Count(ctx context.Context, editionID uuid.UUID) (int, error)
}

type PairRepository interface {
	Create(ctx context.Context, pair *models.Pair) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pair, error)
	ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.Pair, error)
	Update(ctx context.Context, pair *models.Pair) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEdition(ctx context.Context, editionID uuid.UUID) error
}

type MatchRepository interface {
	// Create returns ErrMatchSlotTaken when (edition, phase, position) is occupied.
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	// ListByEdition orders by phase then position.
	ListByEdition(ctx context.Context, editionID uuid.UUID, filter ListMatchesFilter) ([]models.Match, error)
	UpdateWinner(ctx context.Context, id uuid.UUID, winnerID *uuid.UUID) error
	UpdateSlots(ctx context.Context, match *models.Match) error
	DeleteByEdition(ctx context.Context, editionID uuid.UUID) error
	CountReferencingPair(ctx context.Context, pairID uuid.UUID) (int, error)
}

type ByeRepository interface {
	Create(ctx context.Context, bye *models.PendingBye) error
	ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.PendingBye, error)
	DeleteByEdition(ctx context.Context, editionID uuid.UUID) error
}

// Store groups the repositories of one database handle or transaction.
type Store interface {
	Players() PlayerRepository
	Editions() EditionRepository
	Enrollments() EnrollmentRepository
	Pairs() PairRepository
	Matches() MatchRepository
	Byes() ByeRepository

	// WithinTx runs fn against a transactional Store. The transaction commits
	// when fn returns nil and rolls back otherwise. Nested calls join the outer one.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
