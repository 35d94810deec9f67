package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
)

const editionsTable = "editions"

var editionColumns = []string{"id", "name", "number", "year", "start_date", "status", "created_at", "updated_at"}

type postgresEditionRepository struct {
	db SQLExecutor
}

func NewPostgresEditionRepository(db SQLExecutor) EditionRepository {
	return &postgresEditionRepository{db: db}
}

func (r *postgresEditionRepository) Create(ctx context.Context, e *models.Edition) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now

	ib := newInsert()
	ib.InsertInto(editionsTable)
	ib.Cols(editionColumns...)
	ib.Values(e.ID, e.Name, e.Number, e.Year, e.StartDate, e.Status, e.CreatedAt, e.UpdatedAt)

	query, args := ib.Build()
	_, err := r.db.ExecContext(ctx, query, args...)
	return r.handleEditionError(err)
}

func (r *postgresEditionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Edition, error) {
	sb := newSelect()
	sb.Select(editionColumns...)
	sb.From(editionsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var e models.Edition
	if err := r.db.GetContext(ctx, &e, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEditionNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresEditionRepository) List(ctx context.Context, filter ListEditionsFilter) ([]models.Edition, error) {
	sb := newSelect()
	sb.Select(editionColumns...)
	sb.From(editionsTable)

	if filter.Status != nil {
		sb.Where(sb.Equal("status", *filter.Status))
	}
	if filter.Year != nil {
		sb.Where(sb.Equal("year", *filter.Year))
	}
	sb.OrderBy("year DESC", "number DESC")

	query, args := sb.Build()

	editions := make([]models.Edition, 0)
	if err := r.db.SelectContext(ctx, &editions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list editions: %w", err)
	}
	return editions, nil
}

func (r *postgresEditionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.EditionStatus) error {
	ub := newUpdate()
	ub.Update(editionsTable)
	ub.Set(
		ub.Assign("status", to),
		ub.Assign("updated_at", time.Now().UTC()),
	)
	ub.Where(ub.Equal("id", id), ub.Equal("status", from))

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update status of edition %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrEditionStatusChanged)
}

func (r *postgresEditionRepository) MaxNumber(ctx context.Context, year int) (int, error) {
	sb := newSelect()
	sb.Select("COALESCE(MAX(number), 0)")
	sb.From(editionsTable)
	sb.Where(sb.Equal("year", year))

	query, args := sb.Build()

	var number int
	if err := r.db.GetContext(ctx, &number, query, args...); err != nil {
		return 0, fmt.Errorf("failed to get max edition number for %d: %w", year, err)
	}
	return number, nil
}

func (r *postgresEditionRepository) handleEditionError(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := pqConstraintError(err, pqUniqueViolation); ok && constraint == "editions_year_number_key" {
		return ErrEditionNumberConflict
	}
	return err
}
