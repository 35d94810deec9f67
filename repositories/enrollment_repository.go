package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
)

const enrollmentsTable = "enrollments"

type postgresEnrollmentRepository struct {
	db SQLExecutor
}

func NewPostgresEnrollmentRepository(db SQLExecutor) EnrollmentRepository {
	return &postgresEnrollmentRepository{db: db}
}

func (r *postgresEnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now().UTC()

	ib := newInsert()
	ib.InsertInto(enrollmentsTable)
	ib.Cols("id", "edition_id", "player_id", "created_at")
	ib.Values(e.ID, e.EditionID, e.PlayerID, e.CreatedAt)

	query, args := ib.Build()
	_, err := r.db.ExecContext(ctx, query, args...)
	if err == nil {
		return nil
	}
	if _, ok := pqConstraintError(err, pqUniqueViolation); ok {
		return ErrEnrollmentConflict
	}
	if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
		return ErrInvalidReference
	}
	return fmt.Errorf("failed to insert enrollment: %w", err)
}

func (r *postgresEnrollmentRepository) Delete(ctx context.Context, editionID, playerID uuid.UUID) error {
	db := newDelete()
	db.DeleteFrom(enrollmentsTable)
	db.Where(db.Equal("edition_id", editionID), db.Equal("player_id", playerID))

	query, args := db.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	return checkAffectedRows(result, ErrEnrollmentNotFound)
}

func (r *postgresEnrollmentRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.Enrollment, error) {
	sb := newSelect()
	sb.Select("id", "edition_id", "player_id", "created_at")
	sb.From(enrollmentsTable)
	sb.Where(sb.Equal("edition_id", editionID))
	sb.OrderBy("seq ASC")

	query, args := sb.Build()

	enrollments := make([]models.Enrollment, 0)
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list enrollments for edition %s: %w", editionID, err)
	}
	return enrollments, nil
}

func (r *postgresEnrollmentRepository) Count(ctx context.Context, editionID uuid.UUID) (int, error) {
	sb := newSelect()
	sb.Select("COUNT(*)")
	sb.From(enrollmentsTable)
	sb.Where(sb.Equal("edition_id", editionID))

	query, args := sb.Build()

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count enrollments for edition %s: %w", editionID, err)
	}
	return count, nil
}
