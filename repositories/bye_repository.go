package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/sinuca-cup/models"
	"github.com/google/uuid"
)

const pendingByesTable = "pending_byes"

type postgresByeRepository struct {
	db SQLExecutor
}

func NewPostgresByeRepository(db SQLExecutor) ByeRepository {
	return &postgresByeRepository{db: db}
}

func (r *postgresByeRepository) Create(ctx context.Context, b *models.PendingBye) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now().UTC()

	ib := newInsert()
	ib.InsertInto(pendingByesTable)
	ib.Cols("id", "edition_id", "pair_id", "position", "created_at")
	ib.Values(b.ID, b.EditionID, b.PairID, b.Position, b.CreatedAt)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
			return ErrInvalidReference
		}
		return fmt.Errorf("failed to insert pending bye: %w", err)
	}
	return nil
}

func (r *postgresByeRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.PendingBye, error) {
	sb := newSelect()
	sb.Select("id", "edition_id", "pair_id", "position", "created_at")
	sb.From(pendingByesTable)
	sb.Where(sb.Equal("edition_id", editionID))
	sb.OrderBy("position ASC")

	query, args := sb.Build()

	byes := make([]models.PendingBye, 0)
	if err := r.db.SelectContext(ctx, &byes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pending byes for edition %s: %w", editionID, err)
	}
	return byes, nil
}

func (r *postgresByeRepository) DeleteByEdition(ctx context.Context, editionID uuid.UUID) error {
	db := newDelete()
	db.DeleteFrom(pendingByesTable)
	db.Where(db.Equal("edition_id", editionID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete pending byes of edition %s: %w", editionID, err)
	}
	return nil
}
