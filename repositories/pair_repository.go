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

const pairsTable = "pairs"

var pairColumns = []string{
	"id", "edition_id", "player1_id", "player2_id",
	"combined_points", "position", "display_name", "created_at",
}

type postgresPairRepository struct {
	db SQLExecutor
}

func NewPostgresPairRepository(db SQLExecutor) PairRepository {
	return &postgresPairRepository{db: db}
}

func (r *postgresPairRepository) Create(ctx context.Context, p *models.Pair) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()

	ib := newInsert()
	ib.InsertInto(pairsTable)
	ib.Cols(pairColumns...)
	ib.Values(p.ID, p.EditionID, p.Player1ID, p.Player2ID, p.CombinedPoints, p.Position, p.DisplayName, p.CreatedAt)

	query, args := ib.Build()
	_, err := r.db.ExecContext(ctx, query, args...)
	if err == nil {
		return nil
	}
	if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
		return ErrInvalidReference
	}
	return fmt.Errorf("failed to insert pair: %w", err)
}

func (r *postgresPairRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pair, error) {
	sb := newSelect()
	sb.Select(pairColumns...)
	sb.From(pairsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var p models.Pair
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPairNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPairRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]models.Pair, error) {
	sb := newSelect()
	sb.Select(pairColumns...)
	sb.From(pairsTable)
	sb.Where(sb.Equal("edition_id", editionID))
	sb.OrderBy("position ASC")

	query, args := sb.Build()

	pairs := make([]models.Pair, 0)
	if err := r.db.SelectContext(ctx, &pairs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pairs for edition %s: %w", editionID, err)
	}
	return pairs, nil
}

func (r *postgresPairRepository) Update(ctx context.Context, p *models.Pair) error {
	ub := newUpdate()
	ub.Update(pairsTable)
	ub.Set(
		ub.Assign("player1_id", p.Player1ID),
		ub.Assign("player2_id", p.Player2ID),
		ub.Assign("combined_points", p.CombinedPoints),
		ub.Assign("position", p.Position),
		ub.Assign("display_name", p.DisplayName),
	)
	ub.Where(ub.Equal("id", p.ID))

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update pair %s: %w", p.ID, err)
	}
	return checkAffectedRows(result, ErrPairNotFound)
}

func (r *postgresPairRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := newDelete()
	db.DeleteFrom(pairsTable)
	db.Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
			return ErrPairInUse
		}
		return fmt.Errorf("failed to delete pair %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPairNotFound)
}

func (r *postgresPairRepository) DeleteByEdition(ctx context.Context, editionID uuid.UUID) error {
	db := newDelete()
	db.DeleteFrom(pairsTable)
	db.Where(db.Equal("edition_id", editionID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
			return ErrPairInUse
		}
		return fmt.Errorf("failed to delete pairs of edition %s: %w", editionID, err)
	}
	return nil
}
