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

const matchesTable = "matches"

// phaseOrder sorts phases the way they are played.
const phaseOrder = "CASE phase WHEN 'round_of_16' THEN 0 WHEN 'quarterfinal' THEN 1 WHEN 'semifinal' THEN 2 ELSE 3 END"

var matchColumns = []string{
	"id", "edition_id", "phase", "pair1_id", "pair2_id", "winner_id",
	"position", "is_bye", "created_at", "updated_at",
}

type postgresMatchRepository struct {
	db SQLExecutor
}

func NewPostgresMatchRepository(db SQLExecutor) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now

	ib := newInsert()
	ib.InsertInto(matchesTable)
	ib.Cols(matchColumns...)
	ib.Values(m.ID, m.EditionID, m.Phase, m.Pair1ID, m.Pair2ID, m.WinnerID,
		m.Position, m.IsBye, m.CreatedAt, m.UpdatedAt)

	query, args := ib.Build()
	_, err := r.db.ExecContext(ctx, query, args...)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	sb := newSelect()
	sb.Select(matchColumns...)
	sb.From(matchesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var m models.Match
	if err := r.db.GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) ListByEdition(ctx context.Context, editionID uuid.UUID, filter ListMatchesFilter) ([]models.Match, error) {
	sb := newSelect()
	sb.Select(matchColumns...)
	sb.From(matchesTable)
	sb.Where(sb.Equal("edition_id", editionID))
	if filter.Phase != nil {
		sb.Where(sb.Equal("phase", *filter.Phase))
	}
	sb.OrderBy(phaseOrder, "position ASC")

	query, args := sb.Build()

	matches := make([]models.Match, 0)
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list matches for edition %s: %w", editionID, err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateWinner(ctx context.Context, id uuid.UUID, winnerID *uuid.UUID) error {
	ub := newUpdate()
	ub.Update(matchesTable)
	ub.Set(
		ub.Assign("winner_id", winnerID),
		ub.Assign("updated_at", time.Now().UTC()),
	)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSlots(ctx context.Context, m *models.Match) error {
	m.UpdatedAt = time.Now().UTC()

	ub := newUpdate()
	ub.Update(matchesTable)
	ub.Set(
		ub.Assign("pair1_id", m.Pair1ID),
		ub.Assign("pair2_id", m.Pair2ID),
		ub.Assign("winner_id", m.WinnerID),
		ub.Assign("updated_at", m.UpdatedAt),
	)
	ub.Where(ub.Equal("id", m.ID))

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByEdition(ctx context.Context, editionID uuid.UUID) error {
	db := newDelete()
	db.DeleteFrom(matchesTable)
	db.Where(db.Equal("edition_id", editionID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete matches of edition %s: %w", editionID, err)
	}
	return nil
}

func (r *postgresMatchRepository) CountReferencingPair(ctx context.Context, pairID uuid.UUID) (int, error) {
	sb := newSelect()
	sb.Select("COUNT(*)")
	sb.From(matchesTable)
	sb.Where(sb.Or(
		sb.Equal("pair1_id", pairID),
		sb.Equal("pair2_id", pairID),
		sb.Equal("winner_id", pairID),
	))

	query, args := sb.Build()

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count matches of pair %s: %w", pairID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := pqConstraintError(err, pqUniqueViolation); ok {
		switch constraint {
		case "matches_edition_id_phase_position_key", "matches_single_final_idx":
			return ErrMatchSlotTaken
		}
	}
	if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
		return ErrInvalidReference
	}
	return err
}
