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

const playersTable = "players"

var playerColumns = []string{
	"id", "name", "sector", "photo_url", "photo_key",
	"points_total", "wins", "appearances", "active", "created_at", "updated_at",
}

type postgresPlayerRepository struct {
	db SQLExecutor
}

func NewPostgresPlayerRepository(db SQLExecutor) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	ib := newInsert()
	ib.InsertInto(playersTable)
	ib.Cols(playerColumns...)
	ib.Values(p.ID, p.Name, p.Sector, p.PhotoURL, p.PhotoKey,
		p.PointsTotal, p.Wins, p.Appearances, p.Active, p.CreatedAt, p.UpdatedAt)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	sb := newSelect()
	sb.Select(playerColumns...)
	sb.From(playersTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var p models.Player
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error) {
	sb := newSelect()
	sb.Select(playerColumns...)
	sb.From(playersTable)

	if filter.ActiveOnly {
		sb.Where(sb.Equal("active", true))
	}
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return []models.Player{}, nil
		}
		sb.Where(sb.In("id", uuidArgs(filter.IDs)...))
	}
	sb.OrderBy("points_total DESC", "wins DESC", "name ASC")

	query, args := sb.Build()

	players := make([]models.Player, 0)
	if err := r.db.SelectContext(ctx, &players, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	p.UpdatedAt = time.Now().UTC()

	ub := newUpdate()
	ub.Update(playersTable)
	ub.Set(
		ub.Assign("name", p.Name),
		ub.Assign("sector", p.Sector),
		ub.Assign("photo_url", p.PhotoURL),
		ub.Assign("photo_key", p.PhotoKey),
		ub.Assign("active", p.Active),
		ub.Assign("updated_at", p.UpdatedAt),
	)
	ub.Where(ub.Equal("id", p.ID))

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", p.ID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// AddStats increments the counters in place so concurrent settlements never lose updates.
func (r *postgresPlayerRepository) AddStats(ctx context.Context, id uuid.UUID, delta models.StatsDelta) error {
	ub := newUpdate()
	ub.Update(playersTable)
	ub.Set(
		ub.Add("points_total", delta.Points),
		ub.Add("wins", delta.Wins),
		ub.Add("appearances", delta.Appearances),
		ub.Assign("updated_at", time.Now().UTC()),
	)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to add stats to player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func uuidArgs(ids []uuid.UUID) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
