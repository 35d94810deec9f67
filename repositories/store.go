package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

type postgresStore struct {
	db     *sqlx.DB
	exec   SQLExecutor
	inTx   bool
	logger *slog.Logger
}

// NewPostgresStore builds a Store on top of an open database handle.
func NewPostgresStore(db *sqlx.DB, logger *slog.Logger) Store {
	return &postgresStore{db: db, exec: db, logger: logger}
}

func (s *postgresStore) Players() PlayerRepository         { return NewPostgresPlayerRepository(s.exec) }
func (s *postgresStore) Editions() EditionRepository       { return NewPostgresEditionRepository(s.exec) }
func (s *postgresStore) Enrollments() EnrollmentRepository { return NewPostgresEnrollmentRepository(s.exec) }
func (s *postgresStore) Pairs() PairRepository             { return NewPostgresPairRepository(s.exec) }
func (s *postgresStore) Matches() MatchRepository          { return NewPostgresMatchRepository(s.exec) }
func (s *postgresStore) Byes() ByeRepository               { return NewPostgresByeRepository(s.exec) }

func (s *postgresStore) WithinTx(ctx context.Context, fn func(tx Store) error) (txErr error) {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("transaction rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(&postgresStore{db: s.db, exec: tx, inTx: true, logger: s.logger})
}
