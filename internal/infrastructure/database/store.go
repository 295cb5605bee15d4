package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bluebrain/internal/infrastructure/database/queries"
)

// TxBeginner is a queries.DBTX that can open transactions, e.g. a pool.
type TxBeginner interface {
	queries.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store gives repositories the query set and a way to run several queries
// atomically.
type Store struct {
	db TxBeginner
	q  *queries.Queries
}

func NewStore(db TxBeginner) *Store {
	return &Store{db: db, q: queries.New(db)}
}

// execTx runs fn in a transaction, rolled back when fn fails.
func (s *Store) execTx(ctx context.Context, fn func(q *queries.Queries) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(s.q.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// notFound maps pgx.ErrNoRows to the given domain error.
func notFound(err error, domainErr error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErr
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
