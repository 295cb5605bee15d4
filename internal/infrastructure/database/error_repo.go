package database

import (
	"context"
	"fmt"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/infrastructure/database/queries"
	"bluebrain/internal/ports/output"
)

var _ output.ErrorRepository = (*ErrorRepository)(nil)

type ErrorRepository struct {
	store *Store
}

func NewErrorRepository(store *Store) *ErrorRepository {
	return &ErrorRepository{store: store}
}

func (r *ErrorRepository) Create(ctx context.Context, record *entities.ErrorRecord) error {
	at, err := r.store.q.InsertError(ctx, queries.InsertErrorParams{
		Ref:       record.Ref,
		Cause:     record.Cause,
		Traceback: record.Traceback,
	})
	if err != nil {
		return fmt.Errorf("record error: %w", err)
	}
	record.Time = pgtypeTimestamptzToTime(at)
	return nil
}

func (r *ErrorRepository) Get(ctx context.Context, ref string) (*entities.ErrorRecord, error) {
	row, err := r.store.q.GetError(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get error: %w", notFound(err, domain.ErrErrorNotFound))
	}
	e := errorRecordToDomain(row)
	return &e, nil
}
