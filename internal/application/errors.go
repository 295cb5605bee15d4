package application

import (
	"context"
	"time"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ports/output"
)

var _ input.ErrorUseCase = (*ErrorService)(nil)

type ErrorService struct {
	errorRepo output.ErrorRepository
	now       func() time.Time
}

func NewErrorService(errorRepo output.ErrorRepository) *ErrorService {
	return &ErrorService{errorRepo: errorRepo, now: time.Now}
}

// Record stores an unexpected failure under a fresh reference.
func (s *ErrorService) Record(ctx context.Context, cause, traceback string) (*entities.ErrorRecord, error) {
	rec := &entities.ErrorRecord{
		Ref:       domain.GenerateID(s.now()),
		Cause:     cause,
		Traceback: traceback,
	}
	if err := s.errorRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ErrorService) Recall(ctx context.Context, ref string) (*entities.ErrorRecord, error) {
	return s.errorRepo.Get(ctx, ref)
}
