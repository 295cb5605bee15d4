package database

import (
	"context"
	"fmt"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/infrastructure/database/queries"
	"bluebrain/internal/ports/output"
)

var _ output.WarnRepository = (*WarnRepository)(nil)

type WarnRepository struct {
	store *Store
}

func NewWarnRepository(store *Store) *WarnRepository {
	return &WarnRepository{store: store}
}

func (r *WarnRepository) Config(ctx context.Context, guildID string) (*entities.WarnConfig, error) {
	row, err := r.store.q.GetWarnConfig(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("get warn config: %w", notFound(err, domain.ErrGuildNotFound))
	}
	c := warnConfigToDomain(row)
	return &c, nil
}

func (r *WarnRepository) UpdateConfig(ctx context.Context, cfg *entities.WarnConfig) error {
	n, err := r.store.q.UpdateWarnConfig(ctx, queries.UpdateWarnConfigParams{
		GuildID:      cfg.GuildID,
		MaxPoints:    int32(cfg.MaxPoints),
		MaxStrikes:   int32(cfg.MaxStrikes),
		RetroUpdates: cfg.RetroUpdates,
	})
	if err != nil {
		return fmt.Errorf("update warn config: %w", err)
	}
	if n == 0 {
		return domain.ErrGuildNotFound
	}
	return nil
}

func (r *WarnRepository) Types(ctx context.Context, guildID string) ([]entities.WarnType, error) {
	rows, err := r.store.q.ListWarnTypes(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("list warn types: %w", err)
	}
	out := make([]entities.WarnType, len(rows))
	for i, row := range rows {
		out[i] = warnTypeToDomain(row)
	}
	return out, nil
}

func (r *WarnRepository) CreateType(ctx context.Context, wt *entities.WarnType) error {
	err := r.store.q.InsertWarnType(ctx, queries.InsertWarnTypeParams{
		GuildID:  wt.GuildID,
		WarnType: wt.Name,
		Points:   int32(wt.Points),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrWarnTypeExists
		}
		return fmt.Errorf("create warn type: %w", err)
	}
	return nil
}

func (r *WarnRepository) UpdateType(ctx context.Context, guildID, name string, updated entities.WarnType, retro bool) error {
	return r.store.execTx(ctx, func(q *queries.Queries) error {
		current, err := q.GetWarnType(ctx, guildID, name)
		if err != nil {
			return fmt.Errorf("get warn type: %w", notFound(err, domain.ErrWarnTypeNotFound))
		}
		n, err := q.UpdateWarnType(ctx, queries.UpdateWarnTypeParams{
			GuildID:     guildID,
			WarnType:    name,
			NewWarnType: updated.Name,
			Points:      int32(updated.Points),
		})
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrWarnTypeExists
			}
			return fmt.Errorf("update warn type: %w", err)
		}
		if n == 0 {
			return domain.ErrWarnTypeNotFound
		}
		if updated.Name != name {
			if err := q.RenameWarnsType(ctx, guildID, name, updated.Name); err != nil {
				return fmt.Errorf("rename warns: %w", err)
			}
		}
		if retro && int32(updated.Points) != current.Points {
			err := q.RetroUpdateWarnPoints(ctx, queries.RetroUpdateWarnPointsParams{
				GuildID:   guildID,
				WarnType:  updated.Name,
				OldPoints: current.Points,
				NewPoints: int32(updated.Points),
			})
			if err != nil {
				return fmt.Errorf("retro update warns: %w", err)
			}
		}
		return nil
	})
}

func (r *WarnRepository) DeleteType(ctx context.Context, guildID, name string) (bool, error) {
	var deleted bool
	err := r.store.execTx(ctx, func(q *queries.Queries) error {
		n, err := q.DeleteWarnType(ctx, guildID, name)
		if err != nil {
			return fmt.Errorf("delete warn type: %w", err)
		}
		if n == 0 {
			return nil
		}
		deleted = true
		if err := q.DeleteWarnsOfType(ctx, guildID, name); err != nil {
			return fmt.Errorf("delete warns of type: %w", err)
		}
		return nil
	})
	return deleted, err
}

func (r *WarnRepository) Create(ctx context.Context, warn *entities.Warn) error {
	at, err := r.store.q.InsertWarn(ctx, queries.InsertWarnParams{
		WarnID:   warn.ID,
		GuildID:  warn.GuildID,
		UserID:   warn.UserID,
		ModID:    warn.ModID,
		WarnType: warn.Type,
		Points:   int32(warn.Points),
		Comment:  warn.Comment,
	})
	if err != nil {
		return fmt.Errorf("create warn: %w", err)
	}
	warn.Time = pgtypeTimestamptzToTime(at)
	return nil
}

func (r *WarnRepository) Delete(ctx context.Context, guildID, warnID string) (bool, error) {
	n, err := r.store.q.DeleteWarn(ctx, guildID, warnID)
	if err != nil {
		return false, fmt.Errorf("delete warn: %w", err)
	}
	return n > 0, nil
}

func (r *WarnRepository) DeleteForUser(ctx context.Context, guildID, userID string) (int64, error) {
	n, err := r.store.q.DeleteUserWarns(ctx, guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete user warns: %w", err)
	}
	return n, nil
}

func (r *WarnRepository) ListForUser(ctx context.Context, guildID, userID string) ([]entities.Warn, error) {
	rows, err := r.store.q.ListUserWarns(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("list user warns: %w", err)
	}
	out := make([]entities.Warn, len(rows))
	for i, row := range rows {
		out[i] = warnToDomain(row)
	}
	return out, nil
}
