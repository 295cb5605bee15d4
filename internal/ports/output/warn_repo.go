package output

import (
	"context"

	"bluebrain/internal/domain/entities"
)

type WarnRepository interface {
	Config(ctx context.Context, guildID string) (*entities.WarnConfig, error)
	UpdateConfig(ctx context.Context, cfg *entities.WarnConfig) error

	Types(ctx context.Context, guildID string) ([]entities.WarnType, error)
	CreateType(ctx context.Context, wt *entities.WarnType) error
	// UpdateType renames a type and/or changes its points. When retro is
	// set, warns of that type that still carry the old default points are
	// moved to the new value.
	UpdateType(ctx context.Context, guildID, name string, updated entities.WarnType, retro bool) error
	// DeleteType removes the type and every warn of that type.
	DeleteType(ctx context.Context, guildID, name string) (bool, error)

	Create(ctx context.Context, warn *entities.Warn) error
	Delete(ctx context.Context, guildID, warnID string) (bool, error)
	DeleteForUser(ctx context.Context, guildID, userID string) (int64, error)
	// ListForUser returns the member's warns, newest first.
	ListForUser(ctx context.Context, guildID, userID string) ([]entities.Warn, error)
}
