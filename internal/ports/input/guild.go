package input

import (
	"context"

	"bluebrain/internal/domain/entities"
)

// GuildRef identifies a guild the gateway session can see.
type GuildRef struct {
	ID   string
	Name string
}

type GuildUseCase interface {
	Join(ctx context.Context, guild GuildRef) (created bool, err error)
	Leave(ctx context.Context, guildID string) error
	Sync(ctx context.Context, present []GuildRef) (added, removed int, err error)
	Get(ctx context.Context, guildID string) (*entities.Guild, error)
	Prefix(ctx context.Context, guildID string) string
	Locale(ctx context.Context, guildID string) string
	CompleteSetup(ctx context.Context, guildID, logChannelID string) (*entities.Guild, error)
}

type ConfigUseCase interface {
	Set(ctx context.Context, guildID, module, attribute, value string) error
	Get(ctx context.Context, guildID, module, attribute string) (string, error)
}

type ErrorUseCase interface {
	Record(ctx context.Context, cause, traceback string) (*entities.ErrorRecord, error)
	Recall(ctx context.Context, ref string) (*entities.ErrorRecord, error)
}
