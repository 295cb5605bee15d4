package output

import (
	"context"

	"bluebrain/internal/domain/entities"
)

// GuildRepository stores the per-guild system, gateway and warn rows.
type GuildRepository interface {
	// Ensure creates the guild's rows when missing. created reports whether
	// the system row was new.
	Ensure(ctx context.Context, guild *entities.Guild) (created bool, err error)
	Get(ctx context.Context, guildID string) (*entities.Guild, error)
	Update(ctx context.Context, guild *entities.Guild) error
	// Delete removes every row belonging to the guild.
	Delete(ctx context.Context, guildID string) error
	ListIDs(ctx context.Context) ([]string, error)
}

type GatewayRepository interface {
	Get(ctx context.Context, guildID string) (*entities.Gateway, error)
	FindByGateMessageID(ctx context.Context, messageID string) (*entities.Gateway, error)
	Update(ctx context.Context, gateway *entities.Gateway) error
	AddEntrant(ctx context.Context, entrant *entities.Entrant) error
	IsEntrant(ctx context.Context, guildID, userID string) (bool, error)
	RemoveEntrant(ctx context.Context, guildID, userID string) (bool, error)
	ClearEntrants(ctx context.Context, guildID string) error
}

type ErrorRepository interface {
	Create(ctx context.Context, record *entities.ErrorRecord) error
	Get(ctx context.Context, ref string) (*entities.ErrorRecord, error)
}
