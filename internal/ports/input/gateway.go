package input

import (
	"context"

	"bluebrain/internal/domain/entities"
)

type GatewayUseCase interface {
	Get(ctx context.Context, guildID string) (*entities.Gateway, error)
	// Activate checks the gateway can be switched on and returns it.
	Activate(ctx context.Context, guildID string) (*entities.Gateway, error)
	SetGateMessage(ctx context.Context, guildID, messageID string) error
	Deactivate(ctx context.Context, guildID string) (*entities.Gateway, error)
	Admit(ctx context.Context, guildID, userID string) (*entities.Gateway, bool, error)
	Resolve(ctx context.Context, messageID, userID string) (*entities.Gateway, bool, error)
}
