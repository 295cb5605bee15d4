package input

import (
	"context"

	"bluebrain/internal/domain/entities"
)

// WarnRequest is one warning handed out by a moderator.
type WarnRequest struct {
	GuildID string
	ModID   string
	UserID  string
	Type    string
	Points  int // 0 uses the type's points
	Comment string
}

type WarnUseCase interface {
	// Check validates the parts of a request shared by every target.
	Check(ctx context.Context, req WarnRequest) error
	Warn(ctx context.Context, req WarnRequest) (*entities.WarnOutcome, error)
	Remove(ctx context.Context, guildID, warnID string) error
	Reset(ctx context.Context, guildID, userID string) error
	List(ctx context.Context, guildID, userID string) ([]entities.Warn, int, error)

	Types(ctx context.Context, guildID string) ([]entities.WarnType, error)
	CreateType(ctx context.Context, guildID, name string, points int) error
	EditType(ctx context.Context, guildID, name, newName string, newPoints int) error
	DeleteType(ctx context.Context, guildID, name string) error
}
