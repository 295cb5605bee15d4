package input

import (
	"context"

	"bluebrain/internal/domain/entities"
)

type TagUseCase interface {
	// Show returns the tag, or suggestions sharing its first letter along
	// with domain.ErrTagNotFound.
	Show(ctx context.Context, guildID, name string) (*entities.Tag, []string, error)
	Create(ctx context.Context, guildID, ownerID, name, content string) (*entities.Tag, error)
	Edit(ctx context.Context, guildID, userID, name, content string) error
	Delete(ctx context.Context, guildID, userID, name string) error
	List(ctx context.Context, guildID string) ([]entities.Tag, error)
	ListByOwner(ctx context.Context, guildID, ownerID string) ([]entities.Tag, error)
}
