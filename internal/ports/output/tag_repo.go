package output

import (
	"context"

	"bluebrain/internal/domain/entities"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entities.Tag) error
	Get(ctx context.Context, guildID, name string) (*entities.Tag, error)
	List(ctx context.Context, guildID string) ([]entities.Tag, error)
	ListByOwner(ctx context.Context, guildID, ownerID string) ([]entities.Tag, error)
	UpdateContent(ctx context.Context, guildID, name, content string) error
	Delete(ctx context.Context, guildID, name string) (bool, error)
}
