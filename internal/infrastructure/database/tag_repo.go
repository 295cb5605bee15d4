package database

import (
	"context"
	"fmt"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/infrastructure/database/queries"
	"bluebrain/internal/ports/output"
)

var _ output.TagRepository = (*TagRepository)(nil)

type TagRepository struct {
	store *Store
}

func NewTagRepository(store *Store) *TagRepository {
	return &TagRepository{store: store}
}

func (r *TagRepository) Create(ctx context.Context, tag *entities.Tag) error {
	row, err := r.store.q.InsertTag(ctx, queries.InsertTagParams{
		TagID:      tag.ID,
		GuildID:    tag.GuildID,
		UserID:     tag.OwnerID,
		TagName:    tag.Name,
		TagContent: tag.Content,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTagExists
		}
		return fmt.Errorf("create tag: %w", err)
	}
	tag.CreatedAt = pgtypeTimestamptzToTime(row.TagTime)
	return nil
}

func (r *TagRepository) Get(ctx context.Context, guildID, name string) (*entities.Tag, error) {
	row, err := r.store.q.GetTag(ctx, guildID, name)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", notFound(err, domain.ErrTagNotFound))
	}
	t := tagToDomain(row)
	return &t, nil
}

func (r *TagRepository) List(ctx context.Context, guildID string) ([]entities.Tag, error) {
	rows, err := r.store.q.ListTags(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tagsToDomain(rows), nil
}

func (r *TagRepository) ListByOwner(ctx context.Context, guildID, ownerID string) ([]entities.Tag, error) {
	rows, err := r.store.q.ListTagsByOwner(ctx, guildID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tags by owner: %w", err)
	}
	return tagsToDomain(rows), nil
}

func (r *TagRepository) UpdateContent(ctx context.Context, guildID, name, content string) error {
	n, err := r.store.q.UpdateTagContent(ctx, guildID, name, content)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	if n == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, guildID, name string) (bool, error) {
	n, err := r.store.q.DeleteTag(ctx, guildID, name)
	if err != nil {
		return false, fmt.Errorf("delete tag: %w", err)
	}
	return n > 0, nil
}
