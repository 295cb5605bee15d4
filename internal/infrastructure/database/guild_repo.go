package database

import (
	"context"
	"fmt"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/infrastructure/database/queries"
	"bluebrain/internal/ports/output"
)

var _ output.GuildRepository = (*GuildRepository)(nil)

type GuildRepository struct {
	store *Store
}

func NewGuildRepository(store *Store) *GuildRepository {
	return &GuildRepository{store: store}
}

func (r *GuildRepository) Ensure(ctx context.Context, guild *entities.Guild) (bool, error) {
	var created bool
	err := r.store.execTx(ctx, func(q *queries.Queries) error {
		n, err := q.InsertSystem(ctx, queries.InsertSystemParams{
			GuildID:   guild.GuildID,
			GuildName: guild.Name,
			Prefix:    guild.Prefix,
			Locale:    guild.Locale,
		})
		if err != nil {
			return fmt.Errorf("insert system: %w", err)
		}
		created = n > 0
		if err := q.InsertGateway(ctx, guild.GuildID); err != nil {
			return fmt.Errorf("insert gateway: %w", err)
		}
		if err := q.InsertWarnConfig(ctx, guild.GuildID); err != nil {
			return fmt.Errorf("insert warn config: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ensure guild %s: %w", guild.GuildID, err)
	}
	return created, nil
}

func (r *GuildRepository) Get(ctx context.Context, guildID string) (*entities.Guild, error) {
	row, err := r.store.q.GetSystem(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("get guild: %w", notFound(err, domain.ErrGuildNotFound))
	}
	g := guildToDomain(row)
	return &g, nil
}

func (r *GuildRepository) Update(ctx context.Context, guild *entities.Guild) error {
	n, err := r.store.q.UpdateSystem(ctx, queries.UpdateSystemParams{
		GuildID:       guild.GuildID,
		GuildName:     guild.Name,
		Prefix:        guild.Prefix,
		Locale:        guild.Locale,
		LogChannelID:  guild.LogChannelID,
		SetupComplete: guild.SetupComplete,
	})
	if err != nil {
		return fmt.Errorf("update guild: %w", err)
	}
	if n == 0 {
		return domain.ErrGuildNotFound
	}
	return nil
}

// Delete removes the system row; the other guild rows cascade.
func (r *GuildRepository) Delete(ctx context.Context, guildID string) error {
	if err := r.store.q.DeleteSystem(ctx, guildID); err != nil {
		return fmt.Errorf("delete guild: %w", err)
	}
	return nil
}

func (r *GuildRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := r.store.q.ListSystemGuildIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guild ids: %w", err)
	}
	return ids, nil
}
