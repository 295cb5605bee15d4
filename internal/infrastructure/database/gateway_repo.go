package database

import (
	"context"
	"fmt"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/infrastructure/database/queries"
	"bluebrain/internal/ports/output"
)

var _ output.GatewayRepository = (*GatewayRepository)(nil)

type GatewayRepository struct {
	store *Store
}

func NewGatewayRepository(store *Store) *GatewayRepository {
	return &GatewayRepository{store: store}
}

func (r *GatewayRepository) Get(ctx context.Context, guildID string) (*entities.Gateway, error) {
	row, err := r.store.q.GetGateway(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("get gateway: %w", notFound(err, domain.ErrGuildNotFound))
	}
	g := gatewayToDomain(row)
	return &g, nil
}

func (r *GatewayRepository) FindByGateMessageID(ctx context.Context, messageID string) (*entities.Gateway, error) {
	row, err := r.store.q.GetGatewayByGateMessage(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("get gateway by gate message: %w", notFound(err, domain.ErrGuildNotFound))
	}
	g := gatewayToDomain(row)
	return &g, nil
}

func (r *GatewayRepository) Update(ctx context.Context, gateway *entities.Gateway) error {
	n, err := r.store.q.UpdateGateway(ctx, queries.UpdateGatewayParams{
		GuildID:        gateway.GuildID,
		Active:         gateway.Active,
		RulesChannelID: gateway.RulesChannelID,
		GateMessageID:  gateway.GateMessageID,
		BlockingRoleID: gateway.BlockingRoleID,
		GateText:       gateway.GateText,
	})
	if err != nil {
		return fmt.Errorf("update gateway: %w", err)
	}
	if n == 0 {
		return domain.ErrGuildNotFound
	}
	return nil
}

func (r *GatewayRepository) AddEntrant(ctx context.Context, entrant *entities.Entrant) error {
	err := r.store.q.InsertEntrant(ctx, queries.InsertEntrantParams{
		GuildID:   entrant.GuildID,
		UserID:    entrant.UserID,
		EntryTime: timeToTimestamptz(entrant.EntryTime),
	})
	if err != nil {
		return fmt.Errorf("add entrant: %w", err)
	}
	return nil
}

func (r *GatewayRepository) IsEntrant(ctx context.Context, guildID, userID string) (bool, error) {
	ok, err := r.store.q.EntrantExists(ctx, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("check entrant: %w", err)
	}
	return ok, nil
}

func (r *GatewayRepository) RemoveEntrant(ctx context.Context, guildID, userID string) (bool, error) {
	n, err := r.store.q.DeleteEntrant(ctx, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("remove entrant: %w", err)
	}
	return n > 0, nil
}

func (r *GatewayRepository) ClearEntrants(ctx context.Context, guildID string) error {
	if err := r.store.q.DeleteEntrants(ctx, guildID); err != nil {
		return fmt.Errorf("clear entrants: %w", err)
	}
	return nil
}
