package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ports/output"
)

var _ input.GuildUseCase = (*GuildService)(nil)

type GuildService struct {
	guildRepo     output.GuildRepository
	defaultPrefix string
	defaultLocale string
	log           *slog.Logger
}

func NewGuildService(guildRepo output.GuildRepository, defaultPrefix, defaultLocale string, log *slog.Logger) *GuildService {
	return &GuildService{
		guildRepo:     guildRepo,
		defaultPrefix: defaultPrefix,
		defaultLocale: defaultLocale,
		log:           log.With("logger", "guilds"),
	}
}

func (s *GuildService) Join(ctx context.Context, guild input.GuildRef) (bool, error) {
	return s.guildRepo.Ensure(ctx, &entities.Guild{
		GuildID: guild.ID,
		Name:    guild.Name,
		Prefix:  s.defaultPrefix,
		Locale:  s.defaultLocale,
	})
}

func (s *GuildService) Leave(ctx context.Context, guildID string) error {
	return s.guildRepo.Delete(ctx, guildID)
}

// Sync makes the stored guilds match the ones the session can see: missing
// guilds get their rows, stored guilds no longer present are removed.
func (s *GuildService) Sync(ctx context.Context, present []input.GuildRef) (int, int, error) {
	stored, err := s.guildRepo.ListIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("sync: %w", err)
	}

	seen := make(map[string]bool, len(present))
	added := 0
	for _, g := range present {
		seen[g.ID] = true
		created, err := s.Join(ctx, g)
		if err != nil {
			return added, 0, fmt.Errorf("sync: %w", err)
		}
		if created {
			added++
		}
	}

	removed := 0
	for _, id := range stored {
		if seen[id] {
			continue
		}
		if err := s.guildRepo.Delete(ctx, id); err != nil {
			return added, removed, fmt.Errorf("sync: %w", err)
		}
		removed++
	}
	s.log.Info("database synchronised", "added", added, "removed", removed, "guilds", len(present))
	return added, removed, nil
}

func (s *GuildService) Get(ctx context.Context, guildID string) (*entities.Guild, error) {
	return s.guildRepo.Get(ctx, guildID)
}

// Prefix returns the guild's command prefix, or the default when the guild
// has no row or the lookup fails.
func (s *GuildService) Prefix(ctx context.Context, guildID string) string {
	g, err := s.guildRepo.Get(ctx, guildID)
	if err != nil {
		if !errors.Is(err, domain.ErrGuildNotFound) {
			s.log.Warn("prefix lookup failed", "guild_id", guildID, "error", err)
		}
		return s.defaultPrefix
	}
	if g.Prefix == "" {
		return s.defaultPrefix
	}
	return g.Prefix
}

func (s *GuildService) Locale(ctx context.Context, guildID string) string {
	if guildID == "" {
		return s.defaultLocale
	}
	g, err := s.guildRepo.Get(ctx, guildID)
	if err != nil || g.Locale == "" {
		return s.defaultLocale
	}
	return g.Locale
}

func (s *GuildService) CompleteSetup(ctx context.Context, guildID, logChannelID string) (*entities.Guild, error) {
	g, err := s.guildRepo.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if g.SetupComplete {
		return nil, domain.ErrSetupComplete
	}
	g.LogChannelID = logChannelID
	g.SetupComplete = true
	if err := s.guildRepo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
