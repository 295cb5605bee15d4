package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"bluebrain/internal/ports/input"
)

// HandleGuildJoin makes sure a guild has its rows. Only guilds that were
// not stored yet are announced, so startup replays stay quiet.
func (h *Handler) HandleGuildJoin(ctx context.Context, s Session, g *discordgo.Guild) {
	if g == nil || g.Unavailable {
		return
	}
	created, err := h.svc.Guilds.Join(ctx, input.GuildRef{ID: g.ID, Name: g.Name})
	if err != nil {
		h.log.Error("❌ guild join failed", "guild_id", g.ID, tint.Err(err))
		return
	}
	if !created {
		return
	}
	h.log.Info("joined guild", "guild_id", g.ID, "name", g.Name)
	h.announce(ctx, s, infoEmoji+" "+h.tr.T(h.cfg.DefaultLocale, "hub.guild_joined", map[string]any{
		"Count":   h.state.GuildCount(),
		"Name":    g.Name,
		"Members": g.MemberCount,
		"ID":      g.ID,
	}))
}

// HandleGuildLeave drops the guild's rows.
func (h *Handler) HandleGuildLeave(ctx context.Context, s Session, guildID, name string) {
	if name == "" {
		if g, err := h.svc.Guilds.Get(ctx, guildID); err == nil {
			name = g.Name
		}
	}
	if err := h.svc.Guilds.Leave(ctx, guildID); err != nil {
		h.log.Error("❌ guild leave failed", "guild_id", guildID, tint.Err(err))
		return
	}
	h.log.Info("left guild", "guild_id", guildID, "name", name)
	h.announce(ctx, s, infoEmoji+" "+h.tr.T(h.cfg.DefaultLocale, "hub.guild_left", map[string]any{
		"Count": h.state.GuildCount(),
		"Name":  name,
		"ID":    guildID,
	}))
}

// hubCommand handles owner messages in the hub commands channel. It
// reports whether the message was consumed.
func (h *Handler) hubCommand(m *discordgo.Message) bool {
	hub := h.cfg.Hub
	if hub.CommandsChannelID == "" || m.ChannelID != hub.CommandsChannelID {
		return false
	}
	if hub.GuildID != "" && m.GuildID != hub.GuildID {
		return false
	}
	if !h.cfg.IsOwner(m.Author.ID) {
		return false
	}
	if strings.HasPrefix(m.Content, "shutdown") || strings.HasPrefix(m.Content, "sd") {
		h.log.Info("shutdown requested from hub", "user_id", m.Author.ID)
		h.stop()
		return true
	}
	return false
}
