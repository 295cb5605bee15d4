package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"bluebrain/pkg/menu"
)

// HandleMemberJoin gives new members the blocking role while the
// gateway is active.
func (h *Handler) HandleMemberJoin(ctx context.Context, s Session, m *discordgo.Member) {
	if m == nil || m.User == nil || m.User.Bot {
		return
	}
	gw, admitted, err := h.svc.Gateway.Admit(ctx, m.GuildID, m.User.ID)
	if err != nil {
		h.log.Warn("gateway admit failed", "guild_id", m.GuildID, "user_id", m.User.ID, tint.Err(err))
		return
	}
	if !admitted {
		return
	}
	if err := s.GuildMemberRoleAdd(m.GuildID, m.User.ID, gw.BlockingRoleID, discordgo.WithContext(ctx)); err != nil {
		h.log.Warn("blocking role could not be given", "guild_id", m.GuildID, "user_id", m.User.ID, tint.Err(err))
	}
}

// HandleGateReaction answers a reaction on a gate message. Pending
// entrants are let in on confirm and kicked on cancel; anyone else has
// their reaction taken off.
func (h *Handler) HandleGateReaction(ctx context.Context, s Session, r menu.Reaction) {
	if r.GuildID == "" || r.UserID == "" {
		return
	}
	ctl := h.emoji.Identify(r)
	if ctl != menu.Confirm && ctl != menu.Cancel {
		return
	}
	gw, entrant, err := h.svc.Gateway.Resolve(ctx, r.MessageID, r.UserID)
	if err != nil {
		// Most reactions are not on a gate message at all.
		h.log.Debug("not a gate reaction", "message_id", r.MessageID, tint.Err(err))
		return
	}
	if !gw.Active {
		return
	}
	log := h.log.With("guild_id", gw.GuildID, "user_id", r.UserID)
	if !entrant {
		emoji := menu.Emoji{Name: r.EmojiName, ID: r.EmojiID}
		if err := s.MessageReactionRemove(r.ChannelID, r.MessageID, emoji.APIName(), r.UserID, discordgo.WithContext(ctx)); err != nil {
			log.Warn("gate reaction could not be removed", tint.Err(err))
		}
		return
	}

	locale := h.locale(ctx, gw.GuildID)
	switch ctl {
	case menu.Confirm:
		if err := s.GuildMemberRoleRemove(gw.GuildID, r.UserID, gw.BlockingRoleID, discordgo.WithContext(ctx)); err != nil {
			log.Warn("blocking role could not be removed", tint.Err(err))
			return
		}
		log.Info("entrant accepted the rules")
	case menu.Cancel:
		reason := h.tr.T(locale, "gateway.kick_reason", nil)
		if err := s.GuildMemberDeleteWithReason(gw.GuildID, r.UserID, reason, discordgo.WithContext(ctx)); err != nil {
			log.Warn("entrant could not be kicked", tint.Err(err))
			return
		}
		log.Info("entrant declined the rules")
	}
}
