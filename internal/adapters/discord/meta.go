package discord

import (
	"context"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"

	"bluebrain/pkg/chron"
	pkgdiscord "bluebrain/pkg/discord"
)

func (h *Handler) metaExtension() *Extension {
	return &Extension{
		Name: "meta",
		Doc:  "Commands relating to Blue Brain itself.",
		Commands: []*Command{
			{Name: "ping", Doc: "Shows the latency between Blue Brain and Discord.", Cooldown: 5 * time.Second, SkipReady: true, Run: h.ping},
			{Name: "source", Aliases: []string{"src"}, Doc: "Shows where to find Blue Brain's source code.", SkipReady: true, Run: h.source},
			{Name: "invite", Doc: "Provides the links to invite Blue Brain to your server.", SkipReady: true, Run: h.invite},
			{Name: "support", Doc: "Provides an invite link to Blue Brain's support server.", SkipReady: true, Run: h.support},
			{Name: "botinfo", Doc: "Shows information about Blue Brain.", Cooldown: 10 * time.Second, SkipReady: true, Run: h.botinfo},
		},
	}
}

func (h *Handler) avatarURL() string {
	if me := h.state.Me(); me != nil {
		return me.AvatarURL("")
	}
	return ""
}

func (h *Handler) clientID() string {
	if me := h.state.Me(); me != nil {
		return me.ID
	}
	return ""
}

func (h *Handler) ping(ctx context.Context, c *Context) error {
	latency := c.Session.HeartbeatLatency().Milliseconds()
	start := h.now()
	msg, err := c.Send(ctx, infoEmoji+" "+c.T("meta.ping.pending", map[string]any{"Latency": latency}))
	if err != nil {
		return err
	}
	response := h.now().Sub(start).Milliseconds()
	_, err = c.Session.ChannelMessageEdit(msg.ChannelID, msg.ID, infoEmoji+" "+c.T("meta.ping.done", map[string]any{
		"Latency":  latency,
		"Response": response,
	}), discordgo.WithContext(ctx))
	return err
}

func (h *Handler) source(ctx context.Context, c *Context) error {
	return c.SendEmbed(ctx, c.Embed(pkgdiscord.EmbedOptions{
		Header:      c.T("meta.header", nil),
		Title:       c.T("meta.source.title", nil),
		Description: c.T("meta.source.description", map[string]any{"URL": h.cfg.SourceURL}),
		Thumbnail:   h.avatarURL(),
	}))
}

func (h *Handler) invite(ctx context.Context, c *Context) error {
	id := h.clientID()
	return c.SendEmbed(ctx, c.Embed(pkgdiscord.EmbedOptions{
		Header:      c.T("meta.header", nil),
		Title:       c.T("meta.invite.title", nil),
		Description: c.T("meta.invite.description", nil),
		Thumbnail:   h.avatarURL(),
		Fields: []pkgdiscord.Field{
			{Name: c.T("meta.invite.admin", nil), Value: pkgdiscord.AdminInviteURL(id)},
			{Name: c.T("meta.invite.non_admin", nil), Value: pkgdiscord.InviteURL(id, pkgdiscord.NonAdminPermissions)},
		},
	}))
}

func (h *Handler) support(ctx context.Context, c *Context) error {
	if h.cfg.SupportURL == "" {
		return c.Failure(ctx, "meta.support.unavailable", nil)
	}
	return c.Info(ctx, "meta.support.link", map[string]any{"URL": h.cfg.SupportURL})
}

func (h *Handler) botinfo(ctx context.Context, c *Context) error {
	inline := func(name, value string) pkgdiscord.Field {
		return pkgdiscord.Field{Name: c.T(name, nil), Value: value, Inline: true}
	}
	return c.SendEmbed(ctx, c.Embed(pkgdiscord.EmbedOptions{
		Header:    c.T("meta.header", nil),
		Title:     c.T("meta.botinfo.title", nil),
		Thumbnail: h.avatarURL(),
		Fields: []pkgdiscord.Field{
			inline("meta.botinfo.version", h.version),
			inline("meta.botinfo.go", runtime.Version()),
			inline("meta.botinfo.library", "discordgo "+discordgo.VERSION),
			inline("meta.botinfo.guilds", formatInt(h.state.GuildCount())),
			inline("meta.botinfo.uptime", chron.ShortDelta(h.now().Sub(h.started))),
			inline("meta.botinfo.latency", formatInt(int(c.Session.HeartbeatLatency().Milliseconds()))+" ms"),
			{Name: c.T("meta.botinfo.readiness", nil), Value: "`" + h.ready.String() + "`"},
		},
	}))
}
