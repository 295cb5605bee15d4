package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"bluebrain/internal/domain"
	"bluebrain/internal/ports/input"
	pkgdiscord "bluebrain/pkg/discord"
	"bluebrain/pkg/menu"
)

func (h *Handler) systemExtension() *Extension {
	return &Extension{
		Name: "system",
		Doc:  "Commands to set up Blue Brain in your server.",
		Commands: []*Command{
			{
				Name:      "prefix",
				Doc:       "Shows Blue Brain's prefix in this server.",
				Cooldown:  5 * time.Second,
				SkipReady: true,
				Run:       h.showPrefix,
			},
			{
				Name:        "setup",
				Doc:         "Runs the first time setup.",
				Permissions: discordgo.PermissionManageGuild,
				Cooldown:    time.Minute,
				Run:         h.setup,
			},
		},
	}
}

func (h *Handler) showPrefix(ctx context.Context, c *Context) error {
	return c.Info(ctx, "system.prefix", map[string]any{"Prefix": c.Prefix})
}

func (h *Handler) setup(ctx context.Context, c *Context) error {
	g, err := h.svc.Guilds.Get(ctx, c.GuildID())
	switch {
	case errors.Is(err, domain.ErrGuildNotFound):
		if _, err := h.svc.Guilds.Join(ctx, input.GuildRef{ID: c.GuildID()}); err != nil {
			return err
		}
	case err != nil:
		return err
	case g.SetupComplete:
		return domain.ErrSetupComplete
	}

	m := menu.NewSelectionMenu(c.NewMenu(), menu.Page{
		Header:      c.T("setup.header", nil),
		Title:       c.T("setup.title", nil),
		Description: c.T("setup.intro", map[string]any{"Channel": "<#" + c.ChannelID() + ">"}),
		Thumbnail:   h.avatarURL(),
	}, []menu.Control{menu.Confirm, menu.Cancel}, menu.WithTimeout(h.cfg.MenuTimeout))

	choice, ok, err := m.Start(ctx)
	if err != nil || !ok {
		return err
	}
	if choice != menu.Confirm {
		if err := m.Stop(ctx); err != nil {
			return err
		}
		return c.Info(ctx, "setup.cancelled", nil)
	}

	g, err = h.svc.Guilds.CompleteSetup(ctx, c.GuildID(), c.ChannelID())
	if err != nil {
		_ = m.Stop(ctx)
		return err
	}
	if err := m.Update(ctx, menu.Page{
		Header:      c.T("setup.header", nil),
		Title:       c.T("setup.done.title", nil),
		Description: c.T("setup.done.description", map[string]any{"Prefix": g.Prefix}),
		Thumbnail:   h.avatarURL(),
		Fields: []pkgdiscord.Field{
			{Name: c.T("setup.done.prefix", nil), Value: g.Prefix, Inline: true},
			{Name: c.T("setup.done.locale", nil), Value: g.Locale, Inline: true},
			{Name: c.T("setup.done.logchannel", nil), Value: "<#" + g.LogChannelID + ">", Inline: true},
		},
	}); err != nil {
		return err
	}
	return m.Close(ctx)
}
