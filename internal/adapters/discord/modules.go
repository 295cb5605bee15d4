package discord

import (
	"context"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"bluebrain/internal/domain"
	pkgdiscord "bluebrain/pkg/discord"
	"bluebrain/pkg/menu"
)

// gatewayPermissions are what the bot needs to run the gateway.
const gatewayPermissions = discordgo.PermissionManageRoles | discordgo.PermissionKickMembers

func (h *Handler) modulesExtension() *Extension {
	cmd := func(name string, aliases []string, doc, usage string, run func(context.Context, *Context) error) *Command {
		return &Command{
			Name:          name,
			Aliases:       aliases,
			Doc:           doc,
			Usage:         usage,
			Permissions:   discordgo.PermissionManageGuild,
			RequiresSetup: true,
			Run:           run,
		}
	}
	return &Extension{
		Name: "modules",
		Doc:  "Commands to configure and toggle modules. Use `help config` for the available settings.",
		Commands: []*Command{
			cmd("config", nil, "Configures a module attribute.", "<module> <attribute> <value>", h.configure),
			cmd("retrieve", []string{"get"}, "Shows the current value of a module attribute.", "<module> <attribute>", h.retrieve),
			cmd("activate", nil, "Activates a module.", "<module>", h.activate),
			cmd("deactivate", nil, "Deactivates a module.", "<module>", h.deactivate),
		},
	}
}

// displayValue renders a stored value the way users refer to it.
func (c *Context) displayValue(kind domain.AttributeKind, value string) string {
	switch {
	case value == "":
		return c.T("modules.unset", nil)
	case kind == domain.KindChannel:
		return "<#" + value + ">"
	case kind == domain.KindRole:
		return "<@&" + value + ">"
	}
	return value
}

func (h *Handler) configure(ctx context.Context, c *Context) error {
	module, attr, value := c.Arg(0), c.Arg(1), c.Rest(2)
	if module == "" || attr == "" || value == "" {
		return errUsage
	}
	if strings.HasPrefix(attr, "_") {
		return c.Failure(ctx, "modules.non_configurable", map[string]any{"Attribute": attr})
	}
	m, a, err := domain.FindAttribute(module, attr)
	if err != nil {
		return err
	}

	switch a.Kind {
	case domain.KindChannel:
		id, ok := pkgdiscord.ChannelID(value)
		if !ok {
			return domain.ErrInvalidValue
		}
		ch, err := c.Session.Channel(id, discordgo.WithContext(ctx))
		if err != nil || ch.GuildID != c.GuildID() {
			return c.Failure(ctx, "modules.channel_not_found", nil)
		}
		value = id
	case domain.KindRole:
		id, ok := pkgdiscord.RoleID(value)
		if !ok {
			return domain.ErrInvalidValue
		}
		if !h.roleExists(ctx, c, id) {
			return c.Failure(ctx, "modules.role_not_found", nil)
		}
		value = id
	}

	if err := h.svc.Config.Set(ctx, c.GuildID(), m.Name, a.Name, value); err != nil {
		return err
	}
	data := map[string]any{
		"Module":    m.Name,
		"Attribute": a.Name,
		"Value":     c.displayValue(a.Kind, value),
		"User":      c.Author().Mention(),
	}
	if err := c.Success(ctx, "modules.set", data); err != nil {
		return err
	}
	c.LogToGuild(ctx, "modules.set_log", data)
	return nil
}

func (h *Handler) retrieve(ctx context.Context, c *Context) error {
	module, attr := c.Arg(0), c.Arg(1)
	if module == "" || attr == "" {
		return errUsage
	}
	if strings.HasPrefix(attr, "_") {
		return c.Failure(ctx, "modules.non_configurable", map[string]any{"Attribute": attr})
	}
	m, a, err := domain.FindAttribute(module, attr)
	if err != nil {
		return err
	}
	value, err := h.svc.Config.Get(ctx, c.GuildID(), m.Name, a.Name)
	if err != nil {
		return err
	}
	return c.Info(ctx, "modules.value", map[string]any{
		"Module":    m.Name,
		"Attribute": a.Name,
		"Value":     c.displayValue(a.Kind, value),
	})
}

func (h *Handler) activate(ctx context.Context, c *Context) error {
	m, err := activatable(c.Arg(0))
	if err != nil {
		return err
	}
	// gateway is the only activatable module.
	if err := h.activateGateway(ctx, c); err != nil {
		return err
	}
	data := map[string]any{"Module": m.Name, "User": c.Author().Mention()}
	if err := c.Success(ctx, "modules.activated", data); err != nil {
		return err
	}
	c.LogToGuild(ctx, "modules.activated_log", data)
	return nil
}

func (h *Handler) deactivate(ctx context.Context, c *Context) error {
	m, err := activatable(c.Arg(0))
	if err != nil {
		return err
	}
	prior, err := h.svc.Gateway.Deactivate(ctx, c.GuildID())
	if err != nil {
		return err
	}
	if prior.GateMessageID != "" {
		if err := c.Session.ChannelMessageDelete(prior.RulesChannelID, prior.GateMessageID, discordgo.WithContext(ctx)); err != nil {
			c.logger().Warn("gate message could not be deleted", "message_id", prior.GateMessageID, tint.Err(err))
		}
	}
	data := map[string]any{"Module": m.Name, "User": c.Author().Mention()}
	if err := c.Success(ctx, "modules.deactivated", data); err != nil {
		return err
	}
	c.LogToGuild(ctx, "modules.deactivated_log", data)
	return nil
}

func activatable(name string) (domain.Module, error) {
	if name == "" {
		return domain.Module{}, errUsage
	}
	m, err := domain.FindModule(name)
	if err != nil {
		return domain.Module{}, err
	}
	if !m.Activatable {
		return domain.Module{}, domain.ErrNotActivatable
	}
	return m, nil
}

// activateGateway posts the gate message in the rules channel and stores
// its id, which switches the gateway on.
func (h *Handler) activateGateway(ctx context.Context, c *Context) error {
	gw, err := h.svc.Gateway.Activate(ctx, c.GuildID())
	if err != nil {
		return err
	}
	ch, err := c.Session.Channel(gw.RulesChannelID, discordgo.WithContext(ctx))
	if err != nil || ch.GuildID != c.GuildID() {
		return fail("gateway.rules_channel_missing", map[string]any{"Prefix": c.Prefix})
	}
	if !h.roleExists(ctx, c, gw.BlockingRoleID) {
		return fail("gateway.blocking_role_missing", map[string]any{"Prefix": c.Prefix})
	}
	have, err := c.Session.UserChannelPermissions(h.clientID(), ch.ID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	if missing := pkgdiscord.Missing(have, gatewayPermissions); missing != 0 {
		return fail("gateway.bot_missing_permissions", map[string]any{
			"Permissions": pkgdiscord.ListOf(pkgdiscord.PermissionNames(missing), c.T("list.and", nil)),
		})
	}

	text := gw.GateText + "\n\n" + c.T("gateway.attention", map[string]any{
		"Confirm": h.emoji.Emoji(menu.Confirm).Mention(),
		"Cancel":  h.emoji.Emoji(menu.Cancel).Mention(),
	})
	msg, err := c.Session.ChannelMessageSend(ch.ID, text, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	for _, ctl := range []menu.Control{menu.Confirm, menu.Cancel} {
		if err := c.Session.MessageReactionAdd(ch.ID, msg.ID, h.emoji.Emoji(ctl).APIName(), discordgo.WithContext(ctx)); err != nil {
			return err
		}
	}
	return h.svc.Gateway.SetGateMessage(ctx, c.GuildID(), msg.ID)
}

func (h *Handler) roleExists(ctx context.Context, c *Context, roleID string) bool {
	roles, err := c.Session.GuildRoles(c.GuildID(), discordgo.WithContext(ctx))
	if err != nil {
		return false
	}
	return slices.ContainsFunc(roles, func(r *discordgo.Role) bool { return r.ID == roleID })
}
