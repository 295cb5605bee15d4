package discord

import (
	"context"
	"regexp"
	"strings"

	"bluebrain/internal/domain"
	"bluebrain/pkg/chron"
	pkgdiscord "bluebrain/pkg/discord"
	"bluebrain/pkg/menu"
)

const cannotRunMarker = " (✗)"

var usageArgument = regexp.MustCompile(`<[^>]+>|\[[^\]]+\]`)

func (h *Handler) helpExtension() *Extension {
	return &Extension{
		Name: "help",
		Doc:  "Help with using Blue Brain.",
		Commands: []*Command{
			{
				Name:  "help",
				Doc:   "Shows help for a command, or every command when none is given. Use `help config` for module settings.",
				Usage: "[command]",
				Run:   h.help,
			},
		},
	}
}

func (h *Handler) help(ctx context.Context, c *Context) error {
	query := strings.ToLower(strings.TrimSpace(c.Raw))
	switch query {
	case "":
		return h.helpMenu(ctx, c)
	case "config":
		return h.configHelpMenu(ctx, c)
	}
	cmd := h.router.Find(query)
	if cmd == nil {
		return c.Failure(ctx, "help.unknown", nil)
	}
	return h.commandHelp(ctx, c, cmd)
}

// helpMenu pages through the documented extensions.
func (h *Handler) helpMenu(ctx context.Context, c *Context) error {
	var pages []menu.Page
	for _, ext := range h.router.Extensions() {
		if ext.Doc == "" {
			continue
		}
		var fields []pkgdiscord.Field
		for _, top := range ext.Commands {
			top.Walk(func(cmd *Command) {
				name := basicSyntax(cmd, c.Prefix)
				if ok, _ := h.canRun(c.Session, cmd, c.Author().ID, c.ChannelID()); !ok {
					name += cannotRunMarker
				}
				fields = append(fields, pkgdiscord.Field{Name: name, Value: cmd.Doc})
			})
		}
		pages = append(pages, menu.Page{
			Header:      c.T("help.header", nil),
			Title:       strings.ToUpper(ext.Name[:1]) + ext.Name[1:],
			Description: ext.Doc + "\n\n" + c.T("help.menu.description", map[string]any{"Prefix": c.Prefix}),
			Thumbnail:   h.avatarURL(),
			Fields:      fields,
		})
	}
	return menu.NewMultiPageMenu(c.NewMenu(), pages, menu.WithTimeout(h.cfg.HelpMenuTimeout)).Start(ctx)
}

// configHelpMenu lets the user pick a module and shows its attributes.
func (h *Handler) configHelpMenu(ctx context.Context, c *Context) error {
	var names []string
	for _, m := range domain.Modules {
		if len(m.Configurable()) > 0 {
			names = append(names, m.Name)
		}
	}
	sel := menu.NewNumberedSelectionMenu(c.NewMenu(), names, menu.Page{
		Header:      c.T("help.header", nil),
		Title:       c.T("help.config.title", nil),
		Description: c.T("help.config.description", nil),
		Thumbnail:   h.avatarURL(),
	}, menu.WithTimeout(h.cfg.HelpMenuTimeout))

	name, ok, err := sel.Start(ctx)
	if err != nil || !ok {
		return err
	}
	m, err := domain.FindModule(name)
	if err != nil {
		return err
	}
	fields := make([]pkgdiscord.Field, 0, len(m.Attributes))
	for _, a := range m.Configurable() {
		fields = append(fields, pkgdiscord.Field{
			Name:  c.Prefix + "config " + m.Name + " " + a.Name,
			Value: a.Doc,
		})
	}
	if err := sel.Update(ctx, menu.Page{
		Header:      c.T("help.header", nil),
		Title:       c.T("help.config.module", map[string]any{"Module": m.Name}),
		Description: m.Doc,
		Thumbnail:   h.avatarURL(),
		Fields:      fields,
	}); err != nil {
		return err
	}
	return sel.Close(ctx)
}

func (h *Handler) commandHelp(ctx context.Context, c *Context, cmd *Command) error {
	cooldown := c.T("help.no_cooldown", nil)
	if cmd.Cooldown > 0 {
		cooldown = chron.LongDelta(cmd.Cooldown)
	}
	canRun := tickEmoji + " " + c.T("help.can_run.yes", nil)
	if ok, missing := h.canRun(c.Session, cmd, c.Author().ID, c.ChannelID()); !ok {
		canRun = crossEmoji + " " + c.T("help.can_run.owner_only", nil)
		if missing != 0 {
			names := pkgdiscord.PermissionNames(missing)
			canRun = crossEmoji + " " + c.T("help.can_run.no", map[string]any{
				"Permissions": pkgdiscord.ListOf(names, c.T("list.and", nil)),
				"Count":       len(names),
			})
		}
	}
	parent := c.T("help.no_parent", nil)
	if p := cmd.Parent(); p != nil {
		parent = p.Path()
	}

	fields := []pkgdiscord.Field{
		{Name: c.T("help.syntax", nil), Value: fullSyntax(cmd, c.Prefix)},
		{Name: c.T("help.arguments", nil), Value: argumentSummary(cmd.Usage, c.T("help.no_arguments", nil))},
		{Name: c.T("help.cooldown", nil), Value: cooldown, Inline: true},
		{Name: c.T("help.can_run", nil), Value: canRun, Inline: true},
		{Name: c.T("help.parent", nil), Value: parent, Inline: true},
	}
	if len(cmd.Subcommands) > 0 {
		subs := make([]string, 0, len(cmd.Subcommands))
		for _, s := range cmd.Subcommands {
			subs = append(subs, "`"+s.Name+"`")
		}
		fields = append(fields, pkgdiscord.Field{Name: c.T("help.subcommands", nil), Value: strings.Join(subs, ", ")})
	}
	return c.SendEmbed(ctx, c.Embed(pkgdiscord.EmbedOptions{
		Header:      c.T("help.header", nil),
		Title:       cmd.Path(),
		Description: cmd.Doc,
		Thumbnail:   h.avatarURL(),
		Fields:      fields,
	}))
}

// basicSyntax is "prefix path", e.g. "+tags new".
func basicSyntax(cmd *Command, prefix string) string {
	return prefix + cmd.Path()
}

// argumentSummary lists the arguments of a usage string as
// "<required> • [optional]".
func argumentSummary(usage, none string) string {
	args := usageArgument.FindAllString(usage, -1)
	if len(args) == 0 {
		return none
	}
	return strings.Join(args, " • ")
}
