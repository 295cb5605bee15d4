package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"bluebrain/internal/domain"
	"bluebrain/internal/ports/input"
	"bluebrain/pkg/chron"
	pkgdiscord "bluebrain/pkg/discord"
)

const warnListLength = 10

func (h *Handler) warnExtension() *Extension {
	return &Extension{
		Name: "warn",
		Doc:  "A system to serve official warnings to members.",
		Commands: []*Command{
			{
				Name:        "warn",
				Doc:         "Warns one or more members in your server.",
				Usage:       "<members...> <warn type> [points] [comment]",
				Permissions: discordgo.PermissionKickMembers,
				Run:         h.warn,
				Subcommands: []*Command{
					{
						Name:        "remove",
						Aliases:     []string{"rm"},
						Doc:         "Removes a warning.",
						Usage:       "<warn ID>",
						Permissions: discordgo.PermissionKickMembers,
						Run:         h.removeWarn,
					},
					{
						Name:        "reset",
						Doc:         "Resets a member's warnings.",
						Usage:       "<member>",
						Permissions: discordgo.PermissionManageGuild,
						Run:         h.resetWarns,
					},
					{
						Name:        "list",
						Doc:         "Lists a member's warnings.",
						Usage:       "[member]",
						Permissions: discordgo.PermissionKickMembers,
						Run:         h.listWarns,
					},
				},
			},
			{
				Name:        "warntype",
				Doc:         "Manages warn types. Use the command for information on available subcommands.",
				Permissions: discordgo.PermissionManageGuild,
				Run:         h.warntypeOverview,
				Subcommands: []*Command{
					{Name: "new", Doc: "Creates a new warn type.", Usage: "<warn type> <points>", Permissions: discordgo.PermissionManageGuild, Run: h.newWarnType},
					{Name: "edit", Doc: "Edits an existing warn type. Existing warn records are updated to reflect the changes, but action is not retroactively taken based on point values.", Usage: "<warn type> [points] [new name]", Permissions: discordgo.PermissionManageGuild, Run: h.editWarnType},
					{Name: "delete", Aliases: []string{"del"}, Doc: "Deletes a warn type. Its warn records are removed with it.", Usage: "<warn type>", Permissions: discordgo.PermissionManageGuild, Run: h.deleteWarnType},
					{Name: "list", Doc: "Lists the server's warn types.", Permissions: discordgo.PermissionManageGuild, Run: h.listWarnTypes},
				},
			},
		},
	}
}

// warnArgs is the parsed form of "<members...> <type> [points] [comment]".
type warnArgs struct {
	targets []string
	typ     string
	points  int
	comment string
}

func parseWarnArgs(c *Context) (warnArgs, error) {
	var out warnArgs
	i := 0
	for ; i < len(c.Args); i++ {
		id, ok := pkgdiscord.UserID(c.Args[i])
		if !ok {
			break
		}
		out.targets = append(out.targets, id)
	}
	if len(out.targets) == 0 {
		return out, domain.ErrNoTargets
	}
	if i >= len(c.Args) {
		return out, errUsage
	}
	out.typ = c.Args[i]
	i++
	if p, err := strconv.Atoi(c.Arg(i)); err == nil {
		out.points = p
		if err := domain.ValidatePoints(p); err != nil {
			return out, err
		}
		i++
	}
	out.comment = c.Rest(i)
	return out, nil
}

func (h *Handler) warn(ctx context.Context, c *Context) error {
	args, err := parseWarnArgs(c)
	if err != nil {
		return err
	}
	req := input.WarnRequest{
		GuildID: c.GuildID(),
		ModID:   c.Author().ID,
		Type:    args.typ,
		Points:  args.points,
		Comment: args.comment,
	}
	if err := h.svc.Warns.Check(ctx, req); err != nil {
		return err
	}

	for _, id := range args.targets {
		member, err := c.Session.GuildMember(c.GuildID(), id)
		if err != nil || member.User == nil {
			if err := c.Failure(ctx, "error.member_not_found", nil); err != nil {
				return err
			}
			continue
		}
		name := resolveDisplayName(member)
		if member.User.Bot {
			if err := c.Info(ctx, "warn.skip_bot", map[string]any{"Name": name}); err != nil {
				return err
			}
			continue
		}

		req.UserID = id
		out, err := h.svc.Warns.Warn(ctx, req)
		if err != nil {
			return err
		}
		if out.Ban {
			if err := c.Session.GuildBanCreateWithReason(c.GuildID(), id, out.BanReason, 0, discordgo.WithContext(ctx)); err != nil {
				return fmt.Errorf("ban %s: %w", id, err)
			}
			key := "warn.banned_points"
			if out.ByStrikes {
				key = "warn.banned_strikes"
			}
			if err := c.Info(ctx, key, map[string]any{"Name": name, "Ordinal": domain.Ordinal(out.Strikes)}); err != nil {
				return err
			}
			continue
		}
		if _, err := c.Send(ctx, c.T("warn.warned", map[string]any{
			"Mention":    "<@" + id + ">",
			"Type":       args.typ,
			"Ordinal":    domain.Ordinal(out.Strikes),
			"MaxStrikes": out.MaxStrikes,
			"Points":     out.Points,
			"MaxPoints":  out.MaxPoints,
		})); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) removeWarn(ctx context.Context, c *Context) error {
	id := c.Arg(0)
	if id == "" {
		return errUsage
	}
	if err := h.svc.Warns.Remove(ctx, c.GuildID(), id); err != nil {
		return err
	}
	return c.Success(ctx, "warn.removed", map[string]any{"ID": id})
}

func (h *Handler) resetWarns(ctx context.Context, c *Context) error {
	id, ok := pkgdiscord.UserID(c.Arg(0))
	if !ok {
		return errUsage
	}
	name := id
	if member, err := c.Session.GuildMember(c.GuildID(), id); err == nil {
		name = resolveDisplayName(member)
	}
	if err := h.svc.Warns.Reset(ctx, c.GuildID(), id); err != nil {
		return err
	}
	return c.Success(ctx, "warn.reset", map[string]any{"Name": name})
}

func (h *Handler) listWarns(ctx context.Context, c *Context) error {
	userID, name := c.Author().ID, c.Author().Username
	if arg := c.Arg(0); arg != "" {
		id, ok := pkgdiscord.UserID(arg)
		if !ok {
			return c.Failure(ctx, "error.member_not_found", nil)
		}
		member, err := c.Session.GuildMember(c.GuildID(), id)
		if err != nil || member.User == nil {
			return c.Failure(ctx, "error.member_not_found", nil)
		}
		userID, name = id, member.User.Username
	}

	warns, total, err := h.svc.Warns.List(ctx, c.GuildID(), userID)
	if err != nil {
		return err
	}
	shown := warns[:min(len(warns), warnListLength)]
	fields := make([]pkgdiscord.Field, 0, len(shown))
	for _, w := range shown {
		comment := w.Comment
		if comment == "" {
			comment = c.T("warn.list.no_comment", nil)
		}
		fields = append(fields, pkgdiscord.Field{
			Name: w.ID,
			Value: c.T("warn.list.entry", map[string]any{
				"Type":    w.Type,
				"Comment": comment,
				"Points":  w.Points,
				"Mod":     "<@" + w.ModID + ">",
				"Time":    chron.ShortDateAndTime(w.Time),
			}),
		})
	}
	return c.SendEmbed(ctx, c.Embed(pkgdiscord.EmbedOptions{
		Header:      c.T("warn.header", nil),
		Title:       c.T("warn.list.title", map[string]any{"Name": name}),
		Description: c.T("warn.list.description", map[string]any{"Points": total, "Shown": len(shown), "Total": len(warns)}),
		Fields:      fields,
	}))
}

func (h *Handler) warntypeOverview(ctx context.Context, c *Context) error {
	return h.overview(ctx, c, "warntype.overview")
}

func (h *Handler) newWarnType(ctx context.Context, c *Context) error {
	name := c.Arg(0)
	points, err := strconv.Atoi(c.Arg(1))
	if name == "" || err != nil {
		return errUsage
	}
	if err := h.svc.Warns.CreateType(ctx, c.GuildID(), name, points); err != nil {
		if errors.Is(err, domain.ErrWarnTypeExists) {
			return c.Failure(ctx, "warntype.exists", map[string]any{"Name": name, "Prefix": c.Prefix})
		}
		return err
	}
	return c.Success(ctx, "warntype.created", map[string]any{"Name": name, "Points": points})
}

func (h *Handler) editWarnType(ctx context.Context, c *Context) error {
	name := c.Arg(0)
	if name == "" {
		return errUsage
	}
	points, newName := 0, c.Arg(1)
	if p, err := strconv.Atoi(c.Arg(1)); err == nil {
		points, newName = p, c.Arg(2)
	}
	if err := h.svc.Warns.EditType(ctx, c.GuildID(), name, newName, points); err != nil {
		return err
	}
	if newName != "" {
		if err := c.Success(ctx, "warntype.renamed", map[string]any{"Name": name, "NewName": newName}); err != nil {
			return err
		}
		name = newName
	}
	if points != 0 {
		return c.Success(ctx, "warntype.repointed", map[string]any{"Name": name, "Points": points})
	}
	return nil
}

func (h *Handler) deleteWarnType(ctx context.Context, c *Context) error {
	name := c.Arg(0)
	if name == "" {
		return errUsage
	}
	if err := h.svc.Warns.DeleteType(ctx, c.GuildID(), name); err != nil {
		return err
	}
	return c.Success(ctx, "warntype.deleted", map[string]any{"Name": name})
}

func (h *Handler) listWarnTypes(ctx context.Context, c *Context) error {
	types, err := h.svc.Warns.Types(ctx, c.GuildID())
	if err != nil {
		return err
	}
	fields := make([]pkgdiscord.Field, 0, len(types))
	for _, t := range types {
		fields = append(fields, pkgdiscord.Field{
			Name:   t.Name,
			Value:  c.N("warntype.points", t.Points, nil),
			Inline: true,
		})
	}
	return c.SendEmbed(ctx, c.Embed(pkgdiscord.EmbedOptions{
		Header:      c.T("warn.header", nil),
		Title:       c.T("warntype.list.title", nil),
		Description: c.T("warntype.list.description", map[string]any{"Used": len(types), "Max": domain.MaxWarnTypes}),
		Fields:      fields,
	}))
}
