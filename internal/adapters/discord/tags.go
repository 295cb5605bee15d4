package discord

import (
	"context"
	"errors"
	"strings"

	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/pkg/chron"
	pkgdiscord "bluebrain/pkg/discord"
	"bluebrain/pkg/menu"
)

const tagPreviewLength = 350

func (h *Handler) tagsExtension() *Extension {
	return &Extension{
		Name: "tags",
		Doc:  "Commands for creating tags.",
		Commands: []*Command{
			{
				Name:  "tag",
				Doc:   "Shows the content of an existing tag.",
				Usage: "<tag name>",
				Run:   h.showTag,
			},
			{
				Name: "tags",
				Doc:  "Commands to create tags in the server.",
				Run:  h.tagsOverview,
				Subcommands: []*Command{
					{Name: "new", Doc: "Creates a new tag.", Usage: "<tag name> <content>", Run: h.newTag},
					{Name: "edit", Doc: "Edits an existing tag.", Usage: "<tag name> <content>", Run: h.editTag},
					{Name: "delete", Aliases: []string{"del"}, Doc: "Deletes an existing tag.", Usage: "<tag name>", Run: h.deleteTag},
					{Name: "info", Doc: "Shows information about an existing tag.", Usage: "<tag name>", Run: h.tagInfo},
					{Name: "all", Doc: "Shows the tag list of a tag owner.", Usage: "[member]", Run: h.ownerTags},
					{Name: "raw", Doc: "Gets the raw content of the tag. This is with markdown escaped. Useful for editing.", Usage: "<tag name>", Run: h.rawTag},
					{Name: "list", Doc: "Lists the server's tags.", Run: h.listTags},
				},
			},
		},
	}
}

func (h *Handler) showTag(ctx context.Context, c *Context) error {
	name := c.Arg(0)
	if name == "" {
		return errUsage
	}
	tag, suggestions, err := h.svc.Tags.Show(ctx, c.GuildID(), name)
	if errors.Is(err, domain.ErrTagNotFound) {
		msg := crossEmoji + " " + c.T("tags.not_found", map[string]any{"Name": name})
		if len(suggestions) > 0 {
			msg += "\n" + c.T("tags.did_you_mean", map[string]any{"Suggestions": strings.Join(suggestions, "\n")})
		}
		_, err := c.Send(ctx, msg)
		return err
	}
	if err != nil {
		return err
	}
	_, err = c.Send(ctx, tag.Content)
	return err
}

func (h *Handler) tagsOverview(ctx context.Context, c *Context) error {
	return h.overview(ctx, c, "tags.overview")
}

// overview lists a group's subcommands with their help text.
func (h *Handler) overview(ctx context.Context, c *Context, key string) error {
	fields := make([]pkgdiscord.Field, 0, len(c.Command.Subcommands))
	for _, sub := range c.Command.Subcommands {
		fields = append(fields, pkgdiscord.Field{
			Name:  sub.Name,
			Value: c.T("help.more_info", map[string]any{"Doc": sub.Doc, "Prefix": c.Prefix, "Command": sub.Path()}),
		})
	}
	return c.SendEmbed(ctx, c.Embed(pkgdiscord.EmbedOptions{
		Header:      c.T(key+".header", nil),
		Description: c.T(key+".description", nil),
		Thumbnail:   h.avatarURL(),
		Fields:      fields,
	}))
}

func (h *Handler) newTag(ctx context.Context, c *Context) error {
	name, content := c.Arg(0), c.Rest(1)
	if name == "" || content == "" {
		return errUsage
	}
	if _, err := h.svc.Tags.Create(ctx, c.GuildID(), c.Author().ID, name, content); err != nil {
		if errors.Is(err, domain.ErrTagExists) {
			return c.Failure(ctx, "tags.exists", map[string]any{"Name": name, "Prefix": c.Prefix})
		}
		return err
	}
	return c.Success(ctx, "tags.created", map[string]any{"Name": name})
}

func (h *Handler) editTag(ctx context.Context, c *Context) error {
	name, content := c.Arg(0), c.Rest(1)
	if name == "" || content == "" {
		return errUsage
	}
	if err := h.svc.Tags.Edit(ctx, c.GuildID(), c.Author().ID, name, content); err != nil {
		return err
	}
	return c.Success(ctx, "tags.updated", map[string]any{"Name": name})
}

func (h *Handler) deleteTag(ctx context.Context, c *Context) error {
	name := c.Arg(0)
	if name == "" {
		return errUsage
	}
	if err := h.svc.Tags.Delete(ctx, c.GuildID(), c.Author().ID, name); err != nil {
		return err
	}
	return c.Success(ctx, "tags.deleted", map[string]any{"Name": name})
}

func (h *Handler) tagInfo(ctx context.Context, c *Context) error {
	name := c.Arg(0)
	if name == "" {
		return errUsage
	}
	tag, _, err := h.svc.Tags.Show(ctx, c.GuildID(), name)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return c.Failure(ctx, "tags.not_found", map[string]any{"Name": name})
		}
		return err
	}
	return c.SendEmbed(ctx, c.Embed(pkgdiscord.EmbedOptions{
		Header: c.T("tags.header", nil),
		Title:  c.T("tags.info.title", nil),
		Fields: []pkgdiscord.Field{
			{Name: c.T("tags.info.owner", nil), Value: "<@" + tag.OwnerID + ">", Inline: false},
			{Name: c.T("tags.info.name", nil), Value: tag.Name, Inline: false},
			{Name: c.T("tags.info.id", nil), Value: tag.ID, Inline: false},
			{Name: c.T("tags.info.created", nil), Value: chron.ShortDateAndTime(tag.CreatedAt), Inline: false},
		},
	}))
}

func (h *Handler) ownerTags(ctx context.Context, c *Context) error {
	ownerID, ownerName := c.Author().ID, c.DisplayName()
	self := true
	if arg := c.Arg(0); arg != "" {
		id, ok := pkgdiscord.UserID(arg)
		if !ok {
			return c.Failure(ctx, "error.member_not_found", nil)
		}
		member, err := c.Session.GuildMember(c.GuildID(), id)
		if err != nil {
			return c.Failure(ctx, "error.member_not_found", nil)
		}
		ownerID, ownerName, self = id, resolveDisplayName(member), id == c.Author().ID
	}

	owned, err := h.svc.Tags.ListByOwner(ctx, c.GuildID(), ownerID)
	if err != nil {
		return err
	}
	if len(owned) == 0 {
		if self {
			return c.Failure(ctx, "tags.none_self", nil)
		}
		return c.Failure(ctx, "tags.none_member", nil)
	}
	all, err := h.svc.Tags.List(ctx, c.GuildID())
	if err != nil {
		return err
	}

	title := c.T("tags.all.title", map[string]any{"Name": ownerName})
	description := c.T("tags.all.description", map[string]any{"Owned": len(owned), "Total": len(all)})
	pages := make([]menu.Page, 0, len(owned))
	for _, tag := range owned {
		preview := strings.ReplaceAll(pkgdiscord.Truncate(tag.Content, tagPreviewLength), "<", `\<`)
		pages = append(pages, menu.Page{
			Header:      c.T("tags.header", nil),
			Title:       title,
			Description: description,
			Thumbnail:   h.avatarURL(),
			Fields: []pkgdiscord.Field{
				{Name: tag.Name, Value: c.T("tags.all.entry", map[string]any{"ID": tag.ID, "Preview": preview})},
			},
		})
	}
	return menu.NewMultiPageMenu(c.NewMenu(), pages, menu.WithTimeout(h.cfg.MenuTimeout)).Start(ctx)
}

func (h *Handler) rawTag(ctx context.Context, c *Context) error {
	name := c.Arg(0)
	if name == "" {
		return errUsage
	}
	tag, _, err := h.svc.Tags.Show(ctx, c.GuildID(), name)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return c.Failure(ctx, "tags.not_found", map[string]any{"Name": name})
		}
		return err
	}
	_, err = c.Send(ctx, pkgdiscord.EscapeMarkdown(tag.Content))
	return err
}

func (h *Handler) listTags(ctx context.Context, c *Context) error {
	tags, err := h.svc.Tags.List(ctx, c.GuildID())
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return c.Failure(ctx, "tags.none_guild", nil)
	}
	return menu.NewMultiPageMenu(c.NewMenu(), tagPages(c, tags, h.avatarURL()), menu.WithTimeout(h.cfg.MenuTimeout)).Start(ctx)
}

// tagPages lays tags out as inline "name / ID" fields, a page at a time.
func tagPages(c *Context, tags []entities.Tag, thumbnail string) []menu.Page {
	const perPage = 12
	var pages []menu.Page
	for start := 0; start < len(tags); start += perPage {
		end := min(start+perPage, len(tags))
		fields := make([]pkgdiscord.Field, 0, end-start)
		for _, tag := range tags[start:end] {
			fields = append(fields, pkgdiscord.Field{Name: tag.Name, Value: "ID: " + tag.ID, Inline: true})
		}
		pages = append(pages, menu.Page{
			Header:      c.T("tags.header", nil),
			Title:       c.T("tags.list.title", nil),
			Description: c.T("tags.list.description", map[string]any{"Total": len(tags)}),
			Thumbnail:   thumbnail,
			Fields:      fields,
		})
	}
	return pages
}
