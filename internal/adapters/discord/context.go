package discord

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	pkgdiscord "bluebrain/pkg/discord"
	"bluebrain/pkg/menu"
)

// Context is one command invocation.
type Context struct {
	Session Session
	Message *discordgo.Message
	Member  *discordgo.Member
	Command *Command
	Args    []string
	// Raw is the text after the command path, untouched.
	Raw    string
	Prefix string
	Locale string

	h      *Handler
	colour *int
}

func (c *Context) GuildID() string         { return c.Message.GuildID }
func (c *Context) ChannelID() string       { return c.Message.ChannelID }
func (c *Context) Author() *discordgo.User { return c.Message.Author }

// Arg returns the i-th argument or "".
func (c *Context) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Rest returns the raw text after the first n arguments.
func (c *Context) Rest(n int) string {
	return strings.TrimSpace(cutFields(c.Raw, n))
}

// T translates key in the guild locale.
func (c *Context) T(key string, data map[string]any) string {
	return c.h.tr.T(c.Locale, key, data)
}

// N translates a plural key in the guild locale.
func (c *Context) N(key string, count int, data map[string]any) string {
	return c.h.tr.N(c.Locale, key, count, data)
}

func (c *Context) DisplayName() string {
	if name := resolveDisplayName(c.Member); name != "" {
		return name
	}
	if a := c.Author(); a != nil {
		if a.GlobalName != "" {
			return a.GlobalName
		}
		return a.Username
	}
	return ""
}

// Invocation describes this command for menus and embeds.
func (c *Context) Invocation() menu.Invocation {
	inv := menu.Invocation{
		GuildID:   c.GuildID(),
		ChannelID: c.ChannelID(),
		Username:  c.DisplayName(),
		Colour:    c.Colour(),
	}
	if a := c.Author(); a != nil {
		inv.UserID = a.ID
		inv.AvatarURL = a.AvatarURL("")
	}
	return inv
}

// Colour is the invoking member's top role colour, looked up once.
func (c *Context) Colour() int {
	if c.colour != nil {
		return *c.colour
	}
	colour := 0
	if roles, err := c.Session.GuildRoles(c.GuildID()); err == nil {
		colour = topRoleColour(c.Member, roles)
	}
	c.colour = &colour
	return colour
}

// NewMenu creates a menu bound to this invocation.
func (c *Context) NewMenu() *menu.Menu {
	return menu.New(c.Session, c.Invocation(),
		menu.WithEmoji(c.h.emoji),
		menu.WithLogger(c.h.log),
		menu.WithTimeoutPage(func(delta string) menu.Page {
			return menu.Page{
				Header:      c.T("menu.timeout.header", nil),
				Description: c.T("menu.timeout.description", map[string]any{"Delta": delta}),
			}
		}),
	)
}

// Embed builds an embed footed with the invoking user.
func (c *Context) Embed(opts pkgdiscord.EmbedOptions) *discordgo.MessageEmbed {
	if opts.Colour == 0 {
		opts.Colour = c.Colour()
	}
	if opts.Footer == "" {
		opts.Footer = c.T("embed.invoked_by", map[string]any{"Name": c.DisplayName()})
		if a := c.Author(); a != nil {
			opts.FooterIcon = a.AvatarURL("")
		}
	}
	return pkgdiscord.BuildEmbed(opts)
}

// Send posts plain text to the invoking channel.
func (c *Context) Send(ctx context.Context, content string) (*discordgo.Message, error) {
	return c.Session.ChannelMessageSendComplex(c.ChannelID(), &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers}},
	}, discordgo.WithContext(ctx))
}

// Info, Success and Failure prefix a translated message with the
// matching status emoji.
func (c *Context) Info(ctx context.Context, key string, data map[string]any) error {
	_, err := c.Send(ctx, infoEmoji+" "+c.T(key, data))
	return err
}

func (c *Context) Success(ctx context.Context, key string, data map[string]any) error {
	_, err := c.Send(ctx, tickEmoji+" "+c.T(key, data))
	return err
}

func (c *Context) Failure(ctx context.Context, key string, data map[string]any) error {
	_, err := c.Send(ctx, crossEmoji+" "+c.T(key, data))
	return err
}

func (c *Context) SendEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := c.Session.ChannelMessageSendEmbed(c.ChannelID(), embed, discordgo.WithContext(ctx))
	return err
}

// SendFile uploads r as a text attachment.
func (c *Context) SendFile(ctx context.Context, name string, r io.Reader) error {
	_, err := c.Session.ChannelMessageSendComplex(c.ChannelID(), &discordgo.MessageSend{
		Files: []*discordgo.File{{Name: name, ContentType: "text/plain", Reader: r}},
	}, discordgo.WithContext(ctx))
	return err
}

// LogToGuild posts an info line to the guild's log channel, if one is set.
func (c *Context) LogToGuild(ctx context.Context, key string, data map[string]any) {
	g, err := c.h.svc.Guilds.Get(ctx, c.GuildID())
	if err != nil || g.LogChannelID == "" {
		return
	}
	if _, err := c.Session.ChannelMessageSend(g.LogChannelID, infoEmoji+" "+c.T(key, data), discordgo.WithContext(ctx)); err != nil {
		c.h.log.Warn("guild log channel unavailable", "guild_id", c.GuildID(), "channel_id", g.LogChannelID, tint.Err(err))
	}
}

func (c *Context) logger() *slog.Logger {
	return c.h.log.With("command", c.Command.Path(), "guild_id", c.GuildID())
}

func (c *Context) String() string {
	return fmt.Sprintf("%s in %s/%s by %s", c.Command.Path(), c.GuildID(), c.ChannelID(), c.Author().ID)
}
