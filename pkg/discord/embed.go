package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	DefaultColour = 0x3498DB
	DefaultHeader = "Blue Brain"

	maxFields     = 25
	maxFieldValue = 1024
	maxDesc       = 4096
)

// Field is a single embed field.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// EmbedOptions describes an embed the same way across every module:
// a header (author line), an optional title/description, a thumbnail
// and a list of fields. Footer defaults to the invoker.
type EmbedOptions struct {
	Header      string
	Title       string
	Description string
	Thumbnail   string
	Image       string
	Colour      int
	Fields      []Field
	Footer      string
	FooterIcon  string
	Timestamp   time.Time
}

// BuildEmbed renders opts into a discordgo embed, applying defaults and
// Discord's field limits.
func BuildEmbed(opts EmbedOptions) *discordgo.MessageEmbed {
	header := opts.Header
	if header == "" {
		header = DefaultHeader
	}
	colour := opts.Colour
	if colour == 0 {
		colour = DefaultColour
	}
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	footer := opts.Footer
	if footer == "" {
		footer = `\o/`
	}

	embed := &discordgo.MessageEmbed{
		Title:       opts.Title,
		Description: Truncate(opts.Description, maxDesc),
		Color:       colour,
		Timestamp:   ts.Format(time.RFC3339),
		Author:      &discordgo.MessageEmbedAuthor{Name: header},
		Footer:      &discordgo.MessageEmbedFooter{Text: footer, IconURL: opts.FooterIcon},
	}
	if opts.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: opts.Thumbnail}
	}
	if opts.Image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: opts.Image}
	}
	for i, f := range opts.Fields {
		if i == maxFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  Truncate(f.Value, maxFieldValue),
			Inline: f.Inline,
		})
	}
	return embed
}
