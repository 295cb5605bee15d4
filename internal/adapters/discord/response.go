package discord

import (
	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	infoEmoji  = "ℹ️"
	tickEmoji  = "✅"
	crossEmoji = "❌"
)

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User == nil {
		return ""
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// topRoleColour returns the colour of the member's highest coloured role.
func topRoleColour(member *discordgo.Member, roles []*discordgo.Role) int {
	if member == nil {
		return 0
	}
	held := make(map[string]bool, len(member.Roles))
	for _, id := range member.Roles {
		held[id] = true
	}
	colour, position := 0, -1
	for _, r := range roles {
		if held[r.ID] && r.Color != 0 && r.Position > position {
			colour, position = r.Color, r.Position
		}
	}
	return colour
}

var numbers = message.NewPrinter(language.English)

// formatInt renders n with thousands separators.
func formatInt(n int) string {
	return numbers.Sprintf("%d", n)
}
