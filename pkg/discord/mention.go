package discord

import (
	"regexp"
	"strings"
)

var (
	userMention    = regexp.MustCompile(`^<@!?(\d{15,21})>$`)
	channelMention = regexp.MustCompile(`^<#(\d{15,21})>$`)
	roleMention    = regexp.MustCompile(`^<@&(\d{15,21})>$`)
	snowflake      = regexp.MustCompile(`^\d{15,21}$`)
)

// UserID extracts an id from a user mention or a raw id.
func UserID(arg string) (string, bool) {
	return extract(userMention, arg)
}

// ChannelID extracts an id from a channel mention or a raw id.
func ChannelID(arg string) (string, bool) {
	return extract(channelMention, arg)
}

// RoleID extracts an id from a role mention or a raw id.
func RoleID(arg string) (string, bool) {
	return extract(roleMention, arg)
}

func extract(re *regexp.Regexp, arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if m := re.FindStringSubmatch(arg); m != nil {
		return m[1], true
	}
	if snowflake.MatchString(arg) {
		return arg, true
	}
	return "", false
}

var markdownChars = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"`", "\\`",
	"|", `\|`,
	">", `\>`,
	"<", `\<`,
)

// EscapeMarkdown escapes Discord markdown so text renders literally.
func EscapeMarkdown(s string) string {
	return markdownChars.Replace(s)
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
