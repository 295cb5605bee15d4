package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

var permissionNames = []struct {
	bit  int64
	name string
}{
	{discordgo.PermissionAdministrator, "Administrator"},
	{discordgo.PermissionManageGuild, "Manage Server"},
	{discordgo.PermissionManageRoles, "Manage Roles"},
	{discordgo.PermissionManageChannels, "Manage Channels"},
	{discordgo.PermissionKickMembers, "Kick Members"},
	{discordgo.PermissionBanMembers, "Ban Members"},
	{discordgo.PermissionManageNicknames, "Manage Nicknames"},
	{discordgo.PermissionManageMessages, "Manage Messages"},
	{discordgo.PermissionSendMessages, "Send Messages"},
	{discordgo.PermissionEmbedLinks, "Embed Links"},
	{discordgo.PermissionAttachFiles, "Attach Files"},
	{discordgo.PermissionReadMessageHistory, "Read Message History"},
	{discordgo.PermissionUseExternalEmojis, "Use External Emojis"},
	{discordgo.PermissionAddReactions, "Add Reactions"},
}

// Missing returns the bits of required that have does not grant.
// Administrator grants everything.
func Missing(have, required int64) int64 {
	if have&discordgo.PermissionAdministrator != 0 {
		return 0
	}
	return required &^ have
}

// PermissionNames lists the human names of the known bits set in perms.
func PermissionNames(perms int64) []string {
	var out []string
	for _, p := range permissionNames {
		if perms&p.bit != 0 {
			out = append(out, p.name)
		}
	}
	return out
}

// ListOf joins items as "a, b and c". conj replaces "and".
func ListOf(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + conj + " " + items[len(items)-1]
}
