package discord

import (
	"net/url"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// NonAdminPermissions is what the bot needs to run every module without
// the administrator permission.
const NonAdminPermissions int64 = discordgo.PermissionManageRoles |
	discordgo.PermissionManageChannels |
	discordgo.PermissionKickMembers |
	discordgo.PermissionBanMembers |
	discordgo.PermissionManageNicknames |
	discordgo.PermissionSendMessages |
	discordgo.PermissionManageMessages |
	discordgo.PermissionEmbedLinks |
	discordgo.PermissionReadMessageHistory |
	discordgo.PermissionUseExternalEmojis |
	discordgo.PermissionAddReactions

// InviteURL builds the OAuth2 URL that adds the bot with permissions.
func InviteURL(clientID string, permissions int64) string {
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("scope", "bot")
	if permissions != 0 {
		q.Set("permissions", strconv.FormatInt(permissions, 10))
	}
	return "https://discord.com/oauth2/authorize?" + q.Encode()
}

// AdminInviteURL asks for the administrator permission.
func AdminInviteURL(clientID string) string {
	return InviteURL(clientID, discordgo.PermissionAdministrator)
}
