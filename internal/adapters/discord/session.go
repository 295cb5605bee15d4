package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"bluebrain/pkg/menu"
)

// Session is the part of *discordgo.Session the handlers use.
type Session interface {
	menu.Session
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	HeartbeatLatency() time.Duration
	UpdateWatchStatus(idle int, name string) error
}

var _ Session = (*discordgo.Session)(nil)

// State is the cached gateway view handlers read from.
type State interface {
	Me() *discordgo.User
	GuildCount() int
}

type sessionState struct {
	s *discordgo.Session
}

func (st sessionState) Me() *discordgo.User {
	if st.s.State == nil {
		return nil
	}
	return st.s.State.User
}

func (st sessionState) GuildCount() int {
	if st.s.State == nil {
		return 0
	}
	st.s.State.RLock()
	defer st.s.State.RUnlock()
	return len(st.s.State.Guilds)
}
