// Package menu implements reaction-driven interactive messages: a menu owns
// one rendered message and a selector turns the invoking user's reactions
// into page navigation or a selection.
package menu

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Session is the part of *discordgo.Session a menu needs.
type Session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionsRemoveAll(channelID, messageID string, options ...discordgo.RequestOption) error
	AddHandler(handler interface{}) func()
}

var _ Session = (*discordgo.Session)(nil)

// Reaction is a reaction-add event reduced to what selectors look at.
type Reaction struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	EmojiName string
	EmojiID   string
}

// ReactionFromEvent converts a gateway event.
func ReactionFromEvent(ev *discordgo.MessageReactionAdd) Reaction {
	if ev == nil || ev.MessageReaction == nil {
		return Reaction{}
	}
	return Reaction{
		GuildID:   ev.GuildID,
		ChannelID: ev.ChannelID,
		MessageID: ev.MessageID,
		UserID:    ev.UserID,
		EmojiName: ev.Emoji.Name,
		EmojiID:   ev.Emoji.ID,
	}
}

// reactionsFor returns a channel receiving every reaction added to
// messageID. Sends block until read or until cancel is called, so nothing
// is dropped between rounds.
func reactionsFor(s Session, messageID string) (<-chan Reaction, func()) {
	out := make(chan Reaction)
	closer := make(chan struct{})

	remove := s.AddHandler(func(_ *discordgo.Session, ev *discordgo.MessageReactionAdd) {
		r := ReactionFromEvent(ev)
		if r.MessageID != messageID {
			return
		}
		select {
		case out <- r:
		case <-closer:
		}
	})

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			remove()
			close(closer)
		})
	}
	return out, cancel
}
