package menu

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

type reactionHandler = func(*discordgo.Session, *discordgo.MessageReactionAdd)

// fakeSession records what a menu does to its message and lets tests push
// reaction events through the registered handlers.
type fakeSession struct {
	mu        sync.Mutex
	handlers  map[int]reactionHandler
	nextID    int
	sent      []*discordgo.MessageEmbed
	edits     []*discordgo.MessageEmbed
	deleted   []string
	reactions []string
	adds      int
	clears    int
	// failAdds makes the next n reaction adds fail.
	failAdds int
}

func newFakeSession() *fakeSession {
	return &fakeSession{handlers: map[int]reactionHandler{}}
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, embed)
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", len(f.sent)), ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, embed)
	return &discordgo.Message{ID: messageID, ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessageDelete(_, messageID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeSession) MessageReactionAdd(_, _, emojiID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdds > 0 {
		f.failAdds--
		return errors.New("reaction rejected")
	}
	f.adds++
	f.reactions = append(f.reactions, emojiID)
	return nil
}

func (f *fakeSession) MessageReactionsRemoveAll(_, _ string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.reactions = nil
	return nil
}

func (f *fakeSession) AddHandler(handler interface{}) func() {
	h, ok := handler.(reactionHandler)
	if !ok {
		panic("fakeSession: unsupported handler type")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.handlers[id] = h
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
	}
}

// react delivers a reaction to every handler. It returns once the menu has
// received it (or the menu stopped listening).
func (f *fakeSession) react(messageID, userID string, c Control) {
	e := DefaultEmoji().Emoji(c)
	f.mu.Lock()
	hs := make([]reactionHandler, 0, len(f.handlers))
	for _, h := range f.handlers {
		hs = append(hs, h)
	}
	f.mu.Unlock()

	ev := &discordgo.MessageReactionAdd{MessageReaction: &discordgo.MessageReaction{
		UserID:    userID,
		MessageID: messageID,
		ChannelID: "chan",
		Emoji:     discordgo.Emoji{Name: e.Name, ID: e.ID},
	}}
	for _, h := range hs {
		h(nil, ev)
	}
}

func (f *fakeSession) shown() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reactions...)
}

func (f *fakeSession) handlerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}

func (f *fakeSession) lastEdit() *discordgo.MessageEmbed {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return nil
	}
	return f.edits[len(f.edits)-1]
}

func (f *fakeSession) counts() (adds, clears, edits, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adds, f.clears, len(f.edits), len(f.deleted)
}

func emojiNames(cs ...Control) []string {
	set := DefaultEmoji()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = set.Emoji(c).APIName()
	}
	return out
}

func waitShown(t *testing.T, f *fakeSession, want ...Control) {
	t.Helper()
	names := emojiNames(want...)
	require.Eventually(t, func() bool {
		got := f.shown()
		return strings.Join(got, ",") == strings.Join(names, ",")
	}, time.Second, 5*time.Millisecond, "reactions never became %v (have %v)", names, f.shown())
}

func waitListening(t *testing.T, f *fakeSession) {
	t.Helper()
	require.Eventually(t, func() bool { return f.handlerCount() > 0 }, time.Second, 5*time.Millisecond)
}
