package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"bluebrain/pkg/chron"
	pkgdiscord "bluebrain/pkg/discord"
)

var (
	ErrMenuStopped     = errors.New("menu: stopped")
	ErrMenuNotOpen     = errors.New("menu: message not sent yet")
	ErrAwaitInProgress = errors.New("menu: a reaction await is already in progress")
	ErrNoPages         = errors.New("menu: no pages to display")
)

// Invocation is the context a menu was opened from.
type Invocation struct {
	GuildID   string
	ChannelID string
	UserID    string
	Username  string
	AvatarURL string
	Colour    int
}

// Page is the content a menu displays at one time.
type Page struct {
	Header      string
	Title       string
	Description string
	Thumbnail   string
	Fields      []pkgdiscord.Field
	Footer      string
}

// MenuOption configures a Menu.
type MenuOption func(*Menu)

// WithEmoji overrides the control emoji.
func WithEmoji(set EmojiSet) MenuOption {
	return func(m *Menu) { m.emoji = set }
}

// WithTimeoutPage sets the page shown when a selector times out. It
// receives the timeout rendered as a long delta ("5 minutes").
func WithTimeoutPage(fn func(delta string) Page) MenuOption {
	return func(m *Menu) { m.timeoutPage = fn }
}

// WithLogger sets the menu logger.
func WithLogger(l *slog.Logger) MenuOption {
	return func(m *Menu) { m.log = l }
}

// Menu is a single interactive message owned by one invoking user.
type Menu struct {
	session     Session
	inv         Invocation
	emoji       EmojiSet
	timeoutPage func(string) Page
	log         *slog.Logger

	message *discordgo.Message
	page    Page
	render  func() Page

	reactions <-chan Reaction
	cancel    func()
	done      chan struct{}
	stopOnce  sync.Once
	stopped   atomic.Bool
}

// New creates a menu. Nothing is sent until Open.
func New(s Session, inv Invocation, opts ...MenuOption) *Menu {
	m := &Menu{
		session: s,
		inv:     inv,
		emoji:   DefaultEmoji(),
		timeoutPage: func(delta string) Page {
			return Page{
				Header:      "Timed out",
				Description: fmt.Sprintf("The menu timed out as there was no response for %s.", delta),
			}
		},
		log:  slog.Default(),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With("logger", "menu")
	return m
}

func (m *Menu) Invocation() Invocation      { return m.inv }
func (m *Menu) Emoji() EmojiSet             { return m.emoji }
func (m *Menu) Message() *discordgo.Message { return m.message }
func (m *Menu) Page() Page                  { return m.page }
func (m *Menu) Stopped() bool               { return m.stopped.Load() }

// Open sends the first page and starts listening for reactions on it.
func (m *Menu) Open(ctx context.Context, page Page) error {
	if m.Stopped() {
		return ErrMenuStopped
	}
	msg, err := m.session.ChannelMessageSendEmbed(m.inv.ChannelID, m.embed(page), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send menu: %w", err)
	}
	m.message = msg
	m.page = page
	m.reactions, m.cancel = reactionsFor(m.session, msg.ID)
	return nil
}

// Update replaces the displayed page.
func (m *Menu) Update(ctx context.Context, page Page) error {
	if m.message == nil {
		return ErrMenuNotOpen
	}
	if _, err := m.session.ChannelMessageEditEmbed(m.message.ChannelID, m.message.ID, m.embed(page), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit menu: %w", err)
	}
	m.page = page
	return nil
}

// Switch re-renders the menu after its selector changed page.
func (m *Menu) Switch(ctx context.Context) error {
	if m.render == nil {
		return nil
	}
	return m.Update(ctx, m.render())
}

// Stop deletes the menu message. The menu is terminal afterwards.
func (m *Menu) Stop(ctx context.Context) error {
	if !m.terminate() {
		return nil
	}
	if m.message == nil {
		return nil
	}
	if err := m.session.ChannelMessageDelete(m.message.ChannelID, m.message.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return nil
}

// Timeout tells the user the session expired and leaves the message with
// its reactions removed. The menu is terminal afterwards.
func (m *Menu) Timeout(ctx context.Context, after time.Duration) error {
	if !m.terminate() {
		return nil
	}
	if m.message == nil {
		return nil
	}
	m.log.Debug("menu timed out", "message_id", m.message.ID, "after", after)
	if err := m.clearReactions(ctx); err != nil {
		return err
	}
	return m.Update(ctx, m.timeoutPage(chron.LongDelta(after)))
}

// Close ends the session but keeps the message and its content, for menus
// that hand the message over to further output.
func (m *Menu) Close(ctx context.Context) error {
	if !m.terminate() {
		return nil
	}
	if m.message == nil {
		return nil
	}
	return m.clearReactions(ctx)
}

func (m *Menu) terminate() bool {
	first := false
	m.stopOnce.Do(func() {
		first = true
		m.stopped.Store(true)
		close(m.done)
		if m.cancel != nil {
			m.cancel()
		}
	})
	return first
}

func (m *Menu) clearReactions(ctx context.Context) error {
	if err := m.session.MessageReactionsRemoveAll(m.message.ChannelID, m.message.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("clear reactions: %w", err)
	}
	return nil
}

// serve replaces the reactions on the message with controls, in order.
func (m *Menu) serve(ctx context.Context, controls []Control, clear bool) error {
	if m.message == nil {
		return ErrMenuNotOpen
	}
	if clear {
		if err := m.clearReactions(ctx); err != nil {
			return err
		}
	}
	for _, c := range controls {
		if err := m.session.MessageReactionAdd(m.message.ChannelID, m.message.ID, m.emoji.Emoji(c).APIName(), discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("add reaction %s: %w", c, err)
		}
	}
	return nil
}

func (m *Menu) embed(p Page) *discordgo.MessageEmbed {
	footer := p.Footer
	if m.inv.Username != "" {
		invoked := "Invoked by " + m.inv.Username
		if footer == "" {
			footer = invoked
		} else {
			footer += " • " + invoked
		}
	}
	return pkgdiscord.BuildEmbed(pkgdiscord.EmbedOptions{
		Header:      p.Header,
		Title:       p.Title,
		Description: p.Description,
		Thumbnail:   p.Thumbnail,
		Fields:      p.Fields,
		Colour:      m.inv.Colour,
		Footer:      footer,
		FooterIcon:  m.inv.AvatarURL,
	})
}
