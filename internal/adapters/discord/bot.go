package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"bluebrain/internal/config"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ports/output"
	"bluebrain/internal/ready"
	"bluebrain/pkg/menu"
)

const intents = discordgo.IntentGuilds |
	discordgo.IntentGuildMembers |
	discordgo.IntentGuildMessages |
	discordgo.IntentGuildMessageReactions |
	discordgo.IntentDirectMessages |
	discordgo.IntentMessageContent

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
	ready   *ready.State
	log     *slog.Logger

	ctx    context.Context
	bootMu sync.Mutex
}

// NewBot creates the session and wires gateway events to the handler.
func NewBot(
	cfg *config.Config,
	svc Services,
	tr output.Translator,
	readiness *ready.State,
	version string,
	logLevel int,
	log *slog.Logger,
) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	s.Identify.Intents = intents
	s.StateEnabled = true
	s.LogLevel = logLevel

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: NewHandler(svc, tr, cfg, readiness, sessionState{s}, version, log),
		ready:   readiness,
		log:     log.With("logger", "bot"),
		ctx:     context.Background(),
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onGuildCreate)
	b.session.AddHandler(b.onGuildDelete)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onGuildMemberAdd)
	b.session.AddHandler(b.onReactionAdd)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("✅ connected to Discord", "user", r.User.String(), "latency", s.HeartbeatLatency(), "guilds", len(r.Guilds))
	b.boot(r.Guilds)
	b.handler.announce(b.ctx, s, infoEmoji+" "+b.handler.tr.T(b.config.DefaultLocale, "hub.online", map[string]any{"Version": b.handler.version}))
	b.handler.setPresence(s)
}

// boot syncs the guild table and marks the bot ready. It runs on every
// READY until one sync succeeds, so a reconnect retries a failed boot.
func (b *Bot) boot(guilds []*discordgo.Guild) {
	b.bootMu.Lock()
	defer b.bootMu.Unlock()
	if b.ready.Booted() {
		return
	}
	present := make([]input.GuildRef, 0, len(guilds))
	for _, g := range guilds {
		present = append(present, input.GuildRef{ID: g.ID, Name: g.Name})
	}
	if _, _, err := b.handler.svc.Guilds.Sync(b.ctx, present); err != nil {
		b.log.Error("❌ database sync failed", tint.Err(err))
		return
	}
	b.ready.SetSynced(true)
	for _, ext := range Extensions() {
		b.ready.Up(ext)
	}
	b.ready.SetBooted(true)
	b.log.Info("✅ bot booted", "ready", b.ready.String())
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.handler.HandleGuildJoin(b.ctx, s, g.Guild)
}

func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	name := ""
	if g.BeforeDelete != nil {
		name = g.BeforeDelete.Name
	}
	b.handler.HandleGuildLeave(b.ctx, s, g.ID, name)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.handler.HandleMessage(b.ctx, s, m.Message)
}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	b.handler.HandleMemberJoin(b.ctx, s, m.Member)
}

func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if me := s.State.User; me != nil && r.UserID == me.ID {
		return
	}
	b.handler.HandleGateReaction(b.ctx, s, menu.ReactionFromEvent(r))
}

// Start runs the bot until interrupted, ctx is cancelled or an owner asks
// for a shutdown.
func (b *Bot) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	b.ctx = ctx
	b.handler.stop = stop

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}

	go b.handler.RunScheduledTasks(ctx, b.session)

	b.log.Info("🤖 bot online, press CTRL+C to quit")
	<-ctx.Done()

	b.shutdown()
	return nil
}

func (b *Bot) shutdown() {
	b.log.Info("shutting down")
	b.handler.announce(context.Background(), b.session, infoEmoji+" "+b.handler.tr.T(b.config.DefaultLocale, "hub.shutdown", map[string]any{"Version": b.handler.version}))
	b.ready.Teardown()
	if err := b.session.Close(); err != nil {
		b.log.Warn("closing session", tint.Err(err))
	}
	b.log.Info("✅ connection to Discord closed")
}
