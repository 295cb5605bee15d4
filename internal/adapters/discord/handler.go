package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"bluebrain/internal/config"
	"bluebrain/internal/domain"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ports/output"
	"bluebrain/internal/ready"
	"bluebrain/pkg/chron"
	pkgdiscord "bluebrain/pkg/discord"
	"bluebrain/pkg/menu"
)

// errUsage makes the router answer with the command's syntax.
var errUsage = errors.New("discord: invalid command usage")

// replyError ends a command with a translated failure message.
type replyError struct {
	key  string
	data map[string]any
}

func (e *replyError) Error() string { return "discord: " + e.key }

func fail(key string, data map[string]any) error {
	return &replyError{key: key, data: data}
}

// Services are the use cases the handlers drive.
type Services struct {
	Guilds  input.GuildUseCase
	Config  input.ConfigUseCase
	Errors  input.ErrorUseCase
	Tags    input.TagUseCase
	Warns   input.WarnUseCase
	Gateway input.GatewayUseCase
}

// Handler turns gateway events into use case calls.
type Handler struct {
	svc     Services
	tr      output.Translator
	cfg     *config.Config
	ready   *ready.State
	state   State
	router  *Router
	emoji   menu.EmojiSet
	version string
	started time.Time
	log     *slog.Logger
	now     func() time.Time

	presence presence
	// stop asks the bot to shut down.
	stop func()
}

// NewHandler creates a Handler with every extension registered.
func NewHandler(
	svc Services,
	tr output.Translator,
	cfg *config.Config,
	readiness *ready.State,
	state State,
	version string,
	log *slog.Logger,
) *Handler {
	h := &Handler{
		svc:     svc,
		tr:      tr,
		cfg:     cfg,
		ready:   readiness,
		state:   state,
		emoji:   menu.DefaultEmoji(),
		version: version,
		started: time.Now(),
		log:     log.With("logger", "commands"),
		now:     time.Now,
		stop:    func() {},
	}
	h.router = NewRouter(h.extensions()...)
	return h
}

// Extensions are the names tracked by the readiness state.
func Extensions() []string {
	return []string{"admin", "error", "gateway", "help", "hub", "meta", "modules", "system", "tags", "warn"}
}

func (h *Handler) extensions() []*Extension {
	return []*Extension{
		h.adminExtension(),
		h.errorExtension(),
		h.helpExtension(),
		h.metaExtension(),
		h.modulesExtension(),
		h.systemExtension(),
		h.tagsExtension(),
		h.warnExtension(),
	}
}

func (h *Handler) Router() *Router { return h.router }

// limits feeds the constants quoted by validation messages.
var limits = map[string]any{
	"MinPoints":     domain.MinPoints,
	"MaxPoints":     domain.MaxPoints,
	"MaxTagName":    domain.MaxTagNameLength,
	"MaxTagContent": domain.MaxTagContentLength,
	"MaxWarnType":   domain.MaxWarnTypeLength,
	"MaxWarnTypes":  domain.MaxWarnTypes,
	"MaxComment":    domain.MaxCommentLength,
	"MaxMaxPoints":  domain.MaxMaxPoints,
	"MaxMaxStrikes": domain.MaxMaxStrikes,
	"MaxPrefix":     domain.MaxPrefixLength,
	"MaxGateText":   domain.MaxGateTextLength,
	"Locales":       strings.Join(domain.SupportedLocales, ", "),
}

func (h *Handler) prefix(ctx context.Context, guildID string) string {
	if guildID == "" {
		return h.cfg.DefaultPrefix
	}
	return h.svc.Guilds.Prefix(ctx, guildID)
}

func (h *Handler) locale(ctx context.Context, guildID string) string {
	if guildID == "" {
		return h.cfg.DefaultLocale
	}
	return h.svc.Guilds.Locale(ctx, guildID)
}

// stripPrefix removes the guild prefix or a bot mention from content.
func stripPrefix(content, prefix, botID string) (string, bool) {
	if botID != "" {
		for _, m := range []string{"<@" + botID + ">", "<@!" + botID + ">"} {
			if strings.HasPrefix(content, m) {
				return strings.TrimSpace(content[len(m):]), true
			}
		}
	}
	if prefix != "" && strings.HasPrefix(content, prefix) {
		return content[len(prefix):], true
	}
	return "", false
}

// HandleMessage dispatches a message to its command, if any.
func (h *Handler) HandleMessage(ctx context.Context, s Session, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot || strings.TrimSpace(m.Content) == "" {
		return
	}
	if h.hubCommand(m) {
		return
	}

	botID := ""
	if me := h.state.Me(); me != nil {
		botID = me.ID
	}
	prefix := h.prefix(ctx, m.GuildID)
	text, ok := stripPrefix(m.Content, prefix, botID)
	if !ok {
		return
	}
	cmd, args, raw := h.router.Resolve(text)
	if cmd == nil {
		return
	}

	locale := h.locale(ctx, m.GuildID)
	if m.GuildID == "" {
		_, _ = s.ChannelMessageSend(m.ChannelID, crossEmoji+" "+h.tr.T(locale, "error.dm_unsupported", nil), discordgo.WithContext(ctx))
		return
	}

	c := &Context{
		Session: s,
		Message: m,
		Member:  m.Member,
		Command: cmd,
		Args:    args,
		Raw:     raw,
		Prefix:  prefix,
		Locale:  locale,
		h:       h,
	}
	if key, data := h.check(ctx, c); key != "" {
		if err := c.Failure(ctx, key, data); err != nil {
			c.logger().Warn("check reply failed", tint.Err(err))
		}
		return
	}
	if cmd.Run == nil {
		h.handleError(ctx, c, errUsage)
		return
	}

	if err := h.execute(ctx, c); err != nil {
		h.handleError(ctx, c, err)
	}
}

// check runs the invocation checks and returns the failure message key.
func (h *Handler) check(ctx context.Context, c *Context) (string, map[string]any) {
	if !c.Command.SkipReady {
		if !h.ready.Booted() {
			return "error.not_booted", nil
		}
		if !h.ready.OK() {
			return "error.not_ready", nil
		}
	}
	if c.Command.OwnerOnly && !h.cfg.IsOwner(c.Author().ID) {
		return "error.owner_only", nil
	}
	if missing := h.missingPermissions(c.Session, c.Command, c.Author().ID, c.ChannelID()); missing != 0 {
		names := pkgdiscord.PermissionNames(missing)
		return "error.missing_user_permissions", map[string]any{
			"Permissions": pkgdiscord.ListOf(names, c.T("list.and", nil)),
			"Count":       len(names),
		}
	}
	if c.Command.RequiresSetup {
		if g, err := h.svc.Guilds.Get(ctx, c.GuildID()); err != nil || !g.SetupComplete {
			return "error.setup_required", map[string]any{"Prefix": c.Prefix}
		}
	}
	if cd := c.Command.cooldowns; cd != nil {
		if wait, ok := cd.take(c.Author().ID, h.now()); !ok {
			return "error.cooldown", map[string]any{"Delta": chron.LongDelta(max(wait.Round(time.Second), time.Second))}
		}
	}
	return "", nil
}

// missingPermissions reports the permission bits userID lacks for cmd.
func (h *Handler) missingPermissions(s Session, cmd *Command, userID, channelID string) int64 {
	if cmd.Permissions == 0 {
		return 0
	}
	have, err := s.UserChannelPermissions(userID, channelID)
	if err != nil {
		h.log.Warn("permission lookup failed", "user_id", userID, "channel_id", channelID, tint.Err(err))
		return cmd.Permissions
	}
	return pkgdiscord.Missing(have, cmd.Permissions)
}

// canRun tells whether userID passes the owner and permission checks.
func (h *Handler) canRun(s Session, cmd *Command, userID, channelID string) (bool, int64) {
	if cmd.OwnerOnly && !h.cfg.IsOwner(userID) {
		return false, 0
	}
	missing := h.missingPermissions(s, cmd, userID, channelID)
	return missing == 0, missing
}

// execute runs the command, turning a panic into an error.
func (h *Handler) execute(ctx context.Context, c *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	c.logger().Debug("running command", "args", c.Args)
	return c.Command.Run(ctx, c)
}

type panicError struct {
	value any
	stack []byte
}

func (p *panicError) Error() string { return fmt.Sprintf("panic: %v", p.value) }

func (h *Handler) handleError(ctx context.Context, c *Context, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if errors.Is(err, errUsage) {
		_ = c.Failure(ctx, "error.usage", map[string]any{"Syntax": fullSyntax(c.Command, c.Prefix), "Prefix": c.Prefix, "Command": c.Command.Path()})
		return
	}
	var re *replyError
	if errors.As(err, &re) {
		_ = c.Failure(ctx, re.key, re.data)
		return
	}
	if key := pkgdiscord.DomainErrorKey(err); key != "" {
		data := map[string]any{"Prefix": c.Prefix}
		for k, v := range limits {
			data[k] = v
		}
		_ = c.Failure(ctx, key, data)
		return
	}

	ref := h.recordError(ctx, c, err)
	c.logger().Error("❌ command failed", "ref", ref, tint.Err(err))
	_ = c.Failure(ctx, pkgdiscord.GenericErrorKey, map[string]any{"Ref": ref, "Prefix": c.Prefix})
	h.announce(ctx, c.Session, crossEmoji+" "+h.tr.T(h.cfg.DefaultLocale, "hub.error", map[string]any{"Ref": ref}))
}

// recordError stores err for recall and returns its reference.
func (h *Handler) recordError(ctx context.Context, c *Context, err error) string {
	cause := fmt.Sprintf("%s\n%s", c.Message.Content, c)
	trace := err.Error()
	var p *panicError
	if errors.As(err, &p) {
		trace += "\n\n" + string(p.stack)
	}
	rec, recErr := h.svc.Errors.Record(context.WithoutCancel(ctx), cause, trace)
	if recErr != nil {
		h.log.Error("❌ error could not be recorded", tint.Err(recErr))
		return domain.GenerateID(h.now())
	}
	return rec.Ref
}

// announce posts to the hub stdout channel when configured.
func (h *Handler) announce(ctx context.Context, s Session, content string) {
	if h.cfg.Hub.StdoutChannelID == "" {
		return
	}
	if _, err := s.ChannelMessageSend(h.cfg.Hub.StdoutChannelID, content, discordgo.WithContext(ctx)); err != nil {
		h.log.Warn("hub announcement failed", tint.Err(err))
	}
}

// fullSyntax renders "prefix name|alias usage", with the parent first
// for subcommands.
func fullSyntax(cmd *Command, prefix string) string {
	parts := []string{cmd.Invocations()}
	for p := cmd.parent; p != nil; p = p.parent {
		parts = append([]string{p.Invocations()}, parts...)
	}
	line := prefix + strings.Join(parts, " ")
	if cmd.Usage != "" {
		line += " " + cmd.Usage
	}
	return "```" + line + "```"
}
