package discord

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"bluebrain/internal/config"
	"bluebrain/internal/domain"
	"bluebrain/internal/domain/entities"
	"bluebrain/internal/ports/input"
	"bluebrain/internal/ready"
)

const (
	testGuild   = "100000000000000001"
	testChannel = "200000000000000001"
	testOwner   = "300000000000000001"
	testUser    = "300000000000000002"
	testBot     = "300000000000000009"
	testRole    = "400000000000000001"
)

// fakeSession records what handlers send to Discord.
type fakeSession struct {
	mu       sync.Mutex
	sent     []string
	embeds   []*discordgo.MessageEmbed
	edits    []string
	files    []*discordgo.File
	deleted  []string
	reacted  []string
	removed  []string
	roleAdds []string
	roleRems []string
	kicks    []string
	bans     []string
	nextID   int

	perms    map[string]int64
	permErr  error
	roles    []*discordgo.Role
	channels map[string]*discordgo.Channel
	members  map[string]*discordgo.Member
	latency  time.Duration
	status   string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		perms:    map[string]int64{},
		channels: map[string]*discordgo.Channel{},
		members:  map[string]*discordgo.Member{},
		latency:  42 * time.Millisecond,
	}
}

func (f *fakeSession) message(channelID string) *discordgo.Message {
	f.nextID++
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", f.nextID), ChannelID: channelID}
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds = append(f.embeds, embed)
	return f.message(channelID), nil
}

func (f *fakeSession) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds = append(f.embeds, embed)
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
	f.reacted = append(f.reacted, emojiID)
	return nil
}

func (f *fakeSession) MessageReactionsRemoveAll(_, _ string, _ ...discordgo.RequestOption) error {
	return nil
}

func (f *fakeSession) AddHandler(interface{}) func() { return func() {} }

func (f *fakeSession) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, channelID+": "+content)
	return f.message(channelID), nil
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if data.Content != "" {
		f.sent = append(f.sent, channelID+": "+data.Content)
	}
	f.files = append(f.files, data.Files...)
	return f.message(channelID), nil
}

func (f *fakeSession) ChannelMessageEdit(channelID, messageID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, content)
	return &discordgo.Message{ID: messageID, ChannelID: channelID}, nil
}

func (f *fakeSession) MessageReactionRemove(_, _, emojiID, userID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, userID+":"+emojiID)
	return nil
}

func (f *fakeSession) GuildMemberRoleAdd(_, userID, roleID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleAdds = append(f.roleAdds, userID+":"+roleID)
	return nil
}

func (f *fakeSession) GuildMemberRoleRemove(_, userID, roleID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleRems = append(f.roleRems, userID+":"+roleID)
	return nil
}

func (f *fakeSession) GuildMemberDeleteWithReason(_, userID, reason string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kicks = append(f.kicks, userID+":"+reason)
	return nil
}

func (f *fakeSession) GuildBanCreateWithReason(_, userID, reason string, _ int, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bans = append(f.bans, userID+":"+reason)
	return nil
}

func (f *fakeSession) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.members[userID]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("unknown member %s", userID)
}

func (f *fakeSession) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.channels[channelID]; ok {
		return ch, nil
	}
	return nil, fmt.Errorf("unknown channel %s", channelID)
}

func (f *fakeSession) GuildRoles(string, ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roles, nil
}

func (f *fakeSession) UserChannelPermissions(userID, _ string, _ ...discordgo.RequestOption) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.permErr != nil {
		return 0, f.permErr
	}
	return f.perms[userID], nil
}

func (f *fakeSession) HeartbeatLatency() time.Duration { return f.latency }

func (f *fakeSession) UpdateWatchStatus(_ int, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = name
	return nil
}

func (f *fakeSession) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeSession) last() string {
	msgs := f.messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

type fakeState struct {
	me     *discordgo.User
	guilds int
}

func (s fakeState) Me() *discordgo.User { return s.me }
func (s fakeState) GuildCount() int     { return s.guilds }

// keyTranslator renders "key" or "key map[...]" so tests can assert on
// which message was chosen and with what data.
type keyTranslator struct{}

func (keyTranslator) T(_ string, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	parts := make([]string, 0, len(data))
	for k, v := range data {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts)
	return key + " " + strings.Join(parts, " ")
}

func (t keyTranslator) N(locale, key string, count int, data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	data["Count"] = count
	return t.T(locale, key, data)
}

type fakeGuilds struct {
	mu      sync.Mutex
	guilds  map[string]*entities.Guild
	joined  []string
	left    []string
	synced  []input.GuildRef
	syncs   int
	syncErr error
}

func (g *fakeGuilds) Join(_ context.Context, ref input.GuildRef) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.guilds[ref.ID]; ok {
		return false, nil
	}
	g.guilds[ref.ID] = &entities.Guild{GuildID: ref.ID, Name: ref.Name, Prefix: "+", Locale: "en"}
	g.joined = append(g.joined, ref.ID)
	return true, nil
}

func (g *fakeGuilds) Leave(_ context.Context, guildID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.guilds, guildID)
	g.left = append(g.left, guildID)
	return nil
}

func (g *fakeGuilds) Sync(_ context.Context, present []input.GuildRef) (int, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.syncs++
	if g.syncErr != nil {
		return 0, 0, g.syncErr
	}
	g.synced = present
	return len(present), 0, nil
}

func (g *fakeGuilds) Get(_ context.Context, guildID string) (*entities.Guild, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gd, ok := g.guilds[guildID]; ok {
		cp := *gd
		return &cp, nil
	}
	return nil, domain.ErrGuildNotFound
}

func (g *fakeGuilds) Prefix(ctx context.Context, guildID string) string {
	if gd, err := g.Get(ctx, guildID); err == nil {
		return gd.Prefix
	}
	return "+"
}

func (g *fakeGuilds) Locale(context.Context, string) string { return "en" }

func (g *fakeGuilds) CompleteSetup(_ context.Context, guildID, logChannelID string) (*entities.Guild, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	gd, ok := g.guilds[guildID]
	if !ok {
		return nil, domain.ErrGuildNotFound
	}
	if gd.SetupComplete {
		return nil, domain.ErrSetupComplete
	}
	gd.SetupComplete, gd.LogChannelID = true, logChannelID
	cp := *gd
	return &cp, nil
}

type fakeConfig struct {
	values map[string]string
}

func (c *fakeConfig) Set(_ context.Context, _, module, attribute, value string) error {
	c.values[module+"."+attribute] = value
	return nil
}

func (c *fakeConfig) Get(_ context.Context, _, module, attribute string) (string, error) {
	return c.values[module+"."+attribute], nil
}

type fakeErrors struct {
	mu      sync.Mutex
	records map[string]*entities.ErrorRecord
}

func (e *fakeErrors) Record(_ context.Context, cause, traceback string) (*entities.ErrorRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec := &entities.ErrorRecord{Ref: fmt.Sprintf("ref%d", len(e.records)+1), Cause: cause, Traceback: traceback, Time: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	e.records[rec.Ref] = rec
	return rec, nil
}

func (e *fakeErrors) Recall(_ context.Context, ref string) (*entities.ErrorRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if rec, ok := e.records[ref]; ok {
		return rec, nil
	}
	return nil, domain.ErrErrorNotFound
}

type fakeTags struct {
	tags []entities.Tag
}

func (f *fakeTags) find(name string) (*entities.Tag, []string) {
	var suggestions []string
	for i := range f.tags {
		if f.tags[i].Name == name {
			return &f.tags[i], nil
		}
		if f.tags[i].Name[0] == name[0] {
			suggestions = append(suggestions, f.tags[i].Name)
		}
	}
	return nil, suggestions
}

func (f *fakeTags) Show(_ context.Context, _, name string) (*entities.Tag, []string, error) {
	t, suggestions := f.find(name)
	if t == nil {
		return nil, suggestions, domain.ErrTagNotFound
	}
	return t, nil, nil
}

func (f *fakeTags) Create(_ context.Context, guildID, ownerID, name, content string) (*entities.Tag, error) {
	if t, _ := f.find(name); t != nil {
		return nil, domain.ErrTagExists
	}
	if err := domain.ValidateTagName(name); err != nil {
		return nil, err
	}
	f.tags = append(f.tags, entities.Tag{GuildID: guildID, OwnerID: ownerID, ID: "t1", Name: name, Content: content})
	return &f.tags[len(f.tags)-1], nil
}

func (f *fakeTags) Edit(_ context.Context, _, userID, name, content string) error {
	t, _ := f.find(name)
	if t == nil {
		return domain.ErrTagNotFound
	}
	if t.OwnerID != userID {
		return domain.ErrNotTagOwner
	}
	t.Content = content
	return nil
}

func (f *fakeTags) Delete(context.Context, string, string, string) error { return nil }

func (f *fakeTags) List(context.Context, string) ([]entities.Tag, error) { return f.tags, nil }

func (f *fakeTags) ListByOwner(_ context.Context, _, ownerID string) ([]entities.Tag, error) {
	var out []entities.Tag
	for _, t := range f.tags {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeWarns struct {
	mu       sync.Mutex
	requests []input.WarnRequest
	outcome  entities.WarnOutcome
}

func (w *fakeWarns) Check(_ context.Context, req input.WarnRequest) error {
	if req.Type != "spam" {
		return domain.ErrWarnTypeNotFound
	}
	return nil
}

func (w *fakeWarns) Warn(_ context.Context, req input.WarnRequest) (*entities.WarnOutcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.requests = append(w.requests, req)
	out := w.outcome
	return &out, nil
}

func (w *fakeWarns) Remove(context.Context, string, string) error { return nil }
func (w *fakeWarns) Reset(context.Context, string, string) error  { return nil }
func (w *fakeWarns) List(context.Context, string, string) ([]entities.Warn, int, error) {
	return nil, 0, nil
}
func (w *fakeWarns) Types(context.Context, string) ([]entities.WarnType, error)  { return nil, nil }
func (w *fakeWarns) CreateType(context.Context, string, string, int) error       { return nil }
func (w *fakeWarns) EditType(context.Context, string, string, string, int) error { return nil }
func (w *fakeWarns) DeleteType(context.Context, string, string) error            { return nil }

type fakeGateway struct {
	mu       sync.Mutex
	gw       entities.Gateway
	entrants map[string]bool
}

func (g *fakeGateway) Get(context.Context, string) (*entities.Gateway, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := g.gw
	return &cp, nil
}

func (g *fakeGateway) Activate(context.Context, string) (*entities.Gateway, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gw.Active {
		return nil, domain.ErrModuleActive
	}
	cp := g.gw
	if cp.GateText == "" {
		cp.GateText = domain.DefaultGatewayText
	}
	return &cp, nil
}

func (g *fakeGateway) SetGateMessage(_ context.Context, _, messageID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gw.GateMessageID, g.gw.Active = messageID, true
	return nil
}

func (g *fakeGateway) Deactivate(context.Context, string) (*entities.Gateway, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.gw.Active {
		return nil, domain.ErrModuleInactive
	}
	prior := g.gw
	g.gw.Active, g.gw.GateMessageID = false, ""
	return &prior, nil
}

func (g *fakeGateway) Admit(_ context.Context, _, userID string) (*entities.Gateway, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := g.gw
	if !g.gw.Active {
		return &cp, false, nil
	}
	g.entrants[userID] = true
	return &cp, true, nil
}

func (g *fakeGateway) Resolve(_ context.Context, messageID, userID string) (*entities.Gateway, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if messageID != g.gw.GateMessageID {
		return nil, false, domain.ErrGuildNotFound
	}
	cp := g.gw
	ok := g.entrants[userID]
	delete(g.entrants, userID)
	return &cp, ok, nil
}

type harness struct {
	h       *Handler
	s       *fakeSession
	guilds  *fakeGuilds
	config  *fakeConfig
	errors  *fakeErrors
	tags    *fakeTags
	warns   *fakeWarns
	gateway *fakeGateway
	ready   *ready.State
	stopped bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.Config{
		Token:           "token",
		DefaultPrefix:   "+",
		DefaultLocale:   "en",
		OwnerID:         testOwner,
		SourceURL:       config.DefaultSourceURL,
		MenuTimeout:     time.Second,
		HelpMenuTimeout: time.Second,
		Hub:             config.Hub{GuildID: "hubguild", CommandsChannelID: "hubcmds", StdoutChannelID: "hubout"},
	}
	x := &harness{
		s:       newFakeSession(),
		guilds:  &fakeGuilds{guilds: map[string]*entities.Guild{testGuild: {GuildID: testGuild, Name: "Test", Prefix: "+", Locale: "en", SetupComplete: true, LogChannelID: "logs"}}},
		config:  &fakeConfig{values: map[string]string{}},
		errors:  &fakeErrors{records: map[string]*entities.ErrorRecord{}},
		tags:    &fakeTags{},
		warns:   &fakeWarns{},
		gateway: &fakeGateway{gw: entities.Gateway{GuildID: testGuild}, entrants: map[string]bool{}},
		ready:   ready.New(Extensions()...),
	}
	svc := Services{Guilds: x.guilds, Config: x.config, Errors: x.errors, Tags: x.tags, Warns: x.warns, Gateway: x.gateway}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	x.h = NewHandler(svc, keyTranslator{}, cfg, x.ready, fakeState{me: &discordgo.User{ID: testBot, Username: "Blue Brain"}, guilds: 3}, "1.0.0", log)
	x.h.stop = func() { x.stopped = true }

	x.ready.SetSynced(true)
	for _, ext := range Extensions() {
		x.ready.Up(ext)
	}
	x.ready.SetBooted(true)
	x.s.perms[testOwner] = discordgo.PermissionAdministrator
	x.s.perms[testBot] = discordgo.PermissionAdministrator
	return x
}

// send dispatches a guild message from userID and waits for the handler.
func (x *harness) send(userID, content string) {
	x.h.HandleMessage(context.Background(), x.s, &discordgo.Message{
		ID:        "m1",
		GuildID:   testGuild,
		ChannelID: testChannel,
		Content:   content,
		Author:    &discordgo.User{ID: userID, Username: "user" + userID[len(userID)-1:]},
		Member:    &discordgo.Member{Nick: "nick"},
	})
}

func requireSent(t *testing.T, s *fakeSession, substr string) {
	t.Helper()
	for _, m := range s.messages() {
		if strings.Contains(m, substr) {
			return
		}
	}
	require.Failf(t, "message not sent", "want %q in %q", substr, s.messages())
}
