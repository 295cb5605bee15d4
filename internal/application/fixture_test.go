package application

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"bluebrain/internal/ports/input"
)

const guildID = "100000000000000001"

type fixture struct {
	store   *memStore
	guilds  *GuildService
	tags    *TagService
	warns   *WarnService
	config  *ConfigService
	gateway *GatewayService
	errors  *ErrorService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		store:   store,
		guilds:  NewGuildService(memGuilds{store}, "+", "en", log),
		tags:    NewTagService(memTags{store}),
		warns:   NewWarnService(memWarns{store}),
		config:  NewConfigService(memGuilds{store}, memWarns{store}, memGateways{store}),
		gateway: NewGatewayService(memGateways{store}),
		errors:  NewErrorService(memErrors{store}),
	}
	f.tags.now = store.tick
	f.warns.now = store.tick
	f.gateway.now = store.tick
	f.errors.now = store.tick

	_, err := f.guilds.Join(context.Background(), input.GuildRef{ID: guildID, Name: "Test"})
	require.NoError(t, err)
	return f
}
