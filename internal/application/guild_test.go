package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluebrain/internal/domain"
	"bluebrain/internal/ports/input"
)

func TestGuildJoinIsIdempotent(t *testing.T) {
	f := newFixture(t)
	created, err := f.guilds.Join(context.Background(), input.GuildRef{ID: guildID})
	require.NoError(t, err)
	assert.False(t, created)

	g, err := f.guilds.Get(context.Background(), guildID)
	require.NoError(t, err)
	assert.Equal(t, "+", g.Prefix)
	assert.Equal(t, "en", g.Locale)
}

func TestGuildSync(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.guilds.Join(ctx, input.GuildRef{ID: "gone"})
	require.NoError(t, err)

	added, removed, err := f.guilds.Sync(ctx, []input.GuildRef{{ID: guildID}, {ID: "new"}})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)

	ids, _ := memGuilds{f.store}.ListIDs(ctx)
	assert.Equal(t, []string{guildID, "new"}, ids)
}

func TestGuildPrefixAndLocale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	assert.Equal(t, "+", f.guilds.Prefix(ctx, "unknown"))
	assert.Equal(t, "en", f.guilds.Locale(ctx, ""))

	require.NoError(t, f.config.Set(ctx, guildID, "system", "prefix", "bb!"))
	require.NoError(t, f.config.Set(ctx, guildID, "SYSTEM", "locale", "FR"))
	assert.Equal(t, "bb!", f.guilds.Prefix(ctx, guildID))
	assert.Equal(t, "fr", f.guilds.Locale(ctx, guildID))
}

func TestGuildCompleteSetup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, err := f.guilds.CompleteSetup(ctx, guildID, "200000000000000002")
	require.NoError(t, err)
	assert.True(t, g.SetupComplete)
	assert.Equal(t, "200000000000000002", g.LogChannelID)

	_, err = f.guilds.CompleteSetup(ctx, guildID, "200000000000000002")
	assert.ErrorIs(t, err, domain.ErrSetupComplete)
}

func TestConfigSetAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		module, attr, value, want string
		err                       error
	}{
		{"warn", "maxpoints", "20", "20", nil},
		{"warn", "maxpoints", "101", "", domain.ErrMaxPointsRange},
		{"warn", "maxpoints", "many", "", domain.ErrInvalidValue},
		{"warn", "maxstrikes", "5", "5", nil},
		{"warn", "retroupdates", "yes", "on", nil},
		{"warn", "retroupdates", "maybe", "", domain.ErrInvalidValue},
		{"gateway", "ruleschannel", "300000000000000003", "300000000000000003", nil},
		{"gateway", "blockingrole", "#general", "", domain.ErrInvalidValue},
		{"gateway", "gatetext", "Read the rules.", "Read the rules.", nil},
		{"system", "prefix", "a b", "", domain.ErrPrefixInvalid},
		{"system", "locale", "de", "", domain.ErrLocaleInvalid},
		{"gateway", "_gatemessage", "1", "", domain.ErrUnknownAttribute},
		{"nope", "prefix", "!", "", domain.ErrUnknownModule},
		{"system", "colour", "red", "", domain.ErrUnknownAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.module+"."+tt.attr+"="+tt.value, func(t *testing.T) {
			err := f.config.Set(ctx, guildID, tt.module, tt.attr, tt.value)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			got, err := f.config.Get(ctx, guildID, tt.module, tt.attr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorRecordAndRecall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.errors.Record(ctx, "boom", "goroutine 1 [running]")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Ref)

	got, err := f.errors.Recall(ctx, rec.Ref)
	require.NoError(t, err)
	assert.Equal(t, "boom", got.Cause)

	_, err = f.errors.Recall(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrErrorNotFound)
}
