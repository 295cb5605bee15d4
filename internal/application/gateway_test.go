package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluebrain/internal/domain"
)

func TestGatewayActivation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.gateway.Activate(ctx, guildID)
	assert.ErrorIs(t, err, domain.ErrRulesChannelUnset)
	require.NoError(t, f.config.Set(ctx, guildID, "gateway", "ruleschannel", "300000000000000003"))
	_, err = f.gateway.Activate(ctx, guildID)
	assert.ErrorIs(t, err, domain.ErrBlockingRoleUnset)
	require.NoError(t, f.config.Set(ctx, guildID, "gateway", "blockingrole", "400000000000000004"))

	gw, err := f.gateway.Activate(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGatewayText, gw.GateText)

	require.NoError(t, f.gateway.SetGateMessage(ctx, guildID, "gate-msg"))
	_, err = f.gateway.Activate(ctx, guildID)
	assert.ErrorIs(t, err, domain.ErrModuleActive)

	_, admitted, err := f.gateway.Admit(ctx, guildID, "newbie")
	require.NoError(t, err)
	assert.True(t, admitted)

	_, pending, err := f.gateway.Resolve(ctx, "gate-msg", "stranger")
	require.NoError(t, err)
	assert.False(t, pending)

	gw, pending, err = f.gateway.Resolve(ctx, "gate-msg", "newbie")
	require.NoError(t, err)
	assert.True(t, pending)
	assert.Equal(t, "400000000000000004", gw.BlockingRoleID)

	_, pending, _ = f.gateway.Resolve(ctx, "gate-msg", "newbie")
	assert.False(t, pending, "an entrant resolves once")

	prior, err := f.gateway.Deactivate(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, "gate-msg", prior.GateMessageID)

	_, err = f.gateway.Deactivate(ctx, guildID)
	assert.ErrorIs(t, err, domain.ErrModuleInactive)

	_, admitted, err = f.gateway.Admit(ctx, guildID, "later")
	require.NoError(t, err)
	assert.False(t, admitted)
}
