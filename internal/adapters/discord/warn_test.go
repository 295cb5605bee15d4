package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluebrain/internal/domain/entities"
)

const testTarget = "300000000000000003"

func withMembers(x *harness) {
	x.s.members[testTarget] = &discordgo.Member{Nick: "target", User: &discordgo.User{ID: testTarget, Username: "target"}}
	x.s.members[testBot] = &discordgo.Member{User: &discordgo.User{ID: testBot, Username: "Blue Brain", Bot: true}}
}

func TestWarnWithPointsAndComment(t *testing.T) {
	x := newHarness(t)
	withMembers(x)
	x.warns.outcome = entities.WarnOutcome{Strikes: 2, MaxStrikes: 3, Points: 7, MaxPoints: 12}

	x.send(testOwner, "+warn <@"+testTarget+"> spam 4 posted the same link\nfive times")

	require.Len(t, x.warns.requests, 1)
	req := x.warns.requests[0]
	assert.Equal(t, testTarget, req.UserID)
	assert.Equal(t, testOwner, req.ModID)
	assert.Equal(t, "spam", req.Type)
	assert.Equal(t, 4, req.Points)
	assert.Equal(t, "posted the same link\nfive times", req.Comment)
	assert.Equal(t, testChannel+": warn.warned MaxPoints=12 MaxStrikes=3 Mention=<@"+testTarget+"> Ordinal=2nd Points=7 Type=spam", x.s.last())
}

func TestWarnSkipsBotsAndUnknownMembers(t *testing.T) {
	x := newHarness(t)
	withMembers(x)

	x.send(testOwner, "+warn <@"+testBot+"> 300000000000000008 spam")
	assert.Equal(t, []string{
		testChannel + ": ℹ️ warn.skip_bot Name=Blue Brain",
		testChannel + ": ❌ error.member_not_found",
	}, x.s.messages())
	assert.Empty(t, x.warns.requests)
}

func TestWarnBans(t *testing.T) {
	x := newHarness(t)
	withMembers(x)
	x.warns.outcome = entities.WarnOutcome{Strikes: 3, Ban: true, ByStrikes: true, BanReason: "3 strikes"}

	x.send(testOwner, "+warn "+testTarget+" spam")
	assert.Equal(t, []string{testTarget + ":3 strikes"}, x.s.bans)
	assert.Equal(t, testChannel+": ℹ️ warn.banned_strikes Name=target Ordinal=3rd", x.s.last())

	x.warns.outcome = entities.WarnOutcome{Strikes: 1, Ban: true, BanReason: "points"}
	x.send(testOwner, "+warn "+testTarget+" spam")
	assert.Equal(t, testChannel+": ℹ️ warn.banned_points Name=target Ordinal=1st", x.s.last())
}

func TestWarnArgumentErrors(t *testing.T) {
	x := newHarness(t)
	withMembers(x)

	x.send(testOwner, "+warn spam")
	assert.Contains(t, x.s.last(), "error.no_targets")

	x.send(testOwner, "+warn <@"+testTarget+">")
	assert.Contains(t, x.s.last(), "error.usage")

	x.send(testOwner, "+warn <@"+testTarget+"> rudeness")
	assert.Contains(t, x.s.last(), "error.warntype_not_found")

	x.send(testOwner, "+warn <@"+testTarget+"> spam 99")
	assert.Contains(t, x.s.last(), "error.points_out_of_range")
	assert.Contains(t, x.s.last(), "MaxPoints=20")

	assert.Empty(t, x.warns.requests)
}

func TestWarnNeedsKickMembers(t *testing.T) {
	x := newHarness(t)
	withMembers(x)
	x.s.perms[testUser] = discordgo.PermissionManageGuild

	x.send(testUser, "+warn <@"+testTarget+"> spam")
	assert.Equal(t, testChannel+": ❌ error.missing_user_permissions Count=1 Permissions=Kick Members", x.s.last())
}
