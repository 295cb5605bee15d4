package discord

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"bluebrain/internal/domain"
)

func TestDomainErrorKey(t *testing.T) {
	assert.Equal(t, "error.tag_not_found", DomainErrorKey(fmt.Errorf("get: %w", domain.ErrTagNotFound)))
	assert.Empty(t, DomainErrorKey(errors.New("boom")))
	assert.Empty(t, DomainErrorKey(nil))
}

func TestMentions(t *testing.T) {
	id := "123456789012345678"
	tests := []struct {
		name string
		fn   func(string) (string, bool)
		arg  string
		ok   bool
	}{
		{"user", UserID, "<@" + id + ">", true},
		{"nick", UserID, "<@!" + id + ">", true},
		{"raw user", UserID, id, true},
		{"role as user", UserID, "<@&" + id + ">", false},
		{"channel", ChannelID, "<#" + id + ">", true},
		{"role", RoleID, "<@&" + id + ">", true},
		{"name", ChannelID, "general", false},
		{"short", ChannelID, "1234", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(tt.arg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, id, got)
			}
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\*\*bold\*\* \_it\_ \<@1\>`, EscapeMarkdown("**bold** _it_ <@1>"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate(strings.Repeat("abcdefghij", 3), 10))
	assert.Equal(t, "éé", Truncate("ééé", 2))
}

func TestInviteURL(t *testing.T) {
	u := AdminInviteURL("42")
	assert.Equal(t, "https://discord.com/oauth2/authorize?client_id=42&permissions=8&scope=bot", u)
	assert.Contains(t, InviteURL("42", NonAdminPermissions), "permissions=")
	assert.NotZero(t, NonAdminPermissions&discordgo.PermissionKickMembers)
	assert.Zero(t, NonAdminPermissions&discordgo.PermissionAdministrator)
}

func TestMissingPermissions(t *testing.T) {
	required := int64(discordgo.PermissionKickMembers | discordgo.PermissionManageGuild)
	assert.Equal(t, int64(discordgo.PermissionManageGuild), Missing(discordgo.PermissionKickMembers, required))
	assert.Zero(t, Missing(discordgo.PermissionAdministrator, required))
	assert.Zero(t, Missing(required, required))
}

func TestPermissionNames(t *testing.T) {
	names := PermissionNames(discordgo.PermissionKickMembers | discordgo.PermissionManageRoles)
	assert.Equal(t, []string{"Manage Roles", "Kick Members"}, names)
	assert.Empty(t, PermissionNames(0))
}

func TestListOf(t *testing.T) {
	assert.Equal(t, "", ListOf(nil, "and"))
	assert.Equal(t, "a", ListOf([]string{"a"}, "and"))
	assert.Equal(t, "a and b", ListOf([]string{"a", "b"}, "and"))
	assert.Equal(t, "a, b et c", ListOf([]string{"a", "b", "c"}, "et"))
}
