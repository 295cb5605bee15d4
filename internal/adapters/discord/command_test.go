package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *Router {
	return NewRouter(&Extension{Name: "test", Commands: []*Command{
		{Name: "tag", Usage: "<tag name>"},
		{Name: "tags", Subcommands: []*Command{
			{Name: "new", Usage: "<tag name> <content>"},
			{Name: "delete", Aliases: []string{"del"}},
		}},
		{Name: "source", Aliases: []string{"src"}},
	}})
}

func TestRouterResolve(t *testing.T) {
	r := testRouter()

	tests := []struct {
		name string
		text string
		path string
		args []string
		raw  string
	}{
		{"top level", "tag faq", "tag", []string{"faq"}, "faq"},
		{"alias", "SRC", "source", []string{}, ""},
		{"subcommand", "tags new faq **Read** the\nrules", "tags new", []string{"faq", "**Read**", "the", "rules"}, "faq **Read** the\nrules"},
		{"subcommand alias", "tags del faq", "tags delete", []string{"faq"}, "faq"},
		{"unknown subcommand stays on parent", "tags nope", "tags", []string{"nope"}, "nope"},
		{"quoted argument", `tags new "two words" text`, "tags new", []string{"two words", "text"}, `"two words" text`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, raw := r.Resolve(tt.text)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.path, cmd.Path())
			assert.ElementsMatch(t, tt.args, args)
			assert.Equal(t, tt.raw, raw)
		})
	}

	cmd, _, _ := r.Resolve("nope")
	assert.Nil(t, cmd)
	cmd, _, _ = r.Resolve("")
	assert.Nil(t, cmd)
}

func TestRouterFind(t *testing.T) {
	r := testRouter()
	assert.Equal(t, "tags delete", r.Find("tags del").Path())
	assert.Equal(t, "tags", r.Find("tags").Path())
	assert.Nil(t, r.Find("tags nope"))
	assert.Nil(t, r.Find("nope new"))
	assert.Nil(t, r.Find(""))
	assert.Equal(t, "tags", r.Find("tags new").Parent().Name)
}

func TestSplitArgsFallsBackOnBadQuotes(t *testing.T) {
	assert.Equal(t, []string{"tags", "new", `"open`, "quote"}, splitArgs(`tags new "open quote`))
}

func TestCutFields(t *testing.T) {
	assert.Equal(t, "b c", cutFields("a b c", 1))
	assert.Equal(t, "c\n  d", cutFields("  a   b c\n  d", 2))
	assert.Equal(t, "rest", cutFields(`"a b" rest`, 1))
	assert.Equal(t, "", cutFields("a", 3))
}

func TestCooldowns(t *testing.T) {
	cd := newCooldowns(10 * time.Second)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, ok := cd.take("a", now)
	assert.True(t, ok)

	wait, ok := cd.take("a", now.Add(4*time.Second))
	assert.False(t, ok)
	assert.InDelta(t, float64(6*time.Second), float64(wait), float64(time.Millisecond))

	_, ok = cd.take("b", now)
	assert.True(t, ok, "cooldowns are per user")

	_, ok = cd.take("a", now.Add(11*time.Second))
	assert.True(t, ok)
}

func TestArgumentSummary(t *testing.T) {
	x := newHarness(t)
	assert.Equal(t, "<members...> • <warn type> • [points] • [comment]", argumentSummary(x.h.router.Find("warn").Usage, "none"))
	assert.Equal(t, "none", argumentSummary(x.h.router.Find("ping").Usage, "none"))
}
