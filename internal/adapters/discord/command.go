package discord

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/diamondburned/arikawa/v3/utils/bot/extras/shellwords"
	"golang.org/x/time/rate"
)

// Command is one prefix command. Subcommands are reached by their name
// as the first argument, e.g. "tags new".
type Command struct {
	Name    string
	Aliases []string
	// Doc is the one-line help text; Usage the argument signature.
	Doc   string
	Usage string

	// Permissions the author needs in the invoking channel.
	Permissions int64
	OwnerOnly   bool
	// Cooldown applies per user. Zero means none.
	Cooldown time.Duration
	// SkipReady lets the command run before the bot has booted.
	SkipReady bool
	// RequiresSetup blocks the command until the guild ran setup.
	RequiresSetup bool

	Subcommands []*Command
	Run         func(ctx context.Context, c *Context) error

	parent    *Command
	cooldowns *cooldowns
}

// Parent returns the command this one is nested under, if any.
func (cmd *Command) Parent() *Command { return cmd.parent }

// Path is the full invocation name, e.g. "tags new".
func (cmd *Command) Path() string {
	if cmd.parent == nil {
		return cmd.Name
	}
	return cmd.parent.Path() + " " + cmd.Name
}

// Invocations joins the name and aliases as "name|alias".
func (cmd *Command) Invocations() string {
	return strings.Join(append([]string{cmd.Name}, cmd.Aliases...), "|")
}

func (cmd *Command) matches(name string) bool {
	if strings.EqualFold(cmd.Name, name) {
		return true
	}
	for _, a := range cmd.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func (cmd *Command) sub(name string) *Command {
	for _, s := range cmd.Subcommands {
		if s.matches(name) {
			return s
		}
	}
	return nil
}

// Walk visits cmd and its subcommands depth first.
func (cmd *Command) Walk(fn func(*Command)) {
	fn(cmd)
	for _, s := range cmd.Subcommands {
		s.Walk(fn)
	}
}

// Extension groups commands under a help page. Extensions without a Doc
// are hidden from help.
type Extension struct {
	Name     string
	Doc      string
	Commands []*Command
}

// Router resolves message text to commands.
type Router struct {
	extensions []*Extension
	commands   []*Command
}

func NewRouter(exts ...*Extension) *Router {
	r := &Router{}
	for _, ext := range exts {
		r.Register(ext)
	}
	return r
}

func (r *Router) Register(ext *Extension) {
	r.extensions = append(r.extensions, ext)
	for _, cmd := range ext.Commands {
		link(cmd, nil)
		r.commands = append(r.commands, cmd)
	}
}

func link(cmd, parent *Command) {
	cmd.parent = parent
	if cmd.Cooldown > 0 {
		cmd.cooldowns = newCooldowns(cmd.Cooldown)
	}
	for _, s := range cmd.Subcommands {
		link(s, cmd)
	}
}

func (r *Router) Extensions() []*Extension { return r.extensions }

// Find returns the top-level command called name, or a subcommand when
// name is a path like "tags new".
func (r *Router) Find(name string) *Command {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return nil
	}
	var cmd *Command
	for _, c := range r.commands {
		if c.matches(parts[0]) {
			cmd = c
			break
		}
	}
	for _, p := range parts[1:] {
		if cmd == nil {
			return nil
		}
		cmd = cmd.sub(p)
	}
	return cmd
}

// Resolve finds the deepest command named by the leading words of text.
// It returns the command, its arguments and the raw text after the
// command path.
func (r *Router) Resolve(text string) (*Command, []string, string) {
	args := splitArgs(text)
	if len(args) == 0 {
		return nil, nil, ""
	}
	cmd := r.Find(args[0])
	if cmd == nil {
		return nil, nil, ""
	}
	depth := 1
	for depth < len(args) {
		s := cmd.sub(args[depth])
		if s == nil {
			break
		}
		cmd = s
		depth++
	}
	return cmd, args[depth:], cutFields(text, depth)
}

// splitArgs splits like a shell, honouring quotes and code blocks. On a
// quoting error it falls back to whitespace.
func splitArgs(text string) []string {
	args, err := shellwords.Parse(text)
	if err != nil {
		return strings.Fields(text)
	}
	return args
}

// cutFields drops the first n whitespace separated fields of s, keeping
// the remainder verbatim (newlines and markdown included).
func cutFields(s string, n int) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for i := 0; i < n && s != ""; i++ {
		end := fieldEnd(s)
		s = strings.TrimLeftFunc(s[end:], unicode.IsSpace)
	}
	return s
}

func fieldEnd(s string) int {
	if q := s[0]; q == '"' || q == '\'' {
		if i := strings.IndexByte(s[1:], q); i >= 0 {
			return i + 2
		}
	}
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return i
	}
	return len(s)
}

// cooldowns rate limits a command per user.
type cooldowns struct {
	per time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newCooldowns(per time.Duration) *cooldowns {
	return &cooldowns{per: per, limiters: map[string]*rate.Limiter{}}
}

// take consumes the user's token. It returns how long to wait when the
// user is still on cooldown.
func (c *cooldowns) take(userID string, now time.Time) (time.Duration, bool) {
	c.mu.Lock()
	lim, ok := c.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(c.per), 1)
		c.limiters[userID] = lim
	}
	c.mu.Unlock()

	res := lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return delay, false
	}
	return 0, true
}
