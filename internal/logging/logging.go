package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

// NameKey is the attribute naming the component a logger belongs to.
const NameKey = "logger"

var discordGoLogLevels = map[int]slog.Level{
	discordgo.LogDebug:         slog.LevelDebug,
	discordgo.LogError:         slog.LevelError,
	discordgo.LogWarning:       slog.LevelWarn,
	discordgo.LogInformational: slog.LevelInfo,
}

// ParseLevel accepts debug, info, warn and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q: %w", s, err)
	}
	return level, nil
}

// NewHandler returns the tint console handler used across the bot.
func NewHandler(w io.Writer, level slog.Leveler, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  level.Level() <= slog.LevelDebug,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    noColor,
	})
}

// New builds a logger writing to w at the named level.
func New(w io.Writer, level string, noColor bool) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(NewHandler(w, lvl, noColor)), nil
}

// Named returns a child logger tagged with the component name.
func Named(log *slog.Logger, name string) *slog.Logger {
	return log.With(NameKey, name)
}

// Err wraps an error as a log attribute.
func Err(err error) slog.Attr {
	return tint.Err(err)
}

// DiscordgoLogger adapts handler into discordgo's package-level Logger signature.
func DiscordgoLogger(ctx context.Context, handler slog.Handler) func(msgL, caller int, format string, a ...any) {
	log := slog.New(handler).With(NameKey, "discordgo")
	return func(msgL int, _ int, format string, a ...any) {
		level, ok := discordGoLogLevels[msgL]
		if !ok {
			level = slog.LevelInfo
		}
		log.Log(ctx, level, strings.ReplaceAll(fmt.Sprintf(format, a...), "\n", ""))
	}
}

// DiscordgoLogLevel maps a slog level to the closest discordgo log level.
func DiscordgoLogLevel(level slog.Level) int {
	switch {
	case level <= slog.LevelDebug:
		return discordgo.LogDebug
	case level <= slog.LevelInfo:
		return discordgo.LogInformational
	case level <= slog.LevelWarn:
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}
