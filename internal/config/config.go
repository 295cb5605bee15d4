package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"bluebrain/internal/domain"
)

const (
	DefaultDatabaseURL     = "postgres://localhost:5432/bluebrain?sslmode=disable"
	DefaultMigrationsPath  = "migrations"
	DefaultPrefix          = "+"
	DefaultLocale          = "en"
	DefaultLogLevel        = "info"
	DefaultMenuTimeout     = 300 * time.Second
	DefaultHelpMenuTimeout = 120 * time.Second
	DefaultSourceURL       = "https://github.com/parafoxia/Solaris"
)

// Hub groups the channels of the bot's home guild.
type Hub struct {
	GuildID           string
	CommandsChannelID string
	RelayChannelID    string
	StdoutChannelID   string
}

type Config struct {
	Token           string
	DatabaseURL     string
	MigrationsPath  string
	DefaultPrefix   string
	DefaultLocale   string
	OwnerID         string
	Hub             Hub
	SupportURL      string
	SourceURL       string
	StatusAddr      string
	LogLevel        string
	MenuTimeout     time.Duration
	HelpMenuTimeout time.Duration
}

// Load reads .env, the environment and an optional config file, then validates the result.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (Docker, CI, ...).
	}

	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	return FromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("token", "")
	v.SetDefault("database_url", DefaultDatabaseURL)
	v.SetDefault("migrations_path", DefaultMigrationsPath)
	v.SetDefault("default_prefix", DefaultPrefix)
	v.SetDefault("default_locale", DefaultLocale)
	v.SetDefault("owner_id", "")
	v.SetDefault("hub_guild_id", "")
	v.SetDefault("hub_commands_channel_id", "")
	v.SetDefault("hub_relay_channel_id", "")
	v.SetDefault("hub_stdout_channel_id", "")
	v.SetDefault("support_url", "")
	v.SetDefault("source_url", DefaultSourceURL)
	v.SetDefault("status_addr", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("menu_timeout", DefaultMenuTimeout)
	v.SetDefault("help_menu_timeout", DefaultHelpMenuTimeout)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Token:          v.GetString("token"),
		DatabaseURL:    v.GetString("database_url"),
		MigrationsPath: v.GetString("migrations_path"),
		DefaultPrefix:  v.GetString("default_prefix"),
		DefaultLocale:  v.GetString("default_locale"),
		OwnerID:        v.GetString("owner_id"),
		Hub: Hub{
			GuildID:           v.GetString("hub_guild_id"),
			CommandsChannelID: v.GetString("hub_commands_channel_id"),
			RelayChannelID:    v.GetString("hub_relay_channel_id"),
			StdoutChannelID:   v.GetString("hub_stdout_channel_id"),
		},
		SupportURL:      v.GetString("support_url"),
		SourceURL:       v.GetString("source_url"),
		StatusAddr:      v.GetString("status_addr"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		MenuTimeout:     v.GetDuration("menu_timeout"),
		HelpMenuTimeout: v.GetDuration("help_menu_timeout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required and cannot be empty")
	}

	ids := map[string]string{
		"OWNER_ID":                c.OwnerID,
		"HUB_GUILD_ID":            c.Hub.GuildID,
		"HUB_COMMANDS_CHANNEL_ID": c.Hub.CommandsChannelID,
		"HUB_RELAY_CHANNEL_ID":    c.Hub.RelayChannelID,
		"HUB_STDOUT_CHANNEL_ID":   c.Hub.StdoutChannelID,
	}
	for key, id := range ids {
		if id == "" {
			continue
		}
		for _, r := range id {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: %s must be a Discord ID (digits only)", key)
			}
		}
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		c.DatabaseURL = DefaultDatabaseURL
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if err := domain.ValidatePrefix(c.DefaultPrefix); err != nil {
		return fmt.Errorf("config: invalid DEFAULT_PREFIX %q: %w", c.DefaultPrefix, err)
	}
	if err := domain.ValidateLocale(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: invalid DEFAULT_LOCALE %q: %w", c.DefaultLocale, err)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: LOG_LEVEL must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}

	if c.MenuTimeout <= 0 || c.HelpMenuTimeout <= 0 {
		return fmt.Errorf("config: MENU_TIMEOUT and HELP_MENU_TIMEOUT must be positive")
	}
	return nil
}

// IsOwner reports whether userID is the configured bot owner.
func (c *Config) IsOwner(userID string) bool {
	return c.OwnerID != "" && c.OwnerID == userID
}
