package entities

import "time"

// WarnConfig holds the per-guild thresholds at which a member is banned.
type WarnConfig struct {
	GuildID      string
	MaxPoints    int
	MaxStrikes   int
	RetroUpdates bool
}

type WarnType struct {
	GuildID string
	Name    string
	Points  int
}

type Warn struct {
	ID      string
	GuildID string
	UserID  string
	ModID   string
	Type    string
	Points  int
	Comment string
	Time    time.Time
}

// WarnOutcome is what happened to a member after a warn was recorded.
type WarnOutcome struct {
	Warn       Warn
	Strikes    int
	MaxStrikes int
	Points     int
	MaxPoints  int
	// Ban is set when the member crossed a threshold.
	Ban       bool
	BanReason string
	// ByStrikes tells which threshold was crossed when Ban is set.
	ByStrikes bool
}
