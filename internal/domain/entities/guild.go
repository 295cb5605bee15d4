package entities

import "time"

// Guild is a guild's system configuration.
type Guild struct {
	GuildID       string
	Name          string
	Prefix        string
	Locale        string
	LogChannelID  string
	SetupComplete bool
	CreatedAt     time.Time
}

// Gateway is the membership gate of a guild. New members get the blocking
// role until they accept the rules on the gate message.
type Gateway struct {
	GuildID        string
	Active         bool
	RulesChannelID string
	GateMessageID  string
	BlockingRoleID string
	GateText       string
}

// Entrant is a member who joined while the gateway was active and has not
// yet answered the gate message.
type Entrant struct {
	GuildID   string
	UserID    string
	EntryTime time.Time
}

// ErrorRecord is an unexpected failure kept for later recall by reference.
type ErrorRecord struct {
	Ref       string
	Cause     string
	Traceback string
	Time      time.Time
}
