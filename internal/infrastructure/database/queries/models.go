package queries

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type System struct {
	GuildID       string
	GuildName     string
	Prefix        string
	Locale        string
	LogChannelID  string
	SetupComplete bool
	CreatedAt     pgtype.Timestamptz
}

type Gateway struct {
	GuildID        string
	Active         bool
	RulesChannelID string
	GateMessageID  string
	BlockingRoleID string
	GateText       string
}

type Entrant struct {
	GuildID   string
	UserID    string
	EntryTime pgtype.Timestamptz
}

type Warn struct {
	GuildID      string
	MaxPoints    int32
	MaxStrikes   int32
	RetroUpdates bool
}

type Warntype struct {
	GuildID  string
	WarnType string
	Points   int32
}

type WarnRecord struct {
	WarnID   string
	GuildID  string
	UserID   string
	ModID    string
	WarnType string
	Points   int32
	Comment  string
	WarnTime pgtype.Timestamptz
}

type Tag struct {
	TagID      string
	GuildID    string
	UserID     string
	TagName    string
	TagContent string
	TagTime    pgtype.Timestamptz
}

type Error struct {
	Ref       string
	Cause     string
	Traceback string
	ErrorTime pgtype.Timestamptz
}
