package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"bluebrain/internal/domain/entities"
	"bluebrain/internal/infrastructure/database/queries"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func guildToDomain(s queries.System) entities.Guild {
	return entities.Guild{
		GuildID:       s.GuildID,
		Name:          s.GuildName,
		Prefix:        s.Prefix,
		Locale:        s.Locale,
		LogChannelID:  s.LogChannelID,
		SetupComplete: s.SetupComplete,
		CreatedAt:     pgtypeTimestamptzToTime(s.CreatedAt),
	}
}

func gatewayToDomain(g queries.Gateway) entities.Gateway {
	return entities.Gateway{
		GuildID:        g.GuildID,
		Active:         g.Active,
		RulesChannelID: g.RulesChannelID,
		GateMessageID:  g.GateMessageID,
		BlockingRoleID: g.BlockingRoleID,
		GateText:       g.GateText,
	}
}

func tagToDomain(t queries.Tag) entities.Tag {
	return entities.Tag{
		ID:        t.TagID,
		GuildID:   t.GuildID,
		OwnerID:   t.UserID,
		Name:      t.TagName,
		Content:   t.TagContent,
		CreatedAt: pgtypeTimestamptzToTime(t.TagTime),
	}
}

func tagsToDomain(rows []queries.Tag) []entities.Tag {
	out := make([]entities.Tag, len(rows))
	for i, r := range rows {
		out[i] = tagToDomain(r)
	}
	return out
}

func warnConfigToDomain(w queries.Warn) entities.WarnConfig {
	return entities.WarnConfig{
		GuildID:      w.GuildID,
		MaxPoints:    int(w.MaxPoints),
		MaxStrikes:   int(w.MaxStrikes),
		RetroUpdates: w.RetroUpdates,
	}
}

func warnTypeToDomain(w queries.Warntype) entities.WarnType {
	return entities.WarnType{
		GuildID: w.GuildID,
		Name:    w.WarnType,
		Points:  int(w.Points),
	}
}

func warnToDomain(w queries.WarnRecord) entities.Warn {
	return entities.Warn{
		ID:      w.WarnID,
		GuildID: w.GuildID,
		UserID:  w.UserID,
		ModID:   w.ModID,
		Type:    w.WarnType,
		Points:  int(w.Points),
		Comment: w.Comment,
		Time:    pgtypeTimestamptzToTime(w.WarnTime),
	}
}

func errorRecordToDomain(e queries.Error) entities.ErrorRecord {
	return entities.ErrorRecord{
		Ref:       e.Ref,
		Cause:     e.Cause,
		Traceback: e.Traceback,
		Time:      pgtypeTimestamptzToTime(e.ErrorTime),
	}
}
