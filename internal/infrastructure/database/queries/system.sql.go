package queries

import (
	"context"
)

const insertSystem = `-- name: InsertSystem :execrows
INSERT INTO system (guild_id, guild_name, prefix, locale)
VALUES ($1, $2, $3, $4)
ON CONFLICT (guild_id) DO NOTHING
`

type InsertSystemParams struct {
	GuildID   string
	GuildName string
	Prefix    string
	Locale    string
}

func (q *Queries) InsertSystem(ctx context.Context, arg InsertSystemParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertSystem, arg.GuildID, arg.GuildName, arg.Prefix, arg.Locale)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getSystem = `-- name: GetSystem :one
SELECT guild_id, guild_name, prefix, locale, log_channel_id, setup_complete, created_at
FROM system
WHERE guild_id = $1
`

func (q *Queries) GetSystem(ctx context.Context, guildID string) (System, error) {
	row := q.db.QueryRow(ctx, getSystem, guildID)
	var i System
	err := row.Scan(
		&i.GuildID,
		&i.GuildName,
		&i.Prefix,
		&i.Locale,
		&i.LogChannelID,
		&i.SetupComplete,
		&i.CreatedAt,
	)
	return i, err
}

const updateSystem = `-- name: UpdateSystem :execrows
UPDATE system
SET guild_name = $2, prefix = $3, locale = $4, log_channel_id = $5, setup_complete = $6
WHERE guild_id = $1
`

type UpdateSystemParams struct {
	GuildID       string
	GuildName     string
	Prefix        string
	Locale        string
	LogChannelID  string
	SetupComplete bool
}

func (q *Queries) UpdateSystem(ctx context.Context, arg UpdateSystemParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateSystem,
		arg.GuildID,
		arg.GuildName,
		arg.Prefix,
		arg.Locale,
		arg.LogChannelID,
		arg.SetupComplete,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteSystem = `-- name: DeleteSystem :exec
DELETE FROM system WHERE guild_id = $1
`

func (q *Queries) DeleteSystem(ctx context.Context, guildID string) error {
	_, err := q.db.Exec(ctx, deleteSystem, guildID)
	return err
}

const listSystemGuildIDs = `-- name: ListSystemGuildIDs :many
SELECT guild_id FROM system ORDER BY guild_id
`

func (q *Queries) ListSystemGuildIDs(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, listSystemGuildIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var guildID string
		if err := rows.Scan(&guildID); err != nil {
			return nil, err
		}
		items = append(items, guildID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
