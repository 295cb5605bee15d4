package queries

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertWarnConfig = `-- name: InsertWarnConfig :exec
INSERT INTO warn (guild_id) VALUES ($1)
ON CONFLICT (guild_id) DO NOTHING
`

func (q *Queries) InsertWarnConfig(ctx context.Context, guildID string) error {
	_, err := q.db.Exec(ctx, insertWarnConfig, guildID)
	return err
}

const getWarnConfig = `-- name: GetWarnConfig :one
SELECT guild_id, max_points, max_strikes, retro_updates FROM warn WHERE guild_id = $1
`

func (q *Queries) GetWarnConfig(ctx context.Context, guildID string) (Warn, error) {
	row := q.db.QueryRow(ctx, getWarnConfig, guildID)
	var i Warn
	err := row.Scan(&i.GuildID, &i.MaxPoints, &i.MaxStrikes, &i.RetroUpdates)
	return i, err
}

const updateWarnConfig = `-- name: UpdateWarnConfig :execrows
UPDATE warn SET max_points = $2, max_strikes = $3, retro_updates = $4 WHERE guild_id = $1
`

type UpdateWarnConfigParams struct {
	GuildID      string
	MaxPoints    int32
	MaxStrikes   int32
	RetroUpdates bool
}

func (q *Queries) UpdateWarnConfig(ctx context.Context, arg UpdateWarnConfigParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateWarnConfig, arg.GuildID, arg.MaxPoints, arg.MaxStrikes, arg.RetroUpdates)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listWarnTypes = `-- name: ListWarnTypes :many
SELECT guild_id, warn_type, points FROM warntypes WHERE guild_id = $1 ORDER BY warn_type
`

func (q *Queries) ListWarnTypes(ctx context.Context, guildID string) ([]Warntype, error) {
	rows, err := q.db.Query(ctx, listWarnTypes, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Warntype
	for rows.Next() {
		var i Warntype
		if err := rows.Scan(&i.GuildID, &i.WarnType, &i.Points); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getWarnType = `-- name: GetWarnType :one
SELECT guild_id, warn_type, points FROM warntypes WHERE guild_id = $1 AND warn_type = $2
`

func (q *Queries) GetWarnType(ctx context.Context, guildID, warnType string) (Warntype, error) {
	row := q.db.QueryRow(ctx, getWarnType, guildID, warnType)
	var i Warntype
	err := row.Scan(&i.GuildID, &i.WarnType, &i.Points)
	return i, err
}

const insertWarnType = `-- name: InsertWarnType :exec
INSERT INTO warntypes (guild_id, warn_type, points) VALUES ($1, $2, $3)
`

type InsertWarnTypeParams struct {
	GuildID  string
	WarnType string
	Points   int32
}

func (q *Queries) InsertWarnType(ctx context.Context, arg InsertWarnTypeParams) error {
	_, err := q.db.Exec(ctx, insertWarnType, arg.GuildID, arg.WarnType, arg.Points)
	return err
}

const updateWarnType = `-- name: UpdateWarnType :execrows
UPDATE warntypes SET warn_type = $3, points = $4 WHERE guild_id = $1 AND warn_type = $2
`

type UpdateWarnTypeParams struct {
	GuildID     string
	WarnType    string
	NewWarnType string
	Points      int32
}

func (q *Queries) UpdateWarnType(ctx context.Context, arg UpdateWarnTypeParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateWarnType, arg.GuildID, arg.WarnType, arg.NewWarnType, arg.Points)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteWarnType = `-- name: DeleteWarnType :execrows
DELETE FROM warntypes WHERE guild_id = $1 AND warn_type = $2
`

func (q *Queries) DeleteWarnType(ctx context.Context, guildID, warnType string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteWarnType, guildID, warnType)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const renameWarnsType = `-- name: RenameWarnsType :exec
UPDATE warns SET warn_type = $3 WHERE guild_id = $1 AND warn_type = $2
`

func (q *Queries) RenameWarnsType(ctx context.Context, guildID, warnType, newWarnType string) error {
	_, err := q.db.Exec(ctx, renameWarnsType, guildID, warnType, newWarnType)
	return err
}

const retroUpdateWarnPoints = `-- name: RetroUpdateWarnPoints :exec
UPDATE warns SET points = $4 WHERE guild_id = $1 AND warn_type = $2 AND points = $3
`

type RetroUpdateWarnPointsParams struct {
	GuildID   string
	WarnType  string
	OldPoints int32
	NewPoints int32
}

func (q *Queries) RetroUpdateWarnPoints(ctx context.Context, arg RetroUpdateWarnPointsParams) error {
	_, err := q.db.Exec(ctx, retroUpdateWarnPoints, arg.GuildID, arg.WarnType, arg.OldPoints, arg.NewPoints)
	return err
}

const deleteWarnsOfType = `-- name: DeleteWarnsOfType :exec
DELETE FROM warns WHERE guild_id = $1 AND warn_type = $2
`

func (q *Queries) DeleteWarnsOfType(ctx context.Context, guildID, warnType string) error {
	_, err := q.db.Exec(ctx, deleteWarnsOfType, guildID, warnType)
	return err
}

const insertWarn = `-- name: InsertWarn :one
INSERT INTO warns (warn_id, guild_id, user_id, mod_id, warn_type, points, comment)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING warn_time
`

type InsertWarnParams struct {
	WarnID   string
	GuildID  string
	UserID   string
	ModID    string
	WarnType string
	Points   int32
	Comment  string
}

func (q *Queries) InsertWarn(ctx context.Context, arg InsertWarnParams) (pgtype.Timestamptz, error) {
	row := q.db.QueryRow(ctx, insertWarn,
		arg.WarnID,
		arg.GuildID,
		arg.UserID,
		arg.ModID,
		arg.WarnType,
		arg.Points,
		arg.Comment,
	)
	var warnTime pgtype.Timestamptz
	err := row.Scan(&warnTime)
	return warnTime, err
}

const deleteWarn = `-- name: DeleteWarn :execrows
DELETE FROM warns WHERE guild_id = $1 AND warn_id = $2
`

func (q *Queries) DeleteWarn(ctx context.Context, guildID, warnID string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteWarn, guildID, warnID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteUserWarns = `-- name: DeleteUserWarns :execrows
DELETE FROM warns WHERE guild_id = $1 AND user_id = $2
`

func (q *Queries) DeleteUserWarns(ctx context.Context, guildID, userID string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteUserWarns, guildID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listUserWarns = `-- name: ListUserWarns :many
SELECT warn_id, guild_id, user_id, mod_id, warn_type, points, comment, warn_time
FROM warns
WHERE guild_id = $1 AND user_id = $2
ORDER BY warn_time DESC
`

func (q *Queries) ListUserWarns(ctx context.Context, guildID, userID string) ([]WarnRecord, error) {
	rows, err := q.db.Query(ctx, listUserWarns, guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WarnRecord
	for rows.Next() {
		var i WarnRecord
		if err := rows.Scan(
			&i.WarnID,
			&i.GuildID,
			&i.UserID,
			&i.ModID,
			&i.WarnType,
			&i.Points,
			&i.Comment,
			&i.WarnTime,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
