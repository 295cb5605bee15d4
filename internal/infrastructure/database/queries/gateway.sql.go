package queries

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertGateway = `-- name: InsertGateway :exec
INSERT INTO gateway (guild_id) VALUES ($1)
ON CONFLICT (guild_id) DO NOTHING
`

func (q *Queries) InsertGateway(ctx context.Context, guildID string) error {
	_, err := q.db.Exec(ctx, insertGateway, guildID)
	return err
}

const getGateway = `-- name: GetGateway :one
SELECT guild_id, active, rules_channel_id, gate_message_id, blocking_role_id, gate_text
FROM gateway
WHERE guild_id = $1
`

func (q *Queries) GetGateway(ctx context.Context, guildID string) (Gateway, error) {
	row := q.db.QueryRow(ctx, getGateway, guildID)
	var i Gateway
	err := row.Scan(
		&i.GuildID,
		&i.Active,
		&i.RulesChannelID,
		&i.GateMessageID,
		&i.BlockingRoleID,
		&i.GateText,
	)
	return i, err
}

const getGatewayByGateMessage = `-- name: GetGatewayByGateMessage :one
SELECT guild_id, active, rules_channel_id, gate_message_id, blocking_role_id, gate_text
FROM gateway
WHERE gate_message_id = $1 AND gate_message_id <> ''
`

func (q *Queries) GetGatewayByGateMessage(ctx context.Context, gateMessageID string) (Gateway, error) {
	row := q.db.QueryRow(ctx, getGatewayByGateMessage, gateMessageID)
	var i Gateway
	err := row.Scan(
		&i.GuildID,
		&i.Active,
		&i.RulesChannelID,
		&i.GateMessageID,
		&i.BlockingRoleID,
		&i.GateText,
	)
	return i, err
}

const updateGateway = `-- name: UpdateGateway :execrows
UPDATE gateway
SET active = $2, rules_channel_id = $3, gate_message_id = $4, blocking_role_id = $5, gate_text = $6
WHERE guild_id = $1
`

type UpdateGatewayParams struct {
	GuildID        string
	Active         bool
	RulesChannelID string
	GateMessageID  string
	BlockingRoleID string
	GateText       string
}

func (q *Queries) UpdateGateway(ctx context.Context, arg UpdateGatewayParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateGateway,
		arg.GuildID,
		arg.Active,
		arg.RulesChannelID,
		arg.GateMessageID,
		arg.BlockingRoleID,
		arg.GateText,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const insertEntrant = `-- name: InsertEntrant :exec
INSERT INTO entrants (guild_id, user_id, entry_time)
VALUES ($1, $2, $3)
ON CONFLICT (guild_id, user_id) DO UPDATE SET entry_time = EXCLUDED.entry_time
`

type InsertEntrantParams struct {
	GuildID   string
	UserID    string
	EntryTime pgtype.Timestamptz
}

func (q *Queries) InsertEntrant(ctx context.Context, arg InsertEntrantParams) error {
	_, err := q.db.Exec(ctx, insertEntrant, arg.GuildID, arg.UserID, arg.EntryTime)
	return err
}

const entrantExists = `-- name: EntrantExists :one
SELECT EXISTS (SELECT 1 FROM entrants WHERE guild_id = $1 AND user_id = $2)
`

func (q *Queries) EntrantExists(ctx context.Context, guildID, userID string) (bool, error) {
	row := q.db.QueryRow(ctx, entrantExists, guildID, userID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const deleteEntrant = `-- name: DeleteEntrant :execrows
DELETE FROM entrants WHERE guild_id = $1 AND user_id = $2
`

func (q *Queries) DeleteEntrant(ctx context.Context, guildID, userID string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteEntrant, guildID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteEntrants = `-- name: DeleteEntrants :exec
DELETE FROM entrants WHERE guild_id = $1
`

func (q *Queries) DeleteEntrants(ctx context.Context, guildID string) error {
	_, err := q.db.Exec(ctx, deleteEntrants, guildID)
	return err
}
