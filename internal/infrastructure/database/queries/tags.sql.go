package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const insertTag = `-- name: InsertTag :one
INSERT INTO tags (tag_id, guild_id, user_id, tag_name, tag_content)
VALUES ($1, $2, $3, $4, $5)
RETURNING tag_id, guild_id, user_id, tag_name, tag_content, tag_time
`

type InsertTagParams struct {
	TagID      string
	GuildID    string
	UserID     string
	TagName    string
	TagContent string
}

func (q *Queries) InsertTag(ctx context.Context, arg InsertTagParams) (Tag, error) {
	row := q.db.QueryRow(ctx, insertTag,
		arg.TagID,
		arg.GuildID,
		arg.UserID,
		arg.TagName,
		arg.TagContent,
	)
	var i Tag
	err := row.Scan(
		&i.TagID,
		&i.GuildID,
		&i.UserID,
		&i.TagName,
		&i.TagContent,
		&i.TagTime,
	)
	return i, err
}

const getTag = `-- name: GetTag :one
SELECT tag_id, guild_id, user_id, tag_name, tag_content, tag_time
FROM tags
WHERE guild_id = $1 AND tag_name = $2
`

func (q *Queries) GetTag(ctx context.Context, guildID, tagName string) (Tag, error) {
	row := q.db.QueryRow(ctx, getTag, guildID, tagName)
	var i Tag
	err := row.Scan(
		&i.TagID,
		&i.GuildID,
		&i.UserID,
		&i.TagName,
		&i.TagContent,
		&i.TagTime,
	)
	return i, err
}

const listTags = `-- name: ListTags :many
SELECT tag_id, guild_id, user_id, tag_name, tag_content, tag_time
FROM tags
WHERE guild_id = $1
ORDER BY tag_name
`

func (q *Queries) ListTags(ctx context.Context, guildID string) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listTags, guildID)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

const listTagsByOwner = `-- name: ListTagsByOwner :many
SELECT tag_id, guild_id, user_id, tag_name, tag_content, tag_time
FROM tags
WHERE guild_id = $1 AND user_id = $2
ORDER BY tag_name
`

func (q *Queries) ListTagsByOwner(ctx context.Context, guildID, userID string) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listTagsByOwner, guildID, userID)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

func scanTags(rows pgx.Rows) ([]Tag, error) {
	defer rows.Close()
	var items []Tag
	for rows.Next() {
		var i Tag
		if err := rows.Scan(
			&i.TagID,
			&i.GuildID,
			&i.UserID,
			&i.TagName,
			&i.TagContent,
			&i.TagTime,
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

const updateTagContent = `-- name: UpdateTagContent :execrows
UPDATE tags SET tag_content = $3 WHERE guild_id = $1 AND tag_name = $2
`

func (q *Queries) UpdateTagContent(ctx context.Context, guildID, tagName, tagContent string) (int64, error) {
	result, err := q.db.Exec(ctx, updateTagContent, guildID, tagName, tagContent)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteTag = `-- name: DeleteTag :execrows
DELETE FROM tags WHERE guild_id = $1 AND tag_name = $2
`

func (q *Queries) DeleteTag(ctx context.Context, guildID, tagName string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteTag, guildID, tagName)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
