package queries

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertError = `-- name: InsertError :one
INSERT INTO errors (ref, cause, traceback) VALUES ($1, $2, $3)
RETURNING error_time
`

type InsertErrorParams struct {
	Ref       string
	Cause     string
	Traceback string
}

func (q *Queries) InsertError(ctx context.Context, arg InsertErrorParams) (pgtype.Timestamptz, error) {
	row := q.db.QueryRow(ctx, insertError, arg.Ref, arg.Cause, arg.Traceback)
	var errorTime pgtype.Timestamptz
	err := row.Scan(&errorTime)
	return errorTime, err
}

const getError = `-- name: GetError :one
SELECT ref, cause, traceback, error_time FROM errors WHERE ref = $1
`

func (q *Queries) GetError(ctx context.Context, ref string) (Error, error) {
	row := q.db.QueryRow(ctx, getError, ref)
	var i Error
	err := row.Scan(&i.Ref, &i.Cause, &i.Traceback, &i.ErrorTime)
	return i, err
}
