// Package databasetest provides a no-op database.PGX so services can be
// wired against in-memory repositories in tests.
package databasetest

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type DB struct{}

func New() *DB {
	return &DB{}
}

func (*DB) Exec(context.Context, sq.Sqlizer) (pgconn.CommandTag, error) {
	return nil, nil
}

func (*DB) Get(context.Context, interface{}, sq.Sqlizer) error {
	return nil
}

func (*DB) Select(context.Context, interface{}, sq.Sqlizer) error {
	return nil
}

func (*DB) ExecRaw(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}

func (*DB) GetPool(context.Context) *pgxpool.Pool {
	return nil
}

func (db *DB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return &tx{}, nil
}

type tx struct {
	DB
}

func (*tx) Commit(context.Context) error {
	return nil
}

func (*tx) Rollback(context.Context) error {
	return nil
}
