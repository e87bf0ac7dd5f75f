// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/migrations"
)

// DB wraps the sqlite connection shared by every repository.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// psql is the statement builder for sqlite ("?" placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type txKey struct{}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// conn returns the transaction carried by ctx, or the plain connection.
func (db *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

// RunInTx runs fn inside a single transaction. Repositories called with the
// context passed to fn join that transaction. A nested call reuses the outer
// transaction. The transaction is committed only if fn returns nil.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "DB.RunInTx").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "DB.RunInTx").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
