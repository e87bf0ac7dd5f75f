// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/notevault/internal/logger"
)

// sqliteKVStore keeps named values in the kv table of the main database,
// so writes can join a transaction started by [DB.RunInTx].
type sqliteKVStore struct {
	*DB
	logger *logger.Logger
}

func NewSQLiteKVStore(db *DB, logger *logger.Logger) KVStore {
	return &sqliteKVStore{
		DB:     db,
		logger: logger,
	}
}

func (s *sqliteKVStore) Read(ctx context.Context, name string, target any) (bool, error) {
	log := logger.FromContext(ctx)

	var raw []byte
	err := s.conn(ctx).QueryRowContext(ctx, readKV, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKVStore.Read").
			Str("name", name).
			Msg("failed to read kv value")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal(raw, target); err != nil {
		log.Err(err).
			Str("func", "sqliteKVStore.Read").
			Str("name", name).
			Msg("failed to decode kv value")
		return false, fmt.Errorf("%w (name=%s): %w", ErrEncodingValue, name, err)
	}

	return true, nil
}

func (s *sqliteKVStore) Write(ctx context.Context, name string, value any) error {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w (name=%s): %w", ErrEncodingValue, name, err)
	}

	if _, err = s.conn(ctx).ExecContext(ctx, writeKV, name, raw); err != nil {
		log.Err(err).
			Str("func", "sqliteKVStore.Write").
			Str("name", name).
			Msg("failed to write kv value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKVStore) Delete(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete("kv").Where(sq.Eq{"name": names}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteKVStore.Delete").
			Strs("names", names).
			Msg("failed to delete kv values")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKVStore) Clear(ctx context.Context) error {
	if _, err := s.conn(ctx).ExecContext(ctx, clearKV); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteKVStore.Clear").
			Msg("failed to clear kv")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
