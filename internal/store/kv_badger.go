// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/MKhiriev/notevault/internal/logger"
)

// badgerKVStore keeps named values in an embedded badger database. It does
// not take part in sqlite transactions.
type badgerKVStore struct {
	db     *badger.DB
	logger *logger.Logger
}

// NewBadgerKVStore opens (or creates) a badger database in dir. An empty dir
// opens an in-memory store.
func NewBadgerKVStore(dir string, log *logger.Logger) (*badgerKVStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		log.Err(err).Str("func", "NewBadgerKVStore").Str("dir", dir).Msg("error opening badger")
		return nil, fmt.Errorf("error opening badger kv store: %w", err)
	}

	return &badgerKVStore{db: db, logger: log}, nil
}

func (s *badgerKVStore) Read(ctx context.Context, name string, target any) (bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "badgerKVStore.Read").
			Str("name", name).
			Msg("failed to read kv value")
		return false, fmt.Errorf("badger read %s: %w", name, err)
	}

	if err = json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("%w (name=%s): %w", ErrEncodingValue, name, err)
	}
	return true, nil
}

func (s *badgerKVStore) Write(ctx context.Context, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w (name=%s): %w", ErrEncodingValue, name, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), raw)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "badgerKVStore.Write").
			Str("name", name).
			Msg("failed to write kv value")
		return fmt.Errorf("badger write %s: %w", name, err)
	}
	return nil
}

func (s *badgerKVStore) Delete(ctx context.Context, names ...string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, name := range names {
			if err := txn.Delete([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "badgerKVStore.Delete").
			Strs("names", names).
			Msg("failed to delete kv values")
		return fmt.Errorf("badger delete: %w", err)
	}
	return nil
}

func (s *badgerKVStore) Clear(ctx context.Context) error {
	if err := s.db.DropAll(); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "badgerKVStore.Clear").
			Msg("failed to clear kv")
		return fmt.Errorf("badger clear: %w", err)
	}
	return nil
}

func (s *badgerKVStore) Close() error {
	return s.db.Close()
}
