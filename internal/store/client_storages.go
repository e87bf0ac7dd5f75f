// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// KV is the secret store for tokens, the master key and markers.
	KV KVStore

	Contents    ContentRepository
	Relations   RelationRepository
	Vaults      VaultRepository
	NoteHistory NoteHistoryRepository
	Attachments AttachmentRepository

	// Transactor makes multi-repository writes atomic.
	Transactor Transactor

	closers []io.Closer
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Opens the configured KV backend (the kv table, or badger in cfg.KV.Dir).
//
// Returns an error if the database connection cannot be established, if
// migration fails or if the KV backend cannot be opened.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages := &ClientStorages{
		Contents:    NewContentRepository(db, logger),
		Relations:   NewRelationRepository(db, logger),
		Vaults:      NewVaultRepository(db, logger),
		NoteHistory: NewNoteHistoryRepository(db, logger),
		Attachments: NewAttachmentRepository(db, logger),
		Transactor:  db,
		closers:     []io.Closer{db},
	}

	switch cfg.KV.Backend {
	case "", config.KVBackendSQLite:
		storages.KV = NewSQLiteKVStore(db, logger)
	case config.KVBackendBadger:
		kv, err := NewBadgerKVStore(cfg.KV.Dir, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		storages.KV = kv
		storages.closers = append(storages.closers, kv)
	default:
		db.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownKVBackend, cfg.KV.Backend)
	}

	return storages, nil
}

// Close releases the database and KV handles.
func (s *ClientStorages) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}
