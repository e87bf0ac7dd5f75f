// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

type vaultRepository struct {
	*DB
	logger *logger.Logger
}

func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

func (v *vaultRepository) Default(ctx context.Context) (*models.Vault, error) {
	log := logger.FromContext(ctx)

	var (
		vault models.Vault
		key   string
	)
	err := v.conn(ctx).QueryRowContext(ctx, getDefaultVault).Scan(
		&vault.ID,
		&vault.Title,
		&key,
		&vault.DateCreated,
		&vault.DateModified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Default").
			Msg("failed to scan vault row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(key), &vault.Key); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Default").
			Str("vault_id", vault.ID).
			Msg("failed to decode vault key")
		return nil, fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}

	return &vault, nil
}

func (v *vaultRepository) Save(ctx context.Context, vault models.Vault) error {
	key, err := json.Marshal(vault.Key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}

	_, err = v.conn(ctx).ExecContext(ctx, saveVault,
		vault.ID,
		vault.Title,
		string(key),
		vault.DateCreated,
		vault.DateModified,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "vaultRepository.Save").
			Str("vault_id", vault.ID).
			Msg("failed to save vault")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (v *vaultRepository) UpdateKey(ctx context.Context, id string, key models.Cipher) error {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}

	res, err := v.conn(ctx).ExecContext(ctx, updateVaultKey, string(raw), time.Now().UTC(), id)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.UpdateKey").
			Str("vault_id", id).
			Msg("failed to update vault key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVaultNotFound
	}

	return nil
}

func (v *vaultRepository) Delete(ctx context.Context, id string) error {
	if _, err := v.conn(ctx).ExecContext(ctx, deleteVault, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "vaultRepository.Delete").
			Str("vault_id", id).
			Msg("failed to delete vault")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
