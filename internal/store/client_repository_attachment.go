// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

type attachmentRepository struct {
	*DB
	logger *logger.Logger
}

func NewAttachmentRepository(db *DB, logger *logger.Logger) AttachmentRepository {
	return &attachmentRepository{
		DB:     db,
		logger: logger,
	}
}

// Save stores the blob. Saving an existing hash is a no-op.
func (a *attachmentRepository) Save(ctx context.Context, attachment models.Attachment) error {
	_, err := a.conn(ctx).ExecContext(ctx, saveAttachment,
		attachment.Hash,
		attachment.MimeType,
		attachment.Data,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "attachmentRepository.Save").
			Str("hash", attachment.Hash).
			Msg("failed to save attachment")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (a *attachmentRepository) Get(ctx context.Context, hash string) (models.Attachment, error) {
	var att models.Attachment
	err := a.conn(ctx).QueryRowContext(ctx, getAttachment, hash).Scan(&att.Hash, &att.MimeType, &att.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Attachment{}, ErrAttachmentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "attachmentRepository.Get").
			Str("hash", hash).
			Msg("failed to scan attachment row")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return att, nil
}
