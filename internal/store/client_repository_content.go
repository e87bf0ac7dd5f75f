// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

var contentColumns = []string{
	"id",
	"note_id",
	"type",
	"data",
	"locked",
	"session_id",
	"deleted",
	"date_edited",
	"date_modified",
}

type contentRepository struct {
	*DB
	logger *logger.Logger
}

func NewContentRepository(db *DB, logger *logger.Logger) ContentRepository {
	return &contentRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *contentRepository) FindByNoteID(ctx context.Context, noteID string) (models.ContentItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(contentColumns...).
		From("content").
		Where(sq.Eq{"note_id": noteID}).
		ToSql()
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.ContentItem
	err = c.conn(ctx).QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.NoteID,
		&item.Type,
		&item.Data,
		&item.Locked,
		&item.SessionID,
		&item.Deleted,
		&item.DateEdited,
		&item.DateModified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ContentItem{}, ErrContentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "contentRepository.FindByNoteID").
			Str("note_id", noteID).
			Msg("failed to scan content row")
		return models.ContentItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

func (c *contentRepository) Upsert(ctx context.Context, item models.ContentItem) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Insert("content").
		Columns(contentColumns...).
		Values(
			item.ID,
			item.NoteID,
			item.Type,
			item.Data,
			item.Locked,
			item.SessionID,
			item.Deleted,
			item.DateEdited,
			item.DateModified,
		).
		Suffix(`ON CONFLICT(note_id) DO UPDATE SET
			type          = excluded.type,
			data          = excluded.data,
			locked        = excluded.locked,
			session_id    = excluded.session_id,
			deleted       = excluded.deleted,
			date_edited   = excluded.date_edited,
			date_modified = excluded.date_modified`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "contentRepository.Upsert").
			Str("note_id", item.NoteID).
			Str("content_id", item.ID).
			Msg("failed to upsert content")
		return fmt.Errorf("failed to save content (note_id=%s): %w", item.NoteID, err)
	}

	return nil
}

func (c *contentRepository) DeleteByNoteIDs(ctx context.Context, noteIDs ...string) error {
	if len(noteIDs) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete("content").Where(sq.Eq{"note_id": noteIDs}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "contentRepository.DeleteByNoteIDs").
			Int("count", len(noteIDs)).
			Msg("failed to delete content")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
