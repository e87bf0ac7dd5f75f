// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

type noteHistoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewNoteHistoryRepository(db *DB, logger *logger.Logger) NoteHistoryRepository {
	return &noteHistoryRepository{
		DB:     db,
		logger: logger,
	}
}

func (n *noteHistoryRepository) AddSession(ctx context.Context, session models.HistorySession) error {
	_, err := n.conn(ctx).ExecContext(ctx, addHistorySession,
		session.ID,
		session.NoteID,
		session.Data,
		session.DateCreated,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "noteHistoryRepository.AddSession").
			Str("note_id", session.NoteID).
			Msg("failed to add history session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (n *noteHistoryRepository) ClearSessions(ctx context.Context, noteID string) error {
	if _, err := n.conn(ctx).ExecContext(ctx, clearHistorySessions, noteID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "noteHistoryRepository.ClearSessions").
			Str("note_id", noteID).
			Msg("failed to clear history sessions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
