// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/notevault/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// KVStore is the durable secret store for named values (tokens, master key,
// markers). Values are JSON-encoded and stored opaque; it does no
// encryption of its own.
type KVStore interface {
	// Read decodes the value stored under name into target. It reports
	// false when nothing is stored.
	Read(ctx context.Context, name string, target any) (bool, error)
	Write(ctx context.Context, name string, value any) error
	Delete(ctx context.Context, names ...string) error
	Clear(ctx context.Context) error
}

// ContentRepository stores note bodies.
type ContentRepository interface {
	FindByNoteID(ctx context.Context, noteID string) (models.ContentItem, error)
	// Upsert inserts the item or replaces the row with the same note id.
	Upsert(ctx context.Context, item models.ContentItem) error
	DeleteByNoteIDs(ctx context.Context, noteIDs ...string) error
}

// RelationRepository stores typed links between items.
type RelationRepository interface {
	Add(ctx context.Context, from, to models.ItemRef) error
	Unlink(ctx context.Context, from, to models.ItemRef) error
	// From lists the ids of toType items linked from from.
	From(ctx context.Context, from models.ItemRef, toType models.ItemType) ([]string, error)
	// To lists the ids of fromType items linking to to.
	To(ctx context.Context, to models.ItemRef, fromType models.ItemType) ([]string, error)
	Has(ctx context.Context, from, to models.ItemRef) (bool, error)
	UnlinkAll(ctx context.Context, from models.ItemRef, toType models.ItemType) error
}

// VaultRepository stores the single vault record.
type VaultRepository interface {
	// Default returns the vault, or nil when none exists.
	Default(ctx context.Context) (*models.Vault, error)
	Save(ctx context.Context, vault models.Vault) error
	UpdateKey(ctx context.Context, id string, key models.Cipher) error
	Delete(ctx context.Context, id string) error
}

// NoteHistoryRepository stores edit-history sessions.
type NoteHistoryRepository interface {
	AddSession(ctx context.Context, session models.HistorySession) error
	ClearSessions(ctx context.Context, noteID string) error
}

// AttachmentRepository stores content-addressed blobs.
type AttachmentRepository interface {
	Save(ctx context.Context, attachment models.Attachment) error
	Get(ctx context.Context, hash string) (models.Attachment, error)
}

// Transactor runs fn atomically. Repositories called with the context passed
// to fn take part in the same transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
