package service

import (
	"context"
	"time"

	"github.com/MKhiriev/notevault/models"
)

// KeyManager wraps and unwraps the named application keys under the user's
// master key.
type KeyManager interface {
	// Get returns the unwrapped key, or nil when the user or the key field is
	// absent.
	Get(ctx context.Context, id KeyID, opts GetOptions) (*models.UnwrappedKey, error)

	// Create generates fresh key material for id, stores it wrapped on the
	// user record and caches it.
	Create(ctx context.Context, id KeyID) (*models.UnwrappedKey, error)

	GetOrCreate(ctx context.Context, id KeyID) (*models.UnwrappedKey, error)

	WrapKey(key models.UnwrappedKey, masterKey models.Key) (*models.WrappedKey, error)
	UnwrapKey(wrapped models.WrappedKey, masterKey models.Key) (*models.UnwrappedKey, error)
	RewrapKey(wrapped models.WrappedKey, oldMasterKey, newMasterKey models.Key) (*models.WrappedKey, error)

	// RewrapAll re-wraps every key present on the user record and pushes
	// them in one update.
	RewrapAll(ctx context.Context, oldMasterKey, newMasterKey models.Key) error

	ClearCache()
}

// Vault gates note content behind a password that is only ever held in
// memory, for a bounded time.
type Vault interface {
	Create(ctx context.Context, password string) error
	Unlock(ctx context.Context, password string) error
	Lock()

	// Add locks a note with the cached password.
	Add(ctx context.Context, noteID string) error

	// Open decrypts a note without unlocking it permanently. A non-empty
	// password also unlocks the vault.
	Open(ctx context.Context, noteID, password string) (*models.NoteContent, error)

	// Read decrypts a note with the cached password.
	Read(ctx context.Context, noteID string) (*models.NoteContent, error)

	// Remove decrypts a note permanently and takes it out of the vault.
	Remove(ctx context.Context, noteID, password string) error

	Save(ctx context.Context, save models.NoteSave) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Clear(ctx context.Context, password string) error
	Delete(ctx context.Context, deleteAllLockedNotes bool) error
	Exists(ctx context.Context) (bool, error)
	Status(ctx context.Context) (VaultStatus, error)
}

// VaultStatus is a point-in-time view of the vault.
type VaultStatus struct {
	Exists      bool
	Unlocked    bool
	ExpiresAt   time.Time
	LockedNotes int
}
