// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/notevault/internal/clock"
	"github.com/MKhiriev/notevault/internal/crypto"
	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/internal/utils"
	"github.com/MKhiriev/notevault/models"
)

const (
	// vaultKeyCheck is the constant sealed under the vault password. Opening
	// it is how a password is verified.
	vaultKeyCheck = "notevault:vault-key:v1"

	defaultVaultTitle = "Default"
)

// DefaultEraseAfter is how long an unlocked vault keeps its password.
const DefaultEraseAfter = 30 * time.Minute

type vault struct {
	vaults    store.VaultRepository
	contents  store.ContentRepository
	relations store.RelationRepository
	history   store.NoteHistoryRepository
	tx        store.Transactor

	crypto      crypto.Provider
	entitlement EntitlementChecker
	processor   ContentProcessor
	bus         *events.Bus
	clock       clock.Clock
	ids         utils.IDGenerator

	session *UnlockSession

	logger *logger.Logger
}

// NewVault builds the Vault over the local storages. The cached password is
// erased eraseAfter after the last unlock, add or save, and on logout.
func NewVault(
	storages *store.ClientStorages,
	cryptoProvider crypto.Provider,
	entitlement EntitlementChecker,
	processor ContentProcessor,
	bus *events.Bus,
	clk clock.Clock,
	eraseAfter time.Duration,
	log *logger.Logger,
) Vault {
	if eraseAfter <= 0 {
		eraseAfter = DefaultEraseAfter
	}

	v := &vault{
		vaults:      storages.Vaults,
		contents:    storages.Contents,
		relations:   storages.Relations,
		history:     storages.NoteHistory,
		tx:          storages.Transactor,
		crypto:      cryptoProvider,
		entitlement: entitlement,
		processor:   processor,
		bus:         bus,
		clock:       clk,
		ids:         utils.NewUUIDGenerator(),
		logger:      log,
	}
	v.session = NewUnlockSession(clk, eraseAfter, func() {
		log.Debug().Str("func", "vault.erase").Msg("vault password erased")
		bus.Publish(events.VaultLocked, nil)
	})

	bus.Subscribe(events.UserLoggedOut, func(any) { v.Lock() })

	return v
}

func (v *vault) Create(ctx context.Context, password string) error {
	if err := v.requirePremium(ctx); err != nil {
		return err
	}

	existing, err := v.vaults.Default(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	return v.create(ctx, password)
}

func (v *vault) Unlock(ctx context.Context, password string) error {
	existing, err := v.vaults.Default(ctx)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNoVault
	}
	if err = v.checkPassword(existing, password); err != nil {
		return err
	}

	v.session.Set(password)
	v.bus.Publish(events.VaultUnlocked, nil)
	return nil
}

func (v *vault) Lock() {
	v.session.Clear()
	v.bus.Publish(events.VaultLocked, nil)
}

func (v *vault) Add(ctx context.Context, noteID string) error {
	if err := v.requirePremium(ctx); err != nil {
		return err
	}

	password, err := v.password(ctx)
	if err != nil {
		return err
	}

	err = v.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := v.lockNote(ctx, models.NoteSave{NoteID: noteID}, password); err != nil {
			return err
		}
		// plaintext history would outlive the lock
		return v.history.ClearSessions(ctx, noteID)
	})
	if err != nil {
		return err
	}

	v.session.Extend()
	return nil
}

func (v *vault) Open(ctx context.Context, noteID, password string) (*models.NoteContent, error) {
	if password == "" {
		return v.Read(ctx, noteID)
	}

	existing, err := v.vaults.Default(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err = v.checkPassword(existing, password); err != nil {
			return nil, err
		}
	}

	content, err := v.readNote(ctx, noteID, password)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if err = v.ensureVault(ctx, password); err != nil {
			return nil, err
		}
	}

	v.session.Set(password)
	v.bus.Publish(events.VaultUnlocked, nil)
	return content, nil
}

func (v *vault) Read(ctx context.Context, noteID string) (*models.NoteContent, error) {
	password, err := v.password(ctx)
	if err != nil {
		return nil, err
	}
	return v.readNote(ctx, noteID, password)
}

func (v *vault) Remove(ctx context.Context, noteID, password string) error {
	if password == "" {
		cached, err := v.password(ctx)
		if err != nil {
			return err
		}
		password = cached
	}

	item, err := v.contents.FindByNoteID(ctx, noteID)
	if err != nil {
		return err
	}

	if err = v.unlockNote(ctx, item, password); err != nil {
		return err
	}

	return v.ensureVault(ctx, password)
}

func (v *vault) Save(ctx context.Context, save models.NoteSave) error {
	password, err := v.password(ctx)
	if err != nil {
		return err
	}

	v.session.Extend()
	return v.lockNote(ctx, save, password)
}

func (v *vault) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := v.Unlock(ctx, oldPassword); err != nil {
		return err
	}

	existing, err := v.vaults.Default(ctx)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNoVault
	}

	noteIDs, err := v.lockedNoteIDs(ctx)
	if err != nil {
		return err
	}

	// Everything is decrypted before anything is written, so one bad item
	// leaves the vault exactly as it was.
	type rekey struct {
		item    models.ContentItem
		content models.NoteContent
	}
	pending := make([]rekey, 0, len(noteIDs))
	for _, noteID := range noteIDs {
		item, err := v.contents.FindByNoteID(ctx, noteID)
		if errors.Is(err, store.ErrContentNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if item.Deleted || !v.crypto.IsCipher(item.Data) {
			continue
		}

		content, _, err := v.decrypt(item, oldPassword)
		if err != nil {
			v.logger.Error().Err(err).
				Str("func", "vault.ChangePassword").
				Str("note_id", noteID).
				Msg("locked note did not open with the old password")
			return &ItemDecryptionError{NoteID: noteID, Err: err}
		}
		pending = append(pending, rekey{item: item, content: content})
	}

	newKey, err := v.crypto.EncryptWithPassword(newPassword, []byte(vaultKeyCheck))
	if err != nil {
		return fmt.Errorf("seal vault key: %w", err)
	}

	err = v.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, p := range pending {
			if _, err := v.writeEncrypted(ctx, p.item, p.content, newPassword); err != nil {
				return err
			}
		}
		return v.vaults.UpdateKey(ctx, existing.ID, newKey)
	})
	if err != nil {
		v.logger.Err(err).Str("func", "vault.ChangePassword").Msg("failed to rotate vault password")
		return err
	}

	v.session.Set(newPassword)
	return nil
}

func (v *vault) Clear(ctx context.Context, password string) error {
	if err := v.Unlock(ctx, password); err != nil {
		return err
	}

	noteIDs, err := v.lockedNoteIDs(ctx)
	if err != nil {
		return err
	}

	for _, noteID := range noteIDs {
		item, err := v.contents.FindByNoteID(ctx, noteID)
		if errors.Is(err, store.ErrContentNotFound) {
			if err = v.relations.Unlink(ctx, vaultRef(), noteRef(noteID)); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if err = v.unlockNote(ctx, item, password); err != nil {
			if errors.Is(err, ErrWrongPassword) {
				return &ItemDecryptionError{NoteID: noteID, Err: err}
			}
			return err
		}
	}

	return nil
}

func (v *vault) Delete(ctx context.Context, deleteAllLockedNotes bool) error {
	defer v.Lock()

	existing, err := v.vaults.Default(ctx)
	if err != nil {
		return err
	}

	return v.tx.RunInTx(ctx, func(ctx context.Context) error {
		if deleteAllLockedNotes {
			noteIDs, err := v.lockedNoteIDs(ctx)
			if err != nil {
				return err
			}
			if err = v.contents.DeleteByNoteIDs(ctx, noteIDs...); err != nil {
				return err
			}
			if err = v.relations.UnlinkAll(ctx, vaultRef(), models.ItemNote); err != nil {
				return err
			}
		}

		if existing == nil {
			return nil
		}
		return v.vaults.Delete(ctx, existing.ID)
	})
}

func (v *vault) Exists(ctx context.Context) (bool, error) {
	existing, err := v.vaults.Default(ctx)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func (v *vault) Status(ctx context.Context) (VaultStatus, error) {
	exists, err := v.Exists(ctx)
	if err != nil {
		return VaultStatus{}, err
	}

	noteIDs, err := v.lockedNoteIDs(ctx)
	if err != nil {
		return VaultStatus{}, err
	}

	status := VaultStatus{Exists: exists, LockedNotes: len(noteIDs)}
	if _, ok := v.session.Password(); ok && exists {
		status.Unlocked = true
		status.ExpiresAt, _ = v.session.ExpiresAt()
	}
	return status, nil
}

func (v *vault) create(ctx context.Context, password string) error {
	key, err := v.crypto.EncryptWithPassword(password, []byte(vaultKeyCheck))
	if err != nil {
		return fmt.Errorf("seal vault key: %w", err)
	}

	now := v.clock.Now()
	err = v.vaults.Save(ctx, models.Vault{
		ID:           models.DefaultVaultID,
		Title:        defaultVaultTitle,
		Key:          key,
		DateCreated:  now,
		DateModified: now,
	})
	if err != nil {
		return err
	}

	v.session.Set(password)
	v.bus.Publish(events.VaultUnlocked, nil)
	return nil
}

// ensureVault creates the vault with password when it is missing. Accounts
// without premium keep working without one.
func (v *vault) ensureVault(ctx context.Context, password string) error {
	exists, err := v.Exists(ctx)
	if err != nil || exists {
		return err
	}

	premium, err := v.entitlement.IsPremium(ctx, FeatureVaultAdd)
	if err != nil {
		return err
	}
	if !premium {
		return nil
	}
	return v.create(ctx, password)
}

// checkPassword opens the vault key with password.
func (v *vault) checkPassword(existing *models.Vault, password string) error {
	if _, err := v.crypto.DecryptWithPassword(password, existing.Key); err != nil {
		v.logger.Debug().Str("func", "vault.checkPassword").Msg("vault key did not open")
		return ErrWrongPassword
	}
	return nil
}

func (v *vault) requirePremium(ctx context.Context) error {
	premium, err := v.entitlement.IsPremium(ctx, FeatureVaultAdd)
	if err != nil {
		return fmt.Errorf("check entitlement: %w", err)
	}
	if !premium {
		return ErrPremiumRequired
	}
	return nil
}

// password returns the cached password of an existing vault.
func (v *vault) password(ctx context.Context) (string, error) {
	exists, err := v.Exists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNoVault
	}

	password, ok := v.session.Password()
	if !ok {
		return "", ErrVaultLocked
	}
	return password, nil
}

// lockNote encrypts the note under password and links it to the vault. A
// note that is already locked and gets no new content only has its relation
// ensured.
func (v *vault) lockNote(ctx context.Context, save models.NoteSave, password string) error {
	return v.tx.RunInTx(ctx, func(ctx context.Context) error {
		item, err := v.contents.FindByNoteID(ctx, save.NoteID)
		missing := errors.Is(err, store.ErrContentNotFound)
		if err != nil && !missing {
			return err
		}

		locked, err := v.relations.Has(ctx, vaultRef(), noteRef(save.NoteID))
		if err != nil {
			return err
		}

		var content *models.NoteContent
		switch {
		case save.Content != nil:
			processed, err := v.processor.PostProcess(ctx, save.NoteID, *save.Content)
			if err != nil {
				return err
			}
			content = &processed

		case !locked:
			if missing {
				return ErrEmptyNote
			}
			if !item.Deleted && !v.crypto.IsCipher(item.Data) {
				content = &models.NoteContent{Type: item.Type, Data: item.Data}
			}
		}

		if missing {
			item = models.ContentItem{ID: v.ids.Generate(), NoteID: save.NoteID}
		}
		item.SessionID = save.SessionID

		if content != nil {
			stored, err := v.writeEncrypted(ctx, item, *content, password)
			if err != nil {
				return err
			}
			if save.SessionID != "" {
				err = v.history.AddSession(ctx, models.HistorySession{
					ID:          save.SessionID,
					NoteID:      save.NoteID,
					Data:        stored.Data,
					DateCreated: stored.DateEdited,
				})
				if err != nil {
					return err
				}
			}
		} else if !missing && !item.Locked {
			item.Locked = true
			if err = v.contents.Upsert(ctx, item); err != nil {
				return err
			}
		}

		return v.relations.Add(ctx, vaultRef(), noteRef(save.NoteID))
	})
}

// writeEncrypted stores content sealed under password in place of item and
// returns the stored row.
func (v *vault) writeEncrypted(ctx context.Context, item models.ContentItem, content models.NoteContent, password string) (models.ContentItem, error) {
	plain, err := json.Marshal(content.Data)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("encode content: %w", err)
	}

	sealed, err := v.crypto.EncryptWithPassword(password, plain)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("encrypt content: %w", err)
	}

	data, err := crypto.FormatCipher(sealed)
	if err != nil {
		return models.ContentItem{}, err
	}

	now := v.clock.Now()
	item.Type = content.Type
	item.Data = data
	item.Locked = true
	item.DateEdited = now
	item.DateModified = now

	if err = v.contents.Upsert(ctx, item); err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// readNote decrypts a note without changing its lock state. Content that
// the migration hook rewrites is sealed again under the same password.
func (v *vault) readNote(ctx context.Context, noteID, password string) (*models.NoteContent, error) {
	item, err := v.contents.FindByNoteID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if !v.crypto.IsCipher(item.Data) {
		// stored in plaintext, so the note is not really locked
		if err = v.markUnlocked(ctx, item); err != nil {
			return nil, err
		}
		return &models.NoteContent{Type: item.Type, Data: item.Data}, nil
	}

	content, migrated, err := v.decrypt(item, password)
	if err != nil {
		return nil, err
	}

	if migrated {
		if _, err = v.writeEncrypted(ctx, item, content, password); err != nil {
			return nil, err
		}
	}
	return &content, nil
}

// unlockNote decrypts a note for good and takes it out of the vault.
func (v *vault) unlockNote(ctx context.Context, item models.ContentItem, password string) error {
	content, _, err := v.decrypt(item, password)
	if err != nil {
		return err
	}

	item.Type = content.Type
	item.Data = content.Data
	return v.markUnlocked(ctx, item)
}

func (v *vault) markUnlocked(ctx context.Context, item models.ContentItem) error {
	return v.tx.RunInTx(ctx, func(ctx context.Context) error {
		item.Locked = false
		item.DateModified = v.clock.Now()
		if err := v.contents.Upsert(ctx, item); err != nil {
			return err
		}
		return v.relations.Unlink(ctx, vaultRef(), noteRef(item.NoteID))
	})
}

// decrypt opens a stored item. Plaintext items are returned unchanged. It
// reports whether the migration hook rewrote the content.
func (v *vault) decrypt(item models.ContentItem, password string) (models.NoteContent, bool, error) {
	sealed, err := crypto.ParseCipher(item.Data)
	if errors.Is(err, crypto.ErrNotCipher) {
		return models.NoteContent{Type: item.Type, Data: item.Data}, false, nil
	}

	plain, err := v.crypto.DecryptWithPassword(password, sealed)
	if err != nil {
		return models.NoteContent{}, false, ErrWrongPassword
	}

	var data string
	if err = json.Unmarshal(plain, &data); err != nil {
		return models.NoteContent{}, false, fmt.Errorf("decode content: %w", err)
	}

	content := models.NoteContent{Type: item.Type, Data: data}
	migrated, changed, err := v.processor.PreProcess(content)
	if err != nil {
		return models.NoteContent{}, false, fmt.Errorf("migrate content: %w", err)
	}
	return migrated, changed, nil
}

func (v *vault) lockedNoteIDs(ctx context.Context) ([]string, error) {
	return v.relations.From(ctx, vaultRef(), models.ItemNote)
}

func vaultRef() models.ItemRef {
	return models.ItemRef{Type: models.ItemVault, ID: models.DefaultVaultID}
}

func noteRef(noteID string) models.ItemRef {
	return models.ItemRef{Type: models.ItemNote, ID: noteID}
}
