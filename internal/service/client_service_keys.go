// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"dario.cat/mergo"

	"github.com/MKhiriev/notevault/internal/crypto"
	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

// KeyID names an application key stored on the user record.
type KeyID string

const (
	KeyAttachments        KeyID = "attachmentsKey"
	KeyMonographPasswords KeyID = "monographPasswordsKey"
	KeyInbox              KeyID = "inboxKeys"
)

// GetOptions controls KeyManager.Get.
type GetOptions struct {
	// UseCache returns a previously unwrapped key without touching the user
	// record.
	UseCache bool

	// RefetchUser refreshes the user record from the API host when the key
	// field is absent locally.
	RefetchUser bool
}

// keySpec describes where a key lives on the user record and what shape it
// has.
type keySpec struct {
	kind  models.KeyKind
	field func(u models.User) *models.WrappedKey
	patch func(w *models.WrappedKey) models.UserPatch
}

var keyCatalogue = map[KeyID]keySpec{
	KeyAttachments: {
		kind:  models.KeySymmetric,
		field: func(u models.User) *models.WrappedKey { return u.AttachmentsKey },
		patch: func(w *models.WrappedKey) models.UserPatch { return models.UserPatch{AttachmentsKey: w} },
	},
	KeyMonographPasswords: {
		kind:  models.KeySymmetric,
		field: func(u models.User) *models.WrappedKey { return u.MonographPasswordsKey },
		patch: func(w *models.WrappedKey) models.UserPatch { return models.UserPatch{MonographPasswordsKey: w} },
	},
	KeyInbox: {
		kind:  models.KeyAsymmetric,
		field: func(u models.User) *models.WrappedKey { return u.InboxKeys },
		patch: func(w *models.WrappedKey) models.UserPatch { return models.UserPatch{InboxKeys: w} },
	},
}

type keyManager struct {
	users  UserManager
	crypto crypto.Provider

	// cache holds unwrapped keys for the lifetime of the session. Two
	// concurrent misses may both unwrap; the last write wins.
	mu    sync.RWMutex
	cache map[KeyID]*models.UnwrappedKey

	logger *logger.Logger
}

// NewKeyManager builds a KeyManager. The cache is dropped whenever bus
// reports a logout.
func NewKeyManager(users UserManager, cryptoProvider crypto.Provider, bus *events.Bus, log *logger.Logger) KeyManager {
	k := &keyManager{
		users:  users,
		crypto: cryptoProvider,
		cache:  make(map[KeyID]*models.UnwrappedKey),
		logger: log,
	}
	bus.Subscribe(events.UserLoggedOut, func(any) { k.ClearCache() })
	return k
}

func (k *keyManager) Get(ctx context.Context, id KeyID, opts GetOptions) (*models.UnwrappedKey, error) {
	spec, ok := keyCatalogue[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, id)
	}

	if opts.UseCache {
		if key := k.cached(id); key != nil {
			return key, nil
		}
	}

	user, err := k.users.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	wrapped := spec.field(*user)
	if wrapped == nil && opts.RefetchUser {
		if user, err = k.users.FetchUser(ctx); err != nil {
			return nil, err
		}
		if user != nil {
			wrapped = spec.field(*user)
		}
	}
	if wrapped == nil {
		return nil, nil
	}

	masterKey, err := k.masterKey(ctx)
	if err != nil {
		return nil, err
	}

	key, err := k.UnwrapKey(*wrapped, masterKey)
	if err != nil {
		k.logger.Err(err).Str("func", "keyManager.Get").Str("key_id", string(id)).Msg("failed to unwrap key")
		return nil, fmt.Errorf("unwrap %s: %w", id, err)
	}

	k.store(id, key)
	return key, nil
}

func (k *keyManager) Create(ctx context.Context, id KeyID) (*models.UnwrappedKey, error) {
	spec, ok := keyCatalogue[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, id)
	}

	masterKey, err := k.masterKey(ctx)
	if err != nil {
		return nil, err
	}

	var key *models.UnwrappedKey
	switch spec.kind {
	case models.KeySymmetric:
		sym, err := k.crypto.GenerateRandomKey()
		if err != nil {
			return nil, err
		}
		key = models.NewSymmetricKey(sym)
	case models.KeyAsymmetric:
		pair, err := k.crypto.GenerateKeyPair()
		if err != nil {
			return nil, err
		}
		key = models.NewAsymmetricKey(pair)
	}

	wrapped, err := k.WrapKey(*key, masterKey)
	if err != nil {
		return nil, err
	}

	if err = k.users.UpdateUser(ctx, spec.patch(wrapped)); err != nil {
		return nil, err
	}

	k.store(id, key)
	return key, nil
}

func (k *keyManager) GetOrCreate(ctx context.Context, id KeyID) (*models.UnwrappedKey, error) {
	key, err := k.Get(ctx, id, GetOptions{UseCache: true, RefetchUser: true})
	if err != nil || key != nil {
		return key, err
	}
	return k.Create(ctx, id)
}

func (k *keyManager) WrapKey(key models.UnwrappedKey, masterKey models.Key) (*models.WrappedKey, error) {
	switch key.Kind {
	case models.KeySymmetric:
		if key.Symmetric == nil {
			return nil, models.ErrUnknownKeyShape
		}
		plain, err := json.Marshal(key.Symmetric)
		if err != nil {
			return nil, fmt.Errorf("encode key: %w", err)
		}
		c, err := k.crypto.Encrypt(masterKey, plain)
		if err != nil {
			return nil, err
		}
		return models.NewWrappedSymmetric(c), nil

	case models.KeyAsymmetric:
		if key.Pair == nil {
			return nil, models.ErrUnknownKeyShape
		}
		c, err := k.crypto.Encrypt(masterKey, []byte(key.Pair.PrivateKey))
		if err != nil {
			return nil, err
		}
		return models.NewWrappedPair(key.Pair.PublicKey, c), nil

	default:
		return nil, models.ErrUnknownKeyShape
	}
}

func (k *keyManager) UnwrapKey(wrapped models.WrappedKey, masterKey models.Key) (*models.UnwrappedKey, error) {
	switch wrapped.Kind {
	case models.KeySymmetric:
		if wrapped.Symmetric == nil {
			return nil, models.ErrUnknownKeyShape
		}
		plain, err := k.crypto.Decrypt(masterKey, *wrapped.Symmetric)
		if err != nil {
			return nil, err
		}
		var key models.Key
		if err = json.Unmarshal(plain, &key); err != nil {
			return nil, fmt.Errorf("decode key: %w", err)
		}
		return models.NewSymmetricKey(key), nil

	case models.KeyAsymmetric:
		if wrapped.Pair == nil {
			return nil, models.ErrUnknownKeyShape
		}
		private, err := k.crypto.Decrypt(masterKey, wrapped.Pair.Private)
		if err != nil {
			return nil, err
		}
		return models.NewAsymmetricKey(models.KeyPair{
			PublicKey:  wrapped.Pair.Public,
			PrivateKey: string(private),
		}), nil

	default:
		return nil, models.ErrUnknownKeyShape
	}
}

func (k *keyManager) RewrapKey(wrapped models.WrappedKey, oldMasterKey, newMasterKey models.Key) (*models.WrappedKey, error) {
	key, err := k.UnwrapKey(wrapped, oldMasterKey)
	if err != nil {
		return nil, err
	}
	return k.WrapKey(*key, newMasterKey)
}

func (k *keyManager) RewrapAll(ctx context.Context, oldMasterKey, newMasterKey models.Key) error {
	user, err := k.users.GetUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNoUser
	}

	var (
		patch   models.UserPatch
		changed bool
	)
	for id, spec := range keyCatalogue {
		wrapped := spec.field(*user)
		if wrapped == nil {
			continue
		}
		rewrapped, err := k.RewrapKey(*wrapped, oldMasterKey, newMasterKey)
		if err != nil {
			k.logger.Err(err).Str("func", "keyManager.RewrapAll").Str("key_id", string(id)).Msg("failed to rewrap key")
			return fmt.Errorf("rewrap %s: %w", id, err)
		}
		if err = mergo.Merge(&patch, spec.patch(rewrapped)); err != nil {
			return fmt.Errorf("merge patch: %w", err)
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return k.users.UpdateUser(ctx, patch)
}

func (k *keyManager) ClearCache() {
	k.mu.Lock()
	k.cache = make(map[KeyID]*models.UnwrappedKey)
	k.mu.Unlock()
}

func (k *keyManager) cached(id KeyID) *models.UnwrappedKey {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.cache[id]
}

func (k *keyManager) store(id KeyID, key *models.UnwrappedKey) {
	k.mu.Lock()
	k.cache[id] = key
	k.mu.Unlock()
}

func (k *keyManager) masterKey(ctx context.Context) (models.Key, error) {
	key, err := k.users.GetMasterKey(ctx)
	if err != nil {
		return models.Key{}, err
	}
	if key == nil {
		return models.Key{}, ErrNoMasterKey
	}
	return *key, nil
}
