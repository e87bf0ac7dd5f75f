package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"dario.cat/mergo"
	"github.com/awnumar/memguard"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/crypto"
	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/models"
)

const (
	userKey = "user"
	// masterKeyKey is where older builds kept the master key in the clear.
	// It is only ever deleted now.
	masterKeyKey = "masterKey"
)

type userService struct {
	kv      store.KVStore
	adapter adapter.AuthAdapter
	tokens  TokenManager
	crypto  crypto.Provider
	bus     *events.Bus
	logger  *logger.Logger

	mu     sync.Mutex
	master *memguard.Enclave
}

// NewUserService builds the UserManager. The master key only lives in a
// memguard enclave of this process and is never written to kv.
func NewUserService(
	kv store.KVStore,
	authAdapter adapter.AuthAdapter,
	tokens TokenManager,
	cryptoProvider crypto.Provider,
	bus *events.Bus,
	log *logger.Logger,
) UserManager {
	return &userService{
		kv:      kv,
		adapter: authAdapter,
		tokens:  tokens,
		crypto:  cryptoProvider,
		bus:     bus,
		logger:  log,
	}
}

func (u *userService) GetUser(ctx context.Context) (*models.User, error) {
	var user models.User
	ok, err := u.kv.Read(ctx, userKey, &user)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (u *userService) FetchUser(ctx context.Context) (*models.User, error) {
	accessToken, err := u.tokens.GetAccessToken(ctx, nil, false)
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, nil
	}

	fetched, err := u.adapter.FetchUser(ctx, accessToken)
	if err != nil {
		u.logger.Err(err).Str("func", "userService.FetchUser").Msg("failed to fetch user")
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	old, err := u.GetUser(ctx)
	if err != nil {
		return nil, err
	}

	if old != nil && old.Subscription != fetched.Subscription {
		// the token carries the plan in its claims, so it has to be reissued
		if _, err = u.tokens.GetToken(ctx, true, true); err != nil {
			return nil, err
		}
		u.bus.Publish(events.UserSubscriptionUpdated, fetched.Subscription)
	}

	if err = u.kv.Write(ctx, userKey, fetched); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	u.bus.Publish(events.UserFetched, fetched)
	return &fetched, nil
}

func (u *userService) SetUser(ctx context.Context, partial models.User) error {
	user, err := u.GetUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if err = mergo.Merge(user, partial, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge user: %w", err)
	}

	if err = u.kv.Write(ctx, userKey, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (u *userService) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	user, err := u.GetUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNoUser
	}

	accessToken, err := u.tokens.GetAccessToken(ctx, nil, false)
	if err != nil {
		return err
	}
	if accessToken == "" {
		return ErrSessionExpired
	}

	if err = u.adapter.UpdateUser(ctx, accessToken, patch); err != nil {
		u.logger.Err(err).Str("func", "userService.UpdateUser").Msg("failed to update user")
		return fmt.Errorf("update user: %w", err)
	}

	updated := patch.Apply(*user)
	if err = u.kv.Write(ctx, userKey, updated); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (u *userService) DeriveMasterKey(ctx context.Context, password string) (models.Key, error) {
	user, err := u.GetUser(ctx)
	if err != nil {
		return models.Key{}, err
	}
	if user == nil {
		return models.Key{}, ErrNoUser
	}

	salt, err := base64.StdEncoding.DecodeString(user.Salt)
	if err != nil {
		return models.Key{}, fmt.Errorf("decode user salt: %w", err)
	}

	return u.crypto.DeriveKey(password, salt)
}

func (u *userService) SaveMasterKey(ctx context.Context, key models.Key) error {
	plain, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("encode master key: %w", err)
	}

	u.mu.Lock()
	// NewEnclave wipes plain.
	u.master = memguard.NewEnclave(plain)
	u.mu.Unlock()

	if err = u.kv.Delete(ctx, masterKeyKey); err != nil {
		return fmt.Errorf("drop stored master key: %w", err)
	}
	return nil
}

func (u *userService) GetMasterKey(_ context.Context) (*models.Key, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.master == nil {
		return nil, nil
	}

	buf, err := u.master.Open()
	if err != nil {
		return nil, fmt.Errorf("open master key: %w", err)
	}
	defer buf.Destroy()

	var key models.Key
	if err = json.Unmarshal(buf.Bytes(), &key); err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}
	return &key, nil
}

func (u *userService) forgetMasterKey() {
	u.mu.Lock()
	u.master = nil
	u.mu.Unlock()
}

func (u *userService) Logout(ctx context.Context, revoke bool, reason string) (err error) {
	defer func() {
		u.forgetMasterKey()
		if clearErr := u.kv.Clear(ctx); clearErr != nil {
			u.logger.Err(clearErr).Str("func", "userService.Logout").Msg("failed to clear local secrets")
			err = errors.Join(err, fmt.Errorf("clear local secrets: %w", clearErr))
		}
		u.bus.Publish(events.UserLoggedOut, reason)
	}()

	if revoke {
		if revokeErr := u.tokens.RevokeToken(ctx); revokeErr != nil {
			err = fmt.Errorf("revoke token: %w", revokeErr)
		}
	}

	return err
}
