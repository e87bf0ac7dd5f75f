package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/mock"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/models"
)

type userFixture struct {
	users   UserManager
	kv      store.KVStore
	adapter *mock.MockAuthAdapter
	tokens  *mock.MockTokenManager
	bus     *events.Bus
}

func newUserFixture(t *testing.T) userFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	kv := newTestStorages(t).KV
	authAdapter := mock.NewMockAuthAdapter(ctrl)
	tokens := mock.NewMockTokenManager(ctrl)
	bus := events.NewBus(logger.Nop())

	return userFixture{
		users:   NewUserService(kv, authAdapter, tokens, newTestCrypto(), bus, logger.Nop()),
		kv:      kv,
		adapter: authAdapter,
		tokens:  tokens,
		bus:     bus,
	}
}

func testUser() models.User {
	return models.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		Salt:         base64.StdEncoding.EncodeToString([]byte("0123456789abcdef")),
		Subscription: models.Subscription{Type: models.SubscriptionBasic},
	}
}

// ── FetchUser ──

func TestUserService_FetchUser_WithoutToken(t *testing.T) {
	f := newUserFixture(t)
	f.tokens.EXPECT().GetAccessToken(gomock.Any(), nil, false).Return("", nil)

	user, err := f.users.FetchUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserService_FetchUser_StoresUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	rec := record(f.bus, events.UserFetched, events.UserSubscriptionUpdated)

	f.tokens.EXPECT().GetAccessToken(gomock.Any(), nil, false).Return("access-1", nil)
	f.adapter.EXPECT().FetchUser(gomock.Any(), "access-1").Return(testUser(), nil)

	user, err := f.users.FetchUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)

	stored, err := f.users.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser(), *stored)
	assert.Equal(t, 1, rec.count(events.UserFetched))
	assert.Zero(t, rec.count(events.UserSubscriptionUpdated))
}

func TestUserService_FetchUser_SubscriptionChangeRenewsToken(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	rec := record(f.bus, events.UserSubscriptionUpdated)
	require.NoError(t, f.kv.Write(ctx, userKey, testUser()))

	upgraded := testUser()
	upgraded.Subscription = models.Subscription{Type: models.SubscriptionPremium}

	gomock.InOrder(
		f.tokens.EXPECT().GetAccessToken(gomock.Any(), nil, false).Return("access-1", nil),
		f.adapter.EXPECT().FetchUser(gomock.Any(), "access-1").Return(upgraded, nil),
		f.tokens.EXPECT().GetToken(gomock.Any(), true, true).Return(&models.Token{AccessToken: "access-2"}, nil),
	)

	user, err := f.users.FetchUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPremium, user.Subscription.Type)
	assert.Equal(t, 1, rec.count(events.UserSubscriptionUpdated))
	assert.Equal(t, upgraded.Subscription, rec.last(events.UserSubscriptionUpdated))
}

func TestUserService_FetchUser_AdapterError(t *testing.T) {
	f := newUserFixture(t)
	boom := errors.New("boom")

	f.tokens.EXPECT().GetAccessToken(gomock.Any(), nil, false).Return("access-1", nil)
	f.adapter.EXPECT().FetchUser(gomock.Any(), "access-1").Return(models.User{}, boom)

	_, err := f.users.FetchUser(context.Background())
	assert.ErrorIs(t, err, boom)
}

// ── SetUser / UpdateUser ──

func TestUserService_SetUser_MergesPartial(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	require.NoError(t, f.kv.Write(ctx, userKey, testUser()))

	require.NoError(t, f.users.SetUser(ctx, models.User{IsEmailConfirmed: true, Email: "alice@new.example.com"}))

	user, err := f.users.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "alice@new.example.com", user.Email)
	assert.True(t, user.IsEmailConfirmed)
	assert.Equal(t, testUser().Salt, user.Salt)
}

func TestUserService_SetUser_NoUserIsNoop(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.SetUser(ctx, models.User{Email: "x@example.com"}))

	user, err := f.users.GetUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserService_UpdateUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	require.NoError(t, f.kv.Write(ctx, userKey, testUser()))

	wrapped := models.NewWrappedSymmetric(models.Cipher{Alg: "xcha-argon2id13-1", Cipher: "c", IV: "iv", Salt: "s", Length: 1})
	patch := models.UserPatch{AttachmentsKey: wrapped}

	f.tokens.EXPECT().GetAccessToken(gomock.Any(), nil, false).Return("access-1", nil)
	f.adapter.EXPECT().UpdateUser(gomock.Any(), "access-1", patch).Return(nil)

	require.NoError(t, f.users.UpdateUser(ctx, patch))

	user, err := f.users.GetUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user.AttachmentsKey)
	assert.Equal(t, wrapped.Symmetric.Cipher, user.AttachmentsKey.Symmetric.Cipher)
}

func TestUserService_UpdateUser_Errors(t *testing.T) {
	t.Run("no user", func(t *testing.T) {
		f := newUserFixture(t)
		assert.ErrorIs(t, f.users.UpdateUser(context.Background(), models.UserPatch{}), ErrNoUser)
	})

	t.Run("no access token", func(t *testing.T) {
		f := newUserFixture(t)
		ctx := context.Background()
		require.NoError(t, f.kv.Write(ctx, userKey, testUser()))
		f.tokens.EXPECT().GetAccessToken(gomock.Any(), nil, false).Return("", nil)

		assert.ErrorIs(t, f.users.UpdateUser(ctx, models.UserPatch{}), ErrSessionExpired)
	})

	t.Run("server rejects patch", func(t *testing.T) {
		f := newUserFixture(t)
		ctx := context.Background()
		require.NoError(t, f.kv.Write(ctx, userKey, testUser()))
		boom := errors.New("boom")
		f.tokens.EXPECT().GetAccessToken(gomock.Any(), nil, false).Return("access-1", nil)
		f.adapter.EXPECT().UpdateUser(gomock.Any(), "access-1", gomock.Any()).Return(boom)

		assert.ErrorIs(t, f.users.UpdateUser(ctx, models.UserPatch{}), boom)

		user, err := f.users.GetUser(ctx)
		require.NoError(t, err)
		assert.Nil(t, user.AttachmentsKey)
	})
}

// ── master key ──

func TestUserService_MasterKey(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	_, err := f.users.DeriveMasterKey(ctx, "pw")
	assert.ErrorIs(t, err, ErrNoUser)

	require.NoError(t, f.kv.Write(ctx, userKey, testUser()))

	key, err := f.users.DeriveMasterKey(ctx, "pw")
	require.NoError(t, err)
	again, err := f.users.DeriveMasterKey(ctx, "pw")
	require.NoError(t, err)
	assert.Equal(t, key, again)

	stored, err := f.users.GetMasterKey(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.NoError(t, f.users.SaveMasterKey(ctx, key))
	stored, err = f.users.GetMasterKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, key, *stored)
}

func TestUserService_MasterKeyNeverReachesKV(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	require.NoError(t, f.kv.Write(ctx, userKey, testUser()))
	// left behind by a build that stored the key in the clear
	require.NoError(t, f.kv.Write(ctx, masterKeyKey, models.Key{Key: "legacy"}))

	key, err := f.users.DeriveMasterKey(ctx, "pw")
	require.NoError(t, err)
	require.NoError(t, f.users.SaveMasterKey(ctx, key))

	var raw map[string]any
	ok, err := f.kv.Read(ctx, masterKeyKey, &raw)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)

	var user map[string]any
	ok, err = f.kv.Read(ctx, userKey, &user)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, fmt.Sprint(user), key.Key)

	// a second manager over the same kv starts without a key
	other := NewUserService(f.kv, f.adapter, f.tokens, newTestCrypto(), f.bus, logger.Nop())
	stored, err := other.GetMasterKey(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

// ── Logout ──

func TestUserService_Logout(t *testing.T) {
	tests := []struct {
		name      string
		revoke    bool
		revokeErr error
		wantErr   bool
	}{
		{name: "without revoke"},
		{name: "with revoke", revoke: true},
		{name: "revoke fails", revoke: true, revokeErr: errors.New("offline"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			ctx := context.Background()
			rec := record(f.bus, events.UserLoggedOut)
			require.NoError(t, f.kv.Write(ctx, userKey, testUser()))
			require.NoError(t, f.users.SaveMasterKey(ctx, models.Key{Key: "k"}))

			if tt.revoke {
				f.tokens.EXPECT().RevokeToken(gomock.Any()).Return(tt.revokeErr)
			}

			err := f.users.Logout(ctx, tt.revoke, "user asked")
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.revokeErr)
			} else {
				assert.NoError(t, err)
			}

			// secrets are gone whatever the revoke outcome
			user, err := f.users.GetUser(ctx)
			require.NoError(t, err)
			assert.Nil(t, user)
			key, err := f.users.GetMasterKey(ctx)
			require.NoError(t, err)
			assert.Nil(t, key)

			assert.Equal(t, 1, rec.count(events.UserLoggedOut))
			assert.Equal(t, "user asked", rec.last(events.UserLoggedOut))
		})
	}
}
