package service

import (
	"context"

	"github.com/MKhiriev/notevault/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// TokenManager holds the single OAuth token pair of the signed-in account and
// renews it on demand. Concurrent renewals collapse into one network call.
type TokenManager interface {
	// GetToken returns the stored token, or nil when there is none. With
	// renew set, an expired token (or any token when forceRenew is set) is
	// refreshed first, provided it is refreshable. A token that cannot be
	// refreshed is returned as is, even when expired.
	GetToken(ctx context.Context, renew, forceRenew bool) (*models.Token, error)

	// GetAccessToken returns the bare access token if the token's scope
	// intersects scopes, and "" otherwise. Nil scopes select the sync and
	// identity server scopes.
	GetAccessToken(ctx context.Context, scopes []string, forceRenew bool) (string, error)

	// SaveToken stamps the token with the current time and stores it,
	// replacing any previous token.
	SaveToken(ctx context.Context, token models.Token) error

	// RevokeToken deletes the stored token and asks the identity server to
	// revoke it. The local copy is removed even when the remote call fails.
	RevokeToken(ctx context.Context) error
}

// UserManager is the local mirror of the account record and its master key.
type UserManager interface {
	GetUser(ctx context.Context) (*models.User, error)

	// FetchUser refreshes the local record from the API host. It returns
	// nil without error when there is no usable access token.
	FetchUser(ctx context.Context) (*models.User, error)

	// SetUser merges the non-zero fields of partial into the stored record.
	SetUser(ctx context.Context, partial models.User) error

	// UpdateUser sends patch to the API host and applies it locally.
	UpdateUser(ctx context.Context, patch models.UserPatch) error

	DeriveMasterKey(ctx context.Context, password string) (models.Key, error)
	SaveMasterKey(ctx context.Context, key models.Key) error
	GetMasterKey(ctx context.Context) (*models.Key, error)

	// Logout revokes the token (when revoke is set) and wipes every local
	// secret. Local cleanup happens even when revocation fails.
	Logout(ctx context.Context, revoke bool, reason string) error
}

// EntitlementChecker gates premium features.
type EntitlementChecker interface {
	// IsPremium verifies the subscription against the API host. Network
	// failures are returned, never treated as a grant.
	IsPremium(ctx context.Context, feature string) (bool, error)
}

// ContentProcessor runs the content hooks around vault encryption.
type ContentProcessor interface {
	// PostProcess extracts large inline attachments before content is
	// encrypted.
	PostProcess(ctx context.Context, noteID string, content models.NoteContent) (models.NoteContent, error)

	// PreProcess migrates legacy content formats after decryption. It
	// reports whether content was rewritten.
	PreProcess(content models.NoteContent) (models.NoteContent, bool, error)
}
