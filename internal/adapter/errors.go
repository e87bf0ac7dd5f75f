package adapter

import "errors"

var (
	// ErrInvalidGrant is returned when the identity server rejects the
	// refresh token (revoked, expired or already used).
	ErrInvalidGrant = errors.New("invalid_grant")

	// ErrInvalidClient is returned when the identity server does not
	// recognise the client id.
	ErrInvalidClient = errors.New("invalid_client")

	// ErrUnauthorized is returned on HTTP 401.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrRequestFailed covers transport failures and every other non-2xx
	// response.
	ErrRequestFailed = errors.New("request failed")
)

// IsAuthError reports whether err means the session can never be renewed
// and the user has to sign in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidGrant) || errors.Is(err, ErrInvalidClient)
}
