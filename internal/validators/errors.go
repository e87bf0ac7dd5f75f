package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyNoteID      = errors.New("note id is required")
	ErrInvalidType      = errors.New("invalid content type")
	ErrEmptyData        = errors.New("content is required")
	ErrEmptyAccessToken = errors.New("access token is required")
	ErrInvalidExpiresIn = errors.New("expires_in must not be negative")
	ErrNoScope          = errors.New("scope is required with a refresh token")
)
