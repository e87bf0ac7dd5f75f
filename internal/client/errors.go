package client

import (
	"errors"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/app"
	"github.com/MKhiriev/notevault/internal/service"
	"github.com/MKhiriev/notevault/internal/store"
)

// ErrNotSignedIn is returned by commands that need a stored token.
var ErrNotSignedIn = errors.New("not signed in")

// describe turns err into the line shown to the user and an optional hint
// naming the command that fixes it.
func describe(err error) (string, string) {
	var itemErr *service.ItemDecryptionError

	switch {
	case errors.As(err, &itemErr):
		return itemErr.Error(), "sync the note and retry"
	case errors.Is(err, service.ErrNoVault):
		return app.MsgNoVault, "notevault vault create"
	case errors.Is(err, service.ErrVaultLocked):
		return app.MsgVaultLocked, "pass --password"
	case errors.Is(err, service.ErrWrongPassword):
		return app.MsgWrongPassword, ""
	case errors.Is(err, service.ErrPremiumRequired):
		return app.MsgPremiumRequired, ""
	case errors.Is(err, service.ErrEmptyNote):
		return app.MsgEmptyNote, "notevault note put <note-id>"
	case errors.Is(err, store.ErrContentNotFound):
		return app.MsgNoteNotFound, "notevault note put <note-id>"
	case errors.Is(err, service.ErrSessionExpired):
		return app.MsgSessionExpired, "notevault token set"
	case errors.Is(err, service.ErrRefreshTimeout):
		return app.MsgRefreshTimeout, ""
	case errors.Is(err, service.ErrNoMasterKey):
		return app.MsgNoMasterKey, "pass --password"
	case errors.Is(err, service.ErrNoUser), errors.Is(err, ErrNotSignedIn):
		return app.MsgNotSignedIn, "notevault token set"
	case errors.Is(err, ErrPasswordMismatch):
		return app.MsgPasswordMismatch, ""
	case errors.Is(err, adapter.ErrRequestFailed):
		return app.MsgServerUnavailable, ""
	default:
		return err.Error(), ""
	}
}
