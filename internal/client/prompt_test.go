package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/app"
	"github.com/MKhiriev/notevault/internal/service"
	"github.com/MKhiriev/notevault/internal/store"
)

// ── resolvePassword ──

func scripted(answers ...string) (PasswordReader, *[]string) {
	var prompts []string
	return func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", ErrNoTerminal
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}, &prompts
}

func TestResolvePassword(t *testing.T) {
	tests := []struct {
		name        string
		given       string
		confirm     bool
		answers     []string
		want        string
		wantErr     error
		wantPrompts []string
	}{
		{
			name:  "given wins",
			given: "flag",
			want:  "flag",
		},
		{
			name:        "prompted",
			answers:     []string{"typed"},
			want:        "typed",
			wantPrompts: []string{"Enter pw: "},
		},
		{
			name:        "confirmed",
			confirm:     true,
			answers:     []string{"typed", "typed"},
			want:        "typed",
			wantPrompts: []string{"Enter pw: ", "Repeat pw: "},
		},
		{
			name:        "mismatch",
			confirm:     true,
			answers:     []string{"typed", "other"},
			wantErr:     ErrPasswordMismatch,
			wantPrompts: []string{"Enter pw: ", "Repeat pw: "},
		},
		{
			name:        "no terminal",
			wantErr:     ErrNoTerminal,
			wantPrompts: []string{"Enter pw: "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read, prompts := scripted(tt.answers...)

			got, err := resolvePassword(read, tt.given, "pw: ", tt.confirm)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantPrompts, *prompts)
		})
	}
}

func TestResolvePassword_Empty(t *testing.T) {
	read, _ := scripted("")

	_, err := resolvePassword(read, "", "pw: ", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
}

// ── describe ──

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantHint string
	}{
		{"no vault", fmt.Errorf("lock n1: %w", service.ErrNoVault), app.MsgNoVault, "notevault vault create"},
		{"wrong password", service.ErrWrongPassword, app.MsgWrongPassword, ""},
		{"premium", service.ErrPremiumRequired, app.MsgPremiumRequired, ""},
		{"note not found", store.ErrContentNotFound, app.MsgNoteNotFound, "notevault note put <note-id>"},
		{"session expired", service.ErrSessionExpired, app.MsgSessionExpired, "notevault token set"},
		{"no master key", service.ErrNoMasterKey, app.MsgNoMasterKey, "pass --password"},
		{"not signed in", ErrNotSignedIn, app.MsgNotSignedIn, "notevault token set"},
		{"no user", service.ErrNoUser, app.MsgNotSignedIn, "notevault token set"},
		{"network", fmt.Errorf("%w: dial", adapter.ErrRequestFailed), app.MsgServerUnavailable, ""},
		{"other", errors.New("boom"), "boom", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, hint := describe(tt.err)

			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantHint, hint)
		})
	}
}

func TestDescribe_ItemDecryptionError(t *testing.T) {
	err := fmt.Errorf("change password: %w", &service.ItemDecryptionError{NoteID: "n2", Err: service.ErrWrongPassword})

	msg, _ := describe(err)

	assert.Equal(t, "could not decrypt content of note n2: wrong password", msg)
}
