// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validContentItem() models.ContentItem {
	return models.ContentItem{ID: "c1", NoteID: "n1", Type: models.ContentTypeTiptap, Data: "<p>x</p>"}
}

func validNoteSave() models.NoteSave {
	return models.NoteSave{
		NoteID:  "n1",
		Content: &models.NoteContent{Type: models.ContentTypeTiny, Data: "<p>x</p>"},
	}
}

func validToken() models.Token {
	return models.Token{
		AccessToken:  "a",
		RefreshToken: "r",
		Scope:        models.ScopeOfflineAccess,
		ExpiresIn:    3600,
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewInputValidator()
	ctx := context.Background()

	item := validContentItem()
	save := validNoteSave()
	token := validToken()

	tests := []struct {
		name    string
		obj     any
		wantErr error
	}{
		{"unsupported type", "a string", ErrUnsupportedType},
		{"ContentItem value", item, nil},
		{"ContentItem pointer", &item, nil},
		{"NoteSave value", save, nil},
		{"NoteSave pointer", &save, nil},
		{"Token value", token, nil},
		{"Token pointer", &token, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate_ContentItem
// ---------------------------------------------------------------------------

func TestValidate_ContentItem(t *testing.T) {
	v := NewInputValidator()
	ctx := context.Background()

	t.Run("empty note id", func(t *testing.T) {
		item := validContentItem()
		item.NoteID = ""
		require.ErrorIs(t, v.Validate(ctx, item), ErrEmptyNoteID)
	})

	t.Run("unknown type", func(t *testing.T) {
		item := validContentItem()
		item.Type = "markdown"
		require.ErrorIs(t, v.Validate(ctx, item), ErrInvalidType)
	})

	t.Run("empty data allowed by default", func(t *testing.T) {
		item := validContentItem()
		item.Data = ""
		require.NoError(t, v.Validate(ctx, item))
	})

	t.Run("empty data rejected when asked", func(t *testing.T) {
		item := validContentItem()
		item.Data = ""
		require.ErrorIs(t, v.Validate(ctx, item, FieldData), ErrEmptyData)
	})

	t.Run("field scoping skips other fields", func(t *testing.T) {
		item := validContentItem()
		item.Type = "markdown"
		require.NoError(t, v.Validate(ctx, item, FieldNoteID))
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validContentItem(), "hash"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// TestValidate_NoteSave
// ---------------------------------------------------------------------------

func TestValidate_NoteSave(t *testing.T) {
	v := NewInputValidator()
	ctx := context.Background()

	t.Run("without content only needs the note id", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.NoteSave{NoteID: "n1"}))
	})

	t.Run("empty note id", func(t *testing.T) {
		save := validNoteSave()
		save.NoteID = ""
		require.ErrorIs(t, v.Validate(ctx, save), ErrEmptyNoteID)
	})

	t.Run("unknown type", func(t *testing.T) {
		save := validNoteSave()
		save.Content.Type = ""
		require.ErrorIs(t, v.Validate(ctx, save), ErrInvalidType)
	})

	t.Run("empty data", func(t *testing.T) {
		save := validNoteSave()
		save.Content.Data = ""
		require.ErrorIs(t, v.Validate(ctx, save), ErrEmptyData)
	})
}

// ---------------------------------------------------------------------------
// TestValidate_Token
// ---------------------------------------------------------------------------

func TestValidate_Token(t *testing.T) {
	v := NewInputValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.Token)
		fields  []string
		wantErr error
	}{
		{"valid", func(*models.Token) {}, nil, nil},
		{"opaque token without refresh", func(tk *models.Token) { tk.RefreshToken = ""; tk.Scope = "" }, nil, nil},
		{"empty access token", func(tk *models.Token) { tk.AccessToken = "" }, nil, ErrEmptyAccessToken},
		{"negative expiry", func(tk *models.Token) { tk.ExpiresIn = -1 }, nil, ErrInvalidExpiresIn},
		{"refresh without scope", func(tk *models.Token) { tk.Scope = "" }, nil, ErrNoScope},
		{"scoped to access token", func(tk *models.Token) { tk.ExpiresIn = -1 }, []string{FieldAccessToken}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := validToken()
			tt.mutate(&token)

			err := v.Validate(ctx, token, tt.fields...)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
