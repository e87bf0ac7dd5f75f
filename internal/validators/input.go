package validators

import (
	"context"
	"slices"

	"github.com/MKhiriev/notevault/models"
)

// Field names accepted by [InputValidator].
const (
	// FieldNoteID targets the id of the note being written.
	FieldNoteID = "note_id"

	// FieldType targets the content type (tiptap or tiny).
	FieldType = "type"

	// FieldData targets the content body.
	FieldData = "data"

	FieldAccessToken = "access_token"
	FieldExpiresIn   = "expires_in"

	// FieldScope requires a scope whenever a refresh token is present, since
	// refreshing needs the offline access scope.
	FieldScope = "scope"
)

var allowedContentTypes = []string{
	models.ContentTypeTiptap,
	models.ContentTypeTiny,
}

// InputValidator validates the note and token input accepted by the command
// line: models.ContentItem, models.NoteSave and models.Token, as values or
// pointers.
type InputValidator struct {
}

func NewInputValidator() Validator {
	return &InputValidator{}
}

func (v *InputValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ContentItem:
		return v.validateContentItem(ctx, value, fields...)
	case *models.ContentItem:
		return v.validateContentItem(ctx, *value, fields...)

	case models.NoteSave:
		return v.validateNoteSave(ctx, value, fields...)
	case *models.NoteSave:
		return v.validateNoteSave(ctx, *value, fields...)

	case models.Token:
		return v.validateToken(ctx, value, fields...)
	case *models.Token:
		return v.validateToken(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateContentItem defaults to NoteID and Type. Data may be empty for a
// plaintext note.
func (v *InputValidator) validateContentItem(_ context.Context, item models.ContentItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNoteID, FieldType}
	}

	for _, f := range fields {
		switch f {
		case FieldNoteID:
			if item.NoteID == "" {
				return ErrEmptyNoteID
			}
		case FieldType:
			if !slices.Contains(allowedContentTypes, item.Type) {
				return ErrInvalidType
			}
		case FieldData:
			if item.Data == "" {
				return ErrEmptyData
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateNoteSave defaults to NoteID, Type and Data. Type and Data are only
// checked when the save carries content.
func (v *InputValidator) validateNoteSave(_ context.Context, save models.NoteSave, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNoteID, FieldType, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldNoteID:
			if save.NoteID == "" {
				return ErrEmptyNoteID
			}
		case FieldType:
			if save.Content != nil && !slices.Contains(allowedContentTypes, save.Content.Type) {
				return ErrInvalidType
			}
		case FieldData:
			if save.Content != nil && save.Content.Data == "" {
				return ErrEmptyData
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateToken defaults to every token field.
func (v *InputValidator) validateToken(_ context.Context, token models.Token, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccessToken, FieldExpiresIn, FieldScope}
	}

	for _, f := range fields {
		switch f {
		case FieldAccessToken:
			if token.AccessToken == "" {
				return ErrEmptyAccessToken
			}
		case FieldExpiresIn:
			if token.ExpiresIn < 0 {
				return ErrInvalidExpiresIn
			}
		case FieldScope:
			if token.RefreshToken != "" && token.Scope == "" {
				return ErrNoScope
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}
