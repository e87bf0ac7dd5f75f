// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Content types understood by the editor.
const (
	ContentTypeTiptap = "tiptap"

	// ContentTypeTiny is the legacy editor format, migrated to tiptap when
	// a locked note is opened.
	ContentTypeTiny = "tiny"
)

// ContentItem is the stored body of a note. Data is plaintext HTML, or the
// JSON form of a Cipher when Locked is set. ID is stable across lock and
// unlock.
type ContentItem struct {
	ID           string
	NoteID       string
	Type         string
	Data         string
	Locked       bool
	SessionID    string
	Deleted      bool
	DateEdited   time.Time
	DateModified time.Time
}

// NoteContent is a decrypted note body.
type NoteContent struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// NoteSave carries an edit of a locked note. Content is nil when only the
// lock state should be enforced.
type NoteSave struct {
	NoteID    string
	SessionID string
	Content   *NoteContent
}

// HistorySession is one edit-history snapshot of a note.
type HistorySession struct {
	ID          string
	NoteID      string
	Data        string
	DateCreated time.Time
}

// Attachment is a binary blob extracted from note content, addressed by the
// hex SHA-256 of its bytes.
type Attachment struct {
	Hash     string
	MimeType string
	Data     []byte
}
