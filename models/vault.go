// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ItemType names the kind of entity on either end of a Relation.
type ItemType string

const (
	ItemVault      ItemType = "vault"
	ItemNote       ItemType = "note"
	ItemAttachment ItemType = "attachment"
)

// DefaultVaultID is the id of the single per-account vault. It is stable so
// that locked-note relations survive deleting and re-creating the vault.
const DefaultVaultID = "default"

// Vault is the per-account vault record. Key encrypts a fixed constant under
// the vault password; its existence is the only signal that a vault exists.
type Vault struct {
	ID           string
	Title        string
	Key          Cipher
	DateCreated  time.Time
	DateModified time.Time
}

// ItemRef points at one side of a Relation.
type ItemRef struct {
	Type ItemType
	ID   string
}

// Relation links two items. A vault → note relation marks the note locked.
type Relation struct {
	From ItemRef
	To   ItemRef
}
