// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the hex-encoded SHA-256 of data. Attachments are
// addressed by this value, so equal blobs share one row.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
