// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	readKV = `SELECT value FROM kv WHERE name = ?;`

	writeKV = `
		INSERT INTO kv (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value;`

	clearKV = `DELETE FROM kv;`

	getDefaultVault = `
		SELECT id, title, key, date_created, date_modified
		FROM vaults
		ORDER BY date_created
		LIMIT 1;`

	saveVault = `
		INSERT INTO vaults (id, title, key, date_created, date_modified)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title         = excluded.title,
			key           = excluded.key,
			date_modified = excluded.date_modified;`

	updateVaultKey = `
		UPDATE vaults SET
			key           = ?,
			date_modified = ?
		WHERE id = ?;`

	deleteVault = `DELETE FROM vaults WHERE id = ?;`

	addHistorySession = `
		INSERT INTO note_history (id, note_id, data, date_created)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data;`

	clearHistorySessions = `DELETE FROM note_history WHERE note_id = ?;`

	saveAttachment = `
		INSERT INTO attachments (hash, mime_type, data) VALUES (?, ?, ?)
		ON CONFLICT(hash) DO NOTHING;`

	getAttachment = `SELECT hash, mime_type, data FROM attachments WHERE hash = ?;`
)
