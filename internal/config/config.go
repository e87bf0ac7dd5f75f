// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for notevault.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote hosts and the outbound request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local database and secret store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Security holds KDF costs and the secret lifetime windows.
	Security Security `envPrefix:"SECURITY_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level settings.
type App struct {
	// ClientID is the OAuth client id sent with token requests.
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// LogLevel is the zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Adapter holds the remote hosts notevault talks to.
type Adapter struct {
	// AuthHost is the base URL of the identity server (token, revocation).
	// Env: ADAPTER_AUTH_HOST
	AuthHost string `env:"AUTH_HOST"`

	// APIHost is the base URL of the API server (user record).
	// Env: ADAPTER_API_HOST
	APIHost string `env:"API_HOST"`

	// RequestTimeout bounds every outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB holds the sqlite database settings.
	DB DB `envPrefix:"DB_"`

	// KV selects the secret store backend.
	KV KV `envPrefix:"KV_"`
}

// DB holds the sqlite connection settings.
type DB struct {
	// DSN is the sqlite file path or DSN.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// KV selects and configures the secret store backend.
type KV struct {
	// Backend is "sqlite" (default, kv table in the main database) or
	// "badger".
	// Env: STORAGE_KV_BACKEND
	Backend string `env:"BACKEND"`

	// Dir is the badger data directory. Ignored for the sqlite backend.
	// Env: STORAGE_KV_DIR
	Dir string `env:"DIR"`
}

// Security holds KDF costs and the lifetimes of in-memory secrets.
type Security struct {
	// ArgonTime is the Argon2id iteration count.
	// Env: SECURITY_ARGON_TIME
	ArgonTime uint32 `env:"ARGON_TIME"`

	// ArgonMemory is the Argon2id memory cost in KiB.
	// Env: SECURITY_ARGON_MEMORY
	ArgonMemory uint32 `env:"ARGON_MEMORY"`

	// ArgonThreads is the Argon2id parallelism.
	// Env: SECURITY_ARGON_THREADS
	ArgonThreads uint8 `env:"ARGON_THREADS"`

	// VaultEraseAfter is how long the vault password stays in memory after
	// the last unlock, lock-note or save.
	// Env: SECURITY_VAULT_ERASE_AFTER
	VaultEraseAfter time.Duration `env:"VAULT_ERASE_AFTER"`

	// TokenRefreshTimeout bounds the token refresh critical section.
	// Env: SECURITY_TOKEN_REFRESH_TIMEOUT
	TokenRefreshTimeout time.Duration `env:"TOKEN_REFRESH_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// TokenRefreshInterval is how often the proactive token refresh job
	// checks the stored token.
	// Env: WORKERS_TOKEN_REFRESH_INTERVAL
	TokenRefreshInterval time.Duration `env:"TOKEN_REFRESH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags (flagCfg, may be nil)
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(flagCfg *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flagCfg).
		withJSON().
		build()
}
