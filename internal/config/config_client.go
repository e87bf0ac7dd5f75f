// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Secret store backends.
const (
	KVBackendSQLite = "sqlite"
	KVBackendBadger = "badger"
)

var kvBackends = []string{KVBackendSQLite, KVBackendBadger}

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultClientID            = "notesnook"
	DefaultAuthHost            = "https://auth.streetwriters.co"
	DefaultAPIHost             = "https://api.notesnook.com"
	DefaultRequestTimeout      = 15 * time.Second
	DefaultDSN                 = "notevault.db"
	DefaultVaultEraseAfter     = 30 * time.Minute
	DefaultTokenRefreshTimeout = 10 * time.Second
	DefaultTokenRefreshEvery   = time.Minute
)

// ClientApp holds process-level settings.
type ClientApp struct {
	ClientID string
	LogLevel string
}

// ClientAdapter holds the remote hosts and outbound request timeout.
type ClientAdapter struct {
	AuthHost       string
	APIHost        string
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the sqlite connection string.
	DSN string
}

// ClientKV selects the secret store backend.
type ClientKV struct {
	Backend string
	Dir     string
}

// ClientStorage groups storage backend settings.
type ClientStorage struct {
	DB ClientDB
	KV ClientKV
}

// ClientSecurity holds KDF costs and secret lifetimes.
type ClientSecurity struct {
	ArgonTime           uint32
	ArgonMemory         uint32
	ArgonThreads        uint8
	VaultEraseAfter     time.Duration
	TokenRefreshTimeout time.Duration
}

// ClientWorkers contains background worker settings.
type ClientWorkers struct {
	TokenRefreshInterval time.Duration
}

// ClientConfig is the runtime configuration assembled from
// [StructuredConfig] with defaults applied.
type ClientConfig struct {
	App      ClientApp
	Adapter  ClientAdapter
	Storage  ClientStorage
	Security ClientSecurity
	Workers  ClientWorkers
}

// GetClientConfig builds and validates the runtime config from the merged
// structured configuration. flagCfg is the value returned by [BindFlags]
// and may be nil.
func GetClientConfig(flagCfg *StructuredConfig) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flagCfg)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			ClientID: or(cfg.App.ClientID, DefaultClientID),
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			AuthHost:       or(cfg.Adapter.AuthHost, DefaultAuthHost),
			APIHost:        or(cfg.Adapter.APIHost, DefaultAPIHost),
			RequestTimeout: or(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: or(cfg.Storage.DB.DSN, DefaultDSN)},
			KV: ClientKV{
				Backend: or(cfg.Storage.KV.Backend, KVBackendSQLite),
				Dir:     cfg.Storage.KV.Dir,
			},
		},
		Security: ClientSecurity{
			ArgonTime:           cfg.Security.ArgonTime,
			ArgonMemory:         cfg.Security.ArgonMemory,
			ArgonThreads:        cfg.Security.ArgonThreads,
			VaultEraseAfter:     or(cfg.Security.VaultEraseAfter, DefaultVaultEraseAfter),
			TokenRefreshTimeout: or(cfg.Security.TokenRefreshTimeout, DefaultTokenRefreshTimeout),
		},
		Workers: ClientWorkers{
			TokenRefreshInterval: or(cfg.Workers.TokenRefreshInterval, DefaultTokenRefreshEvery),
		},
	}

	return clientCfg
}

func or[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}
