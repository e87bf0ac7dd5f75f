// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "slices"

// validate checks the merged [StructuredConfig]. Only values that are set
// are checked here; required values are enforced on [ClientConfig] after
// defaults are applied.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.KV.Backend != "" && !slices.Contains(kvBackends, cfg.Storage.KV.Backend) {
		return ErrInvalidStorageConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.KV.Backend == KVBackendBadger && cfg.Storage.KV.Dir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.AuthHost == "" || cfg.Adapter.APIHost == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.ClientID == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Security.VaultEraseAfter <= 0 || cfg.Security.TokenRefreshTimeout <= 0 {
		return ErrInvalidSecurityConfigs
	}

	if cfg.Workers.TokenRefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
