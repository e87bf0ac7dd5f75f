// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the configuration flags on fs and returns the
// StructuredConfig they write into. The returned value is only meaningful
// after fs has been parsed; pass it to [GetClientConfig].
//
// Flags:
//
//	--config                  json file path with configs
//	--auth-host               identity server base URL
//	--api-host                API server base URL
//	--request-timeout         outbound request timeout (e.g. "15s")
//	-d, --db                  sqlite database path
//	--kv-backend              secret store backend (sqlite|badger)
//	--kv-dir                  badger data directory
//	--vault-erase-after       vault password lifetime (e.g. "30m")
//	--token-refresh-timeout   token refresh bound (e.g. "10s")
//	--log-level               log level (debug|info|warn|error)
func BindFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path")
	fs.StringVar(&cfg.Adapter.AuthHost, "auth-host", "", "Identity server base URL")
	fs.StringVar(&cfg.Adapter.APIHost, "api-host", "", "API server base URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Outbound request timeout (e.g. 15s)")
	fs.StringVarP(&cfg.Storage.DB.DSN, "db", "d", "", "Local sqlite database path")
	fs.StringVar(&cfg.Storage.KV.Backend, "kv-backend", "", "Secret store backend (sqlite|badger)")
	fs.StringVar(&cfg.Storage.KV.Dir, "kv-dir", "", "Badger data directory")
	fs.DurationVar(&cfg.Security.VaultEraseAfter, "vault-erase-after", 0, "Vault password lifetime (e.g. 30m)")
	fs.DurationVar(&cfg.Security.TokenRefreshTimeout, "token-refresh-timeout", 0, "Token refresh bound (e.g. 10s)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	return cfg
}
