// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlags_AllFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := BindFlags(fs)

	err := fs.Parse([]string{
		"--config", "/etc/notevault.json",
		"--auth-host", "https://auth.example.com",
		"--api-host", "https://api.example.com",
		"--request-timeout", "7s",
		"-d", "/tmp/nv.db",
		"--kv-backend", "badger",
		"--kv-dir", "/tmp/kv",
		"--vault-erase-after", "1m",
		"--token-refresh-timeout", "2s",
		"--log-level", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "/etc/notevault.json", cfg.JSONFilePath)
	assert.Equal(t, "https://auth.example.com", cfg.Adapter.AuthHost)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.APIHost)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/nv.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "badger", cfg.Storage.KV.Backend)
	assert.Equal(t, "/tmp/kv", cfg.Storage.KV.Dir)
	assert.Equal(t, time.Minute, cfg.Security.VaultEraseAfter)
	assert.Equal(t, 2*time.Second, cfg.Security.TokenRefreshTimeout)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestBindFlags_NoFlagsLeavesZeroValues(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := BindFlags(fs)

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBindFlags_InvalidDuration(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)

	err := fs.Parse([]string{"--vault-erase-after", "forever"})
	assert.Error(t, err)
}
