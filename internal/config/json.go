// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		ClientID string `json:"client_id"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Adapter struct {
		AuthHost       string   `json:"auth_host"`
		APIHost        string   `json:"api_host"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		KV struct {
			Backend string `json:"backend"`
			Dir     string `json:"dir"`
		} `json:"kv,omitempty"`
	} `json:"storage,omitempty"`

	Security struct {
		ArgonTime           uint32   `json:"argon_time"`
		ArgonMemory         uint32   `json:"argon_memory"`
		ArgonThreads        uint8    `json:"argon_threads"`
		VaultEraseAfter     Duration `json:"vault_erase_after"`
		TokenRefreshTimeout Duration `json:"token_refresh_timeout"`
	} `json:"security,omitempty"`

	Workers struct {
		TokenRefreshInterval Duration `json:"token_refresh_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ClientID: jsonCfg.App.ClientID,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Adapter: Adapter{
			AuthHost:       jsonCfg.Adapter.AuthHost,
			APIHost:        jsonCfg.Adapter.APIHost,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			KV: KV{
				Backend: jsonCfg.Storage.KV.Backend,
				Dir:     jsonCfg.Storage.KV.Dir,
			},
		},
		Security: Security{
			ArgonTime:           jsonCfg.Security.ArgonTime,
			ArgonMemory:         jsonCfg.Security.ArgonMemory,
			ArgonThreads:        jsonCfg.Security.ArgonThreads,
			VaultEraseAfter:     time.Duration(jsonCfg.Security.VaultEraseAfter),
			TokenRefreshTimeout: time.Duration(jsonCfg.Security.TokenRefreshTimeout),
		},
		Workers: Workers{
			TokenRefreshInterval: time.Duration(jsonCfg.Workers.TokenRefreshInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
