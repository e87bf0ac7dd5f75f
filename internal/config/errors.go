// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid adapter settings
	// (for example, a missing host or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN or an unknown KV backend).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing client id).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidSecurityConfigs indicates invalid secret lifetime settings.
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero refresh interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
