// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes one command line and returns its error, which has already
	// been printed.
	Run() error
}

var _ Client = (*CLI)(nil)
