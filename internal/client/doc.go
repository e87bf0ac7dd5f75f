// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the notevault command line.
//
// [App] wires the local storages, the auth adapter and the client services
// for one process. [CLI] exposes them as cobra commands grouped under vault,
// note, token and account.
package client
