// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const buildInfoUnknown = "N/A"

// BuildInfo is the build metadata injected by linker flags and shown by
// `notevault --version`.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewBuildInfo fills empty fields with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	orUnknown := func(s string) string {
		if s == "" {
			return buildInfoUnknown
		}
		return s
	}
	return BuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", b.Version, b.Date, b.Commit)
}
