// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo is the build metadata reported by the version endpoint.
//
// Date and Commit are injected by linker flags during CI/CD and are empty in
// local builds.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"build_date,omitempty"`
	Commit  string `json:"build_commit,omitempty"`
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
// Placeholder values left by a build without linker flags are dropped.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orEmpty(buildVersion),
		Date:    orEmpty(buildDate),
		Commit:  orEmpty(buildCommit),
	}
}

func orEmpty(v string) string {
	if v == "N/A" {
		return ""
	}
	return v
}
