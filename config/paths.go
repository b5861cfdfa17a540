// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for ledstage configuration.

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root returns the directory holding ledstage.json and apps/<name>/config.json.
func Root() (string, error) {
	mu.RLock()
	override := rootOverride
	mu.RUnlock()
	if override != "" {
		return override, nil
	}
	return configRoot()
}

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ledstage"), nil
}

func systemConfigPath() (string, error) {
	root, err := rootLocked()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func appConfigPath(app string) (string, error) {
	if app == "" {
		return "", fmt.Errorf("app name is required")
	}
	root, err := rootLocked()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "apps", app, "config.json"), nil
}

// rootLocked is Root for callers already holding mu.
func rootLocked() (string, error) {
	if rootOverride != "" {
		return rootOverride, nil
	}
	return configRoot()
}
