// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: assets/errors.go
// Summary: Error type for assets that fail to load during scene setup.

package assets

import "fmt"

// ResourceLoadError reports an image, font or emoji asset that could not be
// read or decoded. Loaders return it at construction time so callers can
// abort before a render loop starts.
type ResourceLoadError struct {
	Kind string // "image", "font" or "emoji"
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Kind, e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }
