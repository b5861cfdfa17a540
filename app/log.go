// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"log"
	"sync/atomic"
)

var verbose atomic.Bool

// SetVerbose toggles per-cycle debug logging.
func SetVerbose(v bool) { verbose.Store(v) }

func debugf(format string, args ...interface{}) {
	if verbose.Load() {
		log.Printf(format, args...)
	}
}
