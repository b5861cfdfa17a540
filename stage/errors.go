// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package stage

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when a frame is rendered before a display
// sink is attached. It signals a setup bug and is never worth retrying.
var ErrNotConfigured = errors.New("stage: no display sink attached")

// TransientRenderError reports a frame that was composited but could not be
// flushed to the sink. Dirty flags are left set so the next cycle retries.
type TransientRenderError struct {
	Frame int // last frame applied by AdvanceFrame
	Err   error
}

func (e *TransientRenderError) Error() string {
	return fmt.Sprintf("stage: frame %d not flushed: %v", e.Frame, e.Err)
}

func (e *TransientRenderError) Unwrap() error { return e.Err }
