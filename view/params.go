// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"fmt"

	"github.com/gogpu/pxscale"
)

// Params is an immutable snapshot of a View's inputs.
//
// Generation increases by one with every change; a higher generation is a
// more recent input.
type Params struct {
	Generation uint64
	Source     *pxscale.Raster
	Spec       pxscale.ScaleSpec
	Mode       pxscale.ScaleMode
	Backend    pxscale.RenderBackend
}

// Request returns the engine request described by p.
func (p Params) Request() pxscale.Request {
	return pxscale.Request{Spec: p.Spec, Mode: p.Mode, Backend: p.Backend}
}

// String returns a short description such as "#3 Raster(16x16) 4.5x/nearest/software".
func (p Params) String() string {
	src := "<no source>"
	if p.Source != nil {
		src = p.Source.String()
	}
	return fmt.Sprintf("#%d %s %s", p.Generation, src, p.Request())
}

// Event reports the outcome of one render. Rendered is true when the result
// was committed and is now returned by Current; Cached is true when it came
// from the result cache.
type Event struct {
	Generation uint64
	Rendered   bool
	Cached     bool
	Err        error
}
