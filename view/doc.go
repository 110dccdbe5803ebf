// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package view keeps a pixel-art display target in sync with changing
// inputs.
//
// A View holds the latest source raster, scale specification, mode and
// backend. Every Set* call takes an immutable Params snapshot with a new
// generation number and renders it in the background. A finished render is
// committed only if no newer generation has been committed, so the
// displayed raster always reflects the most recent input (last write wins)
// and is never partially written.
//
// Example:
//
//	v := view.New(view.OnRender(func(e view.Event) {
//	    if e.Err != nil {
//	        log.Printf("render %d failed: %v", e.Generation, e.Err)
//	    }
//	}))
//	defer v.Close()
//
//	v.SetSpec(pxscale.TargetSize(72, 72))
//	v.SetMode(pxscale.ScaleModeFractionalOptimized)
//	v.SetSource(sprite)
//	if err := v.Wait(ctx); err == nil {
//	    show(v.Current())
//	}
package view
