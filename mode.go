package pxscale

import (
	"fmt"
	"strings"
)

// ScaleMode selects the resampling algorithm.
type ScaleMode int

const (
	// ScaleModeNearest copies the nearest source texel. Integer factors
	// produce exact N x N blocks.
	ScaleModeNearest ScaleMode = iota

	// ScaleModeFractionalOptimized upsamples by nearest to K times the target
	// size and box-filters back down, so non-integer factors get evenly sized
	// blocks with soft seams instead of uneven rows and columns.
	ScaleModeFractionalOptimized
)

// String returns the mode name accepted by ParseScaleMode.
func (m ScaleMode) String() string {
	switch m {
	case ScaleModeNearest:
		return "nearest"
	case ScaleModeFractionalOptimized:
		return "fractional-optimized"
	default:
		return fmt.Sprintf("ScaleMode(%d)", int(m))
	}
}

// ParseScaleMode parses "nearest", "fractional-optimized" or "fractional".
func ParseScaleMode(s string) (ScaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "nn":
		return ScaleModeNearest, nil
	case "fractional-optimized", "fractional_optimized", "fractional":
		return ScaleModeFractionalOptimized, nil
	default:
		return 0, fmt.Errorf("pxscale: unknown scale mode %q", s)
	}
}

// RenderBackend selects where resampling runs.
type RenderBackend int

const (
	// RenderBackendSoftware runs on the CPU.
	RenderBackendSoftware RenderBackend = iota

	// RenderBackendHardware runs on the registered GPU accelerator and falls
	// back to software when there is none or it declines the job.
	RenderBackendHardware
)

// String returns the backend name accepted by ParseRenderBackend.
func (b RenderBackend) String() string {
	switch b {
	case RenderBackendSoftware:
		return "software"
	case RenderBackendHardware:
		return "hardware"
	default:
		return fmt.Sprintf("RenderBackend(%d)", int(b))
	}
}

// ParseRenderBackend parses "software"/"cpu" or "hardware"/"gpu".
func ParseRenderBackend(s string) (RenderBackend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "software", "cpu":
		return RenderBackendSoftware, nil
	case "hardware", "gpu":
		return RenderBackendHardware, nil
	default:
		return 0, fmt.Errorf("pxscale: unknown render backend %q", s)
	}
}
