package pxscale

import (
	"errors"
	"fmt"

	"github.com/gogpu/pxscale/internal/resample"
)

// Execute resamples src by per-axis factors fx and fy with the given mode on
// the given backend. It is the single dispatch point behind Scale,
// ResampleNearest and ResampleFractional; factors are used as given, without
// the clamp to 1 that Scale applies.
//
// Output dimensions depend only on src and the factors, never on the
// backend. Nearest output is identical on both backends. Hardware
// fractional output approximates the software box filter at block seams.
//
// A hardware request runs on the software path when no accelerator is
// registered or the accelerator declines or fails the job; that fallback is
// logged, not returned.
func Execute(mode ScaleMode, backend RenderBackend, src *Raster, fx, fy float64, opts ...Option) (*Raster, error) {
	if err := validSource(src); err != nil {
		return nil, err
	}
	outW, outH, err := outputSize(src, fx, fy)
	if err != nil {
		return nil, err
	}
	if backend != RenderBackendSoftware && backend != RenderBackendHardware {
		return nil, fmt.Errorf("pxscale: unknown render backend %v", backend)
	}
	o := buildOptions(opts)

	switch mode {
	case ScaleModeNearest:
		return nearest(src, outW, outH, fx, fy, backend, o)
	case ScaleModeFractionalOptimized:
		if resample.IsInteger(fx) && resample.IsInteger(fy) {
			return nearest(src, outW, outH, fx, fy, backend, o)
		}
		return fractionalOrNearest(src, outW, outH, fx, fy, backend, o)
	default:
		return nil, fmt.Errorf("pxscale: unknown scale mode %v", mode)
	}
}

// runAccelerated offers a job to the registered accelerator. It reports
// whether the accelerator completed it; on false the caller runs the
// software path.
func runAccelerated(mode ScaleMode, o options, run func(GPUAccelerator) error) bool {
	a := Accelerator()
	if a == nil {
		o.logger.Debug("pxscale: using software path", "mode", mode.String(), "err", ErrBackendUnavailable)
		return false
	}
	if !a.CanAccelerate(mode) {
		o.logger.Debug("pxscale: accelerator cannot run mode", "accelerator", a.Name(), "mode", mode.String())
		return false
	}
	if err := run(a); err != nil {
		if errors.Is(err, ErrFallbackToCPU) {
			o.logger.Debug("pxscale: accelerator declined job", "accelerator", a.Name(), "mode", mode.String(), "err", err)
		} else {
			o.logger.Warn("pxscale: accelerator failed, using software path", "accelerator", a.Name(), "mode", mode.String(), "err", err)
		}
		return false
	}
	return true
}
