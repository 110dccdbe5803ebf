package pxscale

import (
	"fmt"
)

// Request is everything Scale needs besides the source raster.
// The zero Request copies the source with nearest-neighbor on the CPU.
type Request struct {
	Spec    ScaleSpec
	Mode    ScaleMode
	Backend RenderBackend
}

// Validate reports an unknown mode or backend.
func (r Request) Validate() error {
	if r.Mode != ScaleModeNearest && r.Mode != ScaleModeFractionalOptimized {
		return fmt.Errorf("pxscale: unknown scale mode %v", r.Mode)
	}
	if r.Backend != RenderBackendSoftware && r.Backend != RenderBackendHardware {
		return fmt.Errorf("pxscale: unknown render backend %v", r.Backend)
	}
	return nil
}

// String returns a compact description such as "4.5x/fractional-optimized/hardware".
func (r Request) String() string {
	return r.Spec.String() + "/" + r.Mode.String() + "/" + r.Backend.String()
}

// Scale resolves req.Spec against src, clamps the factors to at least 1 and
// resamples with req.Mode on req.Backend. It is a pure function of its
// arguments: src is never modified and the result is a new Raster.
//
// Errors: ErrInvalidSource, ErrInvalidScale, or ErrOutOfMemory when not even
// the nearest-neighbor output fits the memory budget. Backend and
// intermediate-allocation failures are absorbed by fallbacks.
func Scale(src *Raster, req Request, opts ...Option) (*Raster, error) {
	fx, fy, err := effectiveAxes(src, req)
	if err != nil {
		return nil, err
	}
	return Execute(req.Mode, req.Backend, src, fx, fy, opts...)
}

// OutputSize reports the size Scale would produce for src and req without
// resampling.
func OutputSize(src *Raster, req Request) (w, h int, err error) {
	fx, fy, err := effectiveAxes(src, req)
	if err != nil {
		return 0, 0, err
	}
	return outputSize(src, fx, fy)
}

func effectiveAxes(src *Raster, req Request) (float64, float64, error) {
	if err := validSource(src); err != nil {
		return 0, 0, err
	}
	if err := req.Validate(); err != nil {
		return 0, 0, err
	}
	fx, fy, err := ResolveAxes(req.Spec, src.width, src.height)
	if err != nil {
		return 0, 0, err
	}
	return EffectiveFactor(fx), EffectiveFactor(fy), nil
}
