package pxscale

import (
	"fmt"

	"github.com/gogpu/pxscale/internal/resample"
)

// ResampleNearest scales src by factor with nearest-neighbor sampling on the
// CPU.
//
// The output is round(W*factor) x round(H*factor), at least 1x1. Output texel
// (x, y) is source texel (floor(x/factor), floor(y/factor)) clamped to the
// source bounds, so an integer factor N yields exact N x N blocks and a
// factor of 1 yields an identical copy. No color is ever interpolated.
func ResampleNearest(src *Raster, factor float64, opts ...Option) (*Raster, error) {
	return Execute(ScaleModeNearest, RenderBackendSoftware, src, factor, factor, opts...)
}

// outputSize computes the output dimensions for per-axis factors.
func outputSize(src *Raster, fx, fy float64) (int, int, error) {
	if !validFactor(fx) || !validFactor(fy) {
		return 0, 0, fmt.Errorf("%w: factor %vx%v", ErrInvalidScale, fx, fy)
	}
	w, okW := resample.ScaledLen(src.width, fx)
	h, okH := resample.ScaledLen(src.height, fy)
	if !okW || !okH {
		return 0, 0, fmt.Errorf("%w: output too large for %v at %vx%v", ErrInvalidScale, src, fx, fy)
	}
	return w, h, nil
}

// nearest performs the nearest-neighbor resample to outW x outH.
func nearest(src *Raster, outW, outH int, fx, fy float64, backend RenderBackend, o options) (*Raster, error) {
	dst, ok := newRasterWithin(outW, outH, o.budget)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d output exceeds budget of %d bytes", ErrOutOfMemory, outW, outH, o.budget)
	}

	xmap := resample.IndexMap(src.width, outW, fx)
	ymap := resample.IndexMap(src.height, outH, fy)

	if backend == RenderBackendHardware {
		job := NearestJob{Dst: gpuImage(dst), Src: gpuImage(src), XMap: xmap, YMap: ymap}
		if runAccelerated(ScaleModeNearest, o, func(a GPUAccelerator) error { return a.Nearest(job) }) {
			return dst, nil
		}
	}

	forRows(o, outH, func(y0, y1 int) {
		resample.Gather(dst.pix[y0*dst.stride:], dst.stride, src.pix, src.stride, xmap, ymap[y0:y1])
	})
	return dst, nil
}
