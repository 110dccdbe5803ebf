package pxscale

import (
	"errors"
	"fmt"

	"github.com/gogpu/pxscale/internal/resample"
)

// ResampleFractional scales src by factor with the fractional-optimized
// algorithm on the CPU:
//
//  1. the target size is round(W*factor) x round(H*factor), at least 1x1;
//  2. src is nearest-neighbor upsampled to K times the target size;
//  3. that intermediate is box-filtered by K on each axis to the target size.
//
// K is DefaultIntermediateMultiplier unless WithIntermediateMultiplier says
// otherwise. Integer factors take the nearest-neighbor path, which the two
// stages would reproduce exactly anyway.
//
// If the intermediate does not fit the memory budget the call falls back to
// ResampleNearest at the same factor and logs a warning. ErrOutOfMemory is
// returned only when that fallback fails too.
func ResampleFractional(src *Raster, factor float64, opts ...Option) (*Raster, error) {
	return Execute(ScaleModeFractionalOptimized, RenderBackendSoftware, src, factor, factor, opts...)
}

// fractional performs the two-stage resample to outW x outH. It returns
// ErrAllocation when the intermediate cannot be allocated.
func fractional(src *Raster, outW, outH int, backend RenderBackend, o options) (*Raster, error) {
	k := o.multiplier
	interW, interH := outW*k, outH*k
	interBytes, ok := resample.ImageBytes(interW, interH)
	outBytes, okOut := resample.ImageBytes(outW, outH)
	if !ok || !okOut || int64(interBytes)+int64(outBytes) > o.budget {
		return nil, fmt.Errorf("%w: %dx%d intermediate (K=%d) exceeds budget of %d bytes",
			ErrAllocation, interW, interH, k, o.budget)
	}

	dst, _ := newRasterWithin(outW, outH, o.budget)

	// Stage 1 maps the whole source onto the intermediate exactly, so every
	// source texel covers the same number of intermediate texels, give or take one.
	xmap := resample.IndexMapFit(src.width, interW)
	ymap := resample.IndexMapFit(src.height, interH)

	o.logger.Debug("pxscale: fractional resample",
		"src", src.String(), "intermediate", fmt.Sprintf("%dx%d", interW, interH),
		"dst", dst.String(), "k", k, "backend", backend.String())

	if backend == RenderBackendHardware {
		job := FractionalJob{Dst: gpuImage(dst), Src: gpuImage(src), XMap: xmap, YMap: ymap, Multiplier: k}
		if runAccelerated(ScaleModeFractionalOptimized, o, func(a GPUAccelerator) error { return a.Fractional(job) }) {
			return dst, nil
		}
	}

	interStride := interW * resample.BytesPerTexel
	inter := make([]byte, interBytes)
	forRows(o, interH, func(y0, y1 int) {
		resample.Gather(inter[y0*interStride:], interStride, src.pix, src.stride, xmap, ymap[y0:y1])
	})
	forRows(o, outH, func(y0, y1 int) {
		resample.Box(dst.pix[y0*dst.stride:], dst.stride, outW, y1-y0, inter[y0*k*interStride:], interStride, k)
	})
	return dst, nil
}

// fractionalOrNearest runs fractional and absorbs ErrAllocation by falling
// back to nearest at the same factors.
func fractionalOrNearest(src *Raster, outW, outH int, fx, fy float64, backend RenderBackend, o options) (*Raster, error) {
	dst, err := fractional(src, outW, outH, backend, o)
	if err == nil {
		return dst, nil
	}
	if !errors.Is(err, ErrAllocation) {
		return nil, err
	}
	o.logger.Warn("pxscale: fractional resample failed, using nearest-neighbor", "err", err)
	return nearest(src, outW, outH, fx, fy, backend, o)
}
