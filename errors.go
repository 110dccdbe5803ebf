package pxscale

import "errors"

// Errors returned by pxscale.
var (
	// ErrInvalidSource is returned when the source raster is nil or has a
	// non-positive dimension.
	ErrInvalidSource = errors.New("pxscale: invalid source raster")

	// ErrInvalidScale is returned for a non-positive, NaN or infinite scale
	// factor, a zero target dimension, or an output size that cannot be
	// represented.
	ErrInvalidScale = errors.New("pxscale: invalid scale")

	// ErrBackendUnavailable means the requested backend cannot run the job.
	// Engine calls never surface it; they fall back to the software path.
	ErrBackendUnavailable = errors.New("pxscale: backend unavailable")

	// ErrAllocation means the fractional intermediate buffer could not be
	// allocated within the memory budget. Engine calls absorb it by falling
	// back to nearest-neighbor at the same factor.
	ErrAllocation = errors.New("pxscale: resample allocation failed")

	// ErrOutOfMemory means even the nearest-neighbor output does not fit the
	// memory budget.
	ErrOutOfMemory = errors.New("pxscale: out of memory")

	// ErrSizeMismatch is returned by Compare for rasters of different sizes.
	ErrSizeMismatch = errors.New("pxscale: raster sizes differ")

	// ErrInvalidStride is returned when a row stride is smaller than width*4.
	ErrInvalidStride = errors.New("pxscale: stride too small for width")

	// ErrDataTooSmall is returned when a pixel buffer is shorter than
	// stride*height.
	ErrDataTooSmall = errors.New("pxscale: data buffer too small")
)
