// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package resample

import "math"

// BytesPerTexel is the size of one RGBA8 texel.
const BytesPerTexel = 4

// maxDim bounds a single output dimension. Index maps store uint32 values
// and GPU dispatch sizes are uint32, so anything larger is unrepresentable.
const maxDim = math.MaxUint32 / BytesPerTexel

// ScaledLen returns round(n*factor), at least 1.
// ok is false if the result does not fit an output dimension.
func ScaledLen(n int, factor float64) (int, bool) {
	v := math.Round(float64(n) * factor)
	if math.IsNaN(v) || v > maxDim {
		return 0, false
	}
	if v < 1 {
		return 1, true
	}
	return int(v), true
}

// ImageBytes returns the byte size of a tightly packed width x height image.
// ok is false on overflow or non-positive dimensions.
func ImageBytes(width, height int) (int, bool) {
	if width <= 0 || height <= 0 || width > maxDim || height > maxDim {
		return 0, false
	}
	row := uint64(width) * BytesPerTexel
	total := row * uint64(height)
	if total/row != uint64(height) || total > math.MaxInt {
		return 0, false
	}
	return int(total), true
}

// IsInteger reports whether f is within tolerance of a whole number.
func IsInteger(f float64) bool {
	return math.Abs(f-math.Round(f)) < integerTolerance
}

// integerTolerance absorbs binary rounding of decimal factors such as
// 40.0/12.0*3.
const integerTolerance = 1e-9
