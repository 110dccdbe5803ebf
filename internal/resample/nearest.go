// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package resample

import "math"

// IndexMap returns, for each of outLen destination positions i, the source
// index floor(i/factor) clamped to [0, srcLen-1].
//
// Quotients within integerTolerance below a whole number snap up to it, so a
// factor such as 40.0/12.0 places block edges where the exact ratio would.
func IndexMap(srcLen, outLen int, factor float64) []uint32 {
	m := make([]uint32, outLen)
	last := srcLen - 1
	for i := range m {
		q := float64(i) / factor
		s := int(math.Floor(q + integerTolerance))
		if s > last {
			s = last
		}
		if s < 0 {
			s = 0
		}
		m[i] = uint32(s) //nolint:gosec // bounded by srcLen
	}
	return m
}

// IndexMapFit maps outLen destination positions onto srcLen source positions
// so that the whole source spans the destination exactly:
// floor(i*srcLen/outLen), computed in integers.
//
// This is the floor rule of IndexMap with factor outLen/srcLen, without the
// binary rounding of that quotient.
func IndexMapFit(srcLen, outLen int) []uint32 {
	m := make([]uint32, outLen)
	s, o := uint64(srcLen), uint64(outLen)
	for i := range m {
		m[i] = uint32(uint64(i) * s / o) //nolint:gosec // < srcLen
	}
	return m
}

// Gather fills dst with src texels through the index maps:
// dst(x, y) = src(xmap[x], ymap[y]).
//
// dst must hold len(ymap) rows of len(xmap) texels at dstStride; every map
// entry must address a texel inside src.
func Gather(dst []byte, dstStride int, src []byte, srcStride int, xmap, ymap []uint32) {
	rowBytes := len(xmap) * BytesPerTexel
	for y, sy := range ymap {
		drow := dst[y*dstStride : y*dstStride+rowBytes]

		// Vertical runs repeat the previous destination row.
		if y > 0 && ymap[y-1] == sy {
			copy(drow, dst[(y-1)*dstStride:(y-1)*dstStride+rowBytes])
			continue
		}

		srow := src[int(sy)*srcStride:]
		for x, sx := range xmap {
			si := int(sx) * BytesPerTexel
			di := x * BytesPerTexel
			copy(drow[di:di+BytesPerTexel], srow[si:si+BytesPerTexel])
		}
	}
}
