// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package resample

// Box downsamples src by an exact integer factor k on both axes: each
// destination texel is the area average of a k x k source block.
//
// Color is averaged weighted by alpha (premultiplied accumulation) and
// written back straight, so fully transparent texels never bleed their
// hidden RGB into visible neighbours. Alpha is the plain block mean. All
// arithmetic is integer with round-half-up; there is no dithering.
//
// src must hold (dstW*k) x (dstH*k) texels at srcStride.
func Box(dst []byte, dstStride, dstW, dstH int, src []byte, srcStride, k int) {
	n := uint64(k * k)
	for dy := range dstH {
		drow := dst[dy*dstStride:]
		for dx := range dstW {
			var sumR, sumG, sumB, sumA uint64
			for by := range k {
				srow := src[(dy*k+by)*srcStride:]
				base := dx * k * BytesPerTexel
				for bx := range k {
					p := srow[base+bx*BytesPerTexel : base+bx*BytesPerTexel+BytesPerTexel]
					a := uint64(p[3])
					sumR += uint64(p[0]) * a
					sumG += uint64(p[1]) * a
					sumB += uint64(p[2]) * a
					sumA += a
				}
			}

			di := dx * BytesPerTexel
			if sumA == 0 {
				drow[di+0], drow[di+1], drow[di+2], drow[di+3] = 0, 0, 0, 0
				continue
			}
			half := sumA / 2
			drow[di+0] = uint8((sumR + half) / sumA) //nolint:gosec // weighted mean <= 255
			drow[di+1] = uint8((sumG + half) / sumA) //nolint:gosec // weighted mean <= 255
			drow[di+2] = uint8((sumB + half) / sumA) //nolint:gosec // weighted mean <= 255
			drow[di+3] = uint8((sumA + n/2) / n)     //nolint:gosec // mean <= 255
		}
	}
}
