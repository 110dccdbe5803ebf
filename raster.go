package pxscale

import (
	"bytes"
	"fmt"

	"github.com/gogpu/pxscale/internal/resample"
)

// Raster is an immutable-by-convention RGBA8 image: non-premultiplied, four
// bytes per texel, rows separated by Stride bytes.
//
// Resamplers never modify their source; every call returns a new Raster.
type Raster struct {
	width  int
	height int
	stride int
	pix    []byte
}

// NewRaster allocates a transparent width x height raster with a tight stride.
func NewRaster(width, height int) (*Raster, error) {
	n, ok := resample.ImageBytes(width, height)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSource, width, height)
	}
	return &Raster{
		width:  width,
		height: height,
		stride: width * resample.BytesPerTexel,
		pix:    make([]byte, n),
	}, nil
}

// RasterFromRaw validates pix as a width x height RGBA8 image with the given
// row stride and returns a Raster holding a copy of it. Later changes to pix
// do not affect the Raster.
func RasterFromRaw(pix []byte, width, height, stride int) (*Raster, error) {
	if _, ok := resample.ImageBytes(width, height); !ok {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSource, width, height)
	}
	rowBytes := width * resample.BytesPerTexel
	if stride < rowBytes {
		return nil, fmt.Errorf("%w: stride %d < %d", ErrInvalidStride, stride, rowBytes)
	}
	// The last row may omit its padding.
	need := stride*(height-1) + rowBytes
	if len(pix) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrDataTooSmall, len(pix), need)
	}

	r, err := NewRaster(width, height)
	if err != nil {
		return nil, err
	}
	if stride == rowBytes {
		copy(r.pix, pix[:len(r.pix)])
		return r, nil
	}
	for y := range height {
		copy(r.Row(y), pix[y*stride:y*stride+rowBytes])
	}
	return r, nil
}

// newRasterWithin allocates an output raster if its size fits budget bytes.
// ok is false when the size overflows or exceeds the budget.
func newRasterWithin(width, height int, budget int64) (*Raster, bool) {
	n, ok := resample.ImageBytes(width, height)
	if !ok || int64(n) > budget {
		return nil, false
	}
	return &Raster{
		width:  width,
		height: height,
		stride: width * resample.BytesPerTexel,
		pix:    make([]byte, n),
	}, true
}

// Width returns the raster width in texels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in texels.
func (r *Raster) Height() int { return r.height }

// Stride returns the number of bytes between the starts of two rows.
func (r *Raster) Stride() int { return r.stride }

// Pix returns the underlying texel bytes. Callers must treat the slice as
// read-only; a Raster may be shared between goroutines and views.
func (r *Raster) Pix() []byte { return r.pix }

// Row returns the width*4 bytes of row y.
func (r *Raster) Row(y int) []byte {
	start := y * r.stride
	return r.pix[start : start+r.width*resample.BytesPerTexel]
}

// Texel returns the RGBA bytes at (x, y). Out-of-range coordinates return
// transparent black.
func (r *Raster) Texel(x, y int) [4]byte {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return [4]byte{}
	}
	i := y*r.stride + x*resample.BytesPerTexel
	return [4]byte{r.pix[i], r.pix[i+1], r.pix[i+2], r.pix[i+3]}
}

// Clone returns a deep copy with a tight stride.
func (r *Raster) Clone() *Raster {
	c, _ := RasterFromRaw(r.pix, r.width, r.height, r.stride)
	return c
}

// Equal reports whether r and o have the same size and identical texels.
// Row padding is ignored.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.width != o.width || r.height != o.height {
		return false
	}
	for y := range r.height {
		if !bytes.Equal(r.Row(y), o.Row(y)) {
			return false
		}
	}
	return true
}

// String returns a short description such as "Raster(16x16)".
func (r *Raster) String() string {
	if r == nil {
		return "Raster(nil)"
	}
	return fmt.Sprintf("Raster(%dx%d)", r.width, r.height)
}

// validSource checks the invariants every resampler relies on.
func validSource(src *Raster) error {
	if src == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidSource)
	}
	if src.width <= 0 || src.height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSource, src.width, src.height)
	}
	if src.stride < src.width*resample.BytesPerTexel || len(src.pix) < src.stride*(src.height-1)+src.width*resample.BytesPerTexel {
		return fmt.Errorf("%w: inconsistent buffer", ErrInvalidSource)
	}
	return nil
}
