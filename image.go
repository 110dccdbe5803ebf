package pxscale

import (
	"image"
	"image/color"
)

// Raster implements image.Image so results can go straight to the standard
// encoders.
var _ image.Image = (*Raster)(nil)

// ColorModel returns color.NRGBAModel.
func (r *Raster) ColorModel() color.Model { return color.NRGBAModel }

// Bounds returns (0, 0)-(Width, Height).
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.width, r.height) }

// At returns the texel at (x, y) as color.NRGBA.
func (r *Raster) At(x, y int) color.Color { return r.NRGBAAt(x, y) }

// NRGBAAt returns the texel at (x, y). Out-of-range coordinates return
// transparent black.
func (r *Raster) NRGBAAt(x, y int) color.NRGBA {
	t := r.Texel(x, y)
	return color.NRGBA{R: t[0], G: t[1], B: t[2], A: t[3]}
}

// ToImage copies the raster into a new *image.NRGBA.
func (r *Raster) ToImage() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	for y := range r.height {
		copy(img.Pix[y*img.Stride:], r.Row(y))
	}
	return img
}

// RasterFromImage converts any image.Image into a Raster. *image.NRGBA is
// copied row by row; other types go through color.NRGBAModel, which
// un-premultiplies *image.RGBA and friends.
func RasterFromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, ErrInvalidSource
	}
	b := img.Bounds()
	r, err := NewRaster(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	if n, ok := img.(*image.NRGBA); ok {
		for y := range r.height {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(r.Row(y), n.Pix[off:off+len(r.Row(y))])
		}
		return r, nil
	}

	for y := range r.height {
		row := r.Row(y)
		for x := range r.width {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA) //nolint:forcetypeassert // NRGBAModel always yields NRGBA
			i := x * 4
			row[i+0], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return r, nil
}
