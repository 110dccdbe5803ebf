package pxscale

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"
)

func TestResampleNearest(t *testing.T) {
	src := checker(t, 4, 4)
	out, err := ResampleNearest(src, 1.5)
	if err != nil {
		t.Fatalf("ResampleNearest() error = %v", err)
	}
	if out.Width() != 6 || out.Height() != 6 {
		t.Fatalf("size = %dx%d, want 6x6", out.Width(), out.Height())
	}
	// floor(x/1.5) for x = 0..5 is 0 0 1 2 2 3.
	cols := []int{0, 0, 1, 2, 2, 3}
	for y := range 6 {
		for x := range 6 {
			if out.Texel(x, y) != src.Texel(cols[x], cols[y]) {
				t.Fatalf("texel (%d, %d) = %v, want source (%d, %d)", x, y, out.Texel(x, y), cols[x], cols[y])
			}
		}
	}
}

func TestResampleNearestDownscale(t *testing.T) {
	src := checker(t, 8, 8)
	out, err := ResampleNearest(src, 0.5)
	if err != nil {
		t.Fatalf("ResampleNearest() error = %v", err)
	}
	if out.Width() != 4 || out.Height() != 4 {
		t.Fatalf("size = %dx%d, want 4x4", out.Width(), out.Height())
	}
	if out.Texel(3, 1) != src.Texel(6, 2) {
		t.Errorf("texel (3, 1) = %v, want source (6, 2)", out.Texel(3, 1))
	}
}

func TestResampleNearestErrors(t *testing.T) {
	if _, err := ResampleNearest(nil, 2); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("ResampleNearest(nil) error = %v, want ErrInvalidSource", err)
	}
	if _, err := ResampleNearest(checker(t, 2, 2), -1); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("ResampleNearest(-1) error = %v, want ErrInvalidScale", err)
	}
}

func TestResampleFractionalUniformStaysUniform(t *testing.T) {
	src, _ := NewRaster(5, 3)
	for i := 0; i < len(src.Pix()); i += 4 {
		copy(src.Pix()[i:], []byte{200, 100, 50, 255})
	}
	out, err := ResampleFractional(src, 2.7)
	if err != nil {
		t.Fatalf("ResampleFractional() error = %v", err)
	}
	for y := range out.Height() {
		for x := range out.Width() {
			if got := out.Texel(x, y); got != [4]byte{200, 100, 50, 255} {
				t.Fatalf("texel (%d, %d) = %v, want uniform", x, y, got)
			}
		}
	}
}

func TestResampleFractionalSeamBlends(t *testing.T) {
	// Two columns, black then white; 1.5x gives 3 output columns and the
	// middle one straddles the edge.
	src, _ := RasterFromRaw([]byte{0, 0, 0, 255, 255, 255, 255, 255}, 2, 1, 8)
	out, err := ResampleFractional(src, 1.5)
	if err != nil {
		t.Fatalf("ResampleFractional() error = %v", err)
	}
	if out.Width() != 3 || out.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", out.Width(), out.Height())
	}
	if got := out.Texel(0, 0); got != [4]byte{0, 0, 0, 255} {
		t.Errorf("left = %v, want black", got)
	}
	if got := out.Texel(2, 0); got != [4]byte{255, 255, 255, 255} {
		t.Errorf("right = %v, want white", got)
	}
	// Intermediate is 18 wide: columns 0..8 black, 9..17 white. The middle
	// block 6..11 is half of each.
	if got := out.Texel(1, 0); got != [4]byte{128, 128, 128, 255} {
		t.Errorf("middle = %v, want 50%% gray", got)
	}
}

func TestResampleFractionalIntegerIsExact(t *testing.T) {
	src := checker(t, 6, 5)
	out, err := ResampleFractional(src, 3)
	if err != nil {
		t.Fatalf("ResampleFractional() error = %v", err)
	}
	assertBlocks(t, src, out, 3, 3)
}

func TestResampleFractionalMultiplier(t *testing.T) {
	src := checker(t, 6, 6)
	for _, k := range []int{2, 4, 6, 8} {
		out, err := ResampleFractional(src, 2.5, WithIntermediateMultiplier(k))
		if err != nil {
			t.Fatalf("K=%d: error = %v", k, err)
		}
		if out.Width() != 15 || out.Height() != 15 {
			t.Errorf("K=%d: size = %dx%d, want 15x15", k, out.Width(), out.Height())
		}
	}
}

func TestResampleFractionalAllocationFallback(t *testing.T) {
	src := checker(t, 16, 16)
	// 72x72 output fits; the 432x432 intermediate does not.
	out, err := ResampleFractional(src, 4.5, WithMemoryBudget(64<<10))
	if err != nil {
		t.Fatalf("ResampleFractional() error = %v, want nearest fallback", err)
	}
	want, err := ResampleNearest(src, 4.5)
	if err != nil {
		t.Fatalf("ResampleNearest() error = %v", err)
	}
	if !out.Equal(want) {
		t.Error("allocation fallback should equal nearest output at the same factor")
	}
}

// sourceColorShare returns the fraction of out texels whose color appears in
// src.
func sourceColorShare(src *Raster, out image.Image) float64 {
	palette := make(map[[4]byte]bool)
	for y := range src.Height() {
		for x := range src.Width() {
			palette[src.Texel(x, y)] = true
		}
	}
	b := out.Bounds()
	hits := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(out.At(x, y)).(color.NRGBA) //nolint:forcetypeassert // NRGBAModel always yields NRGBA
			if palette[[4]byte{c.R, c.G, c.B, c.A}] {
				hits++
			}
		}
	}
	return float64(hits) / float64(b.Dx()*b.Dy())
}

func TestResampleFractionalSharperThanBilinear(t *testing.T) {
	src := checker(t, 16, 16)
	frac, err := ResampleFractional(src, 4.5)
	if err != nil {
		t.Fatalf("ResampleFractional() error = %v", err)
	}

	bilinear := image.NewNRGBA(image.Rect(0, 0, 72, 72))
	draw.BiLinear.Scale(bilinear, bilinear.Bounds(), src, src.Bounds(), draw.Src, nil)

	fracShare := sourceColorShare(src, frac)
	bilinearShare := sourceColorShare(src, bilinear)
	if fracShare <= bilinearShare {
		t.Errorf("fractional keeps %.2f of source colors, bilinear %.2f; want fractional sharper",
			fracShare, bilinearShare)
	}
}

func TestWorkersDoNotChangeOutput(t *testing.T) {
	src := checker(t, 23, 41)
	for _, mode := range []ScaleMode{ScaleModeNearest, ScaleModeFractionalOptimized} {
		for _, f := range []float64{2, 3.3, 4.5} {
			req := Request{Spec: Factor(f), Mode: mode}
			serial, err := Scale(src, req)
			if err != nil {
				t.Fatalf("Scale(%v) error = %v", req, err)
			}
			par, err := Scale(src, req, WithWorkers(4))
			if err != nil {
				t.Fatalf("Scale(%v, WithWorkers(4)) error = %v", req, err)
			}
			if !serial.Equal(par) {
				t.Errorf("%v: parallel output differs from serial", req)
			}
		}
	}
}
