package pxscale

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

// assertBlocks checks that out is src with every texel replicated into an
// n x m block.
func assertBlocks(t *testing.T, src, out *Raster, n, m int) {
	t.Helper()
	if out.Width() != src.Width()*n || out.Height() != src.Height()*m {
		t.Fatalf("size = %dx%d, want %dx%d", out.Width(), out.Height(), src.Width()*n, src.Height()*m)
	}
	for y := range out.Height() {
		for x := range out.Width() {
			if got, want := out.Texel(x, y), src.Texel(x/n, y/m); got != want {
				t.Fatalf("texel (%d, %d) = %v, want source (%d, %d) = %v", x, y, got, x/n, y/m, want)
			}
		}
	}
}

func TestScaleIntegerNearestBlocks(t *testing.T) {
	src := checker(t, 5, 3)
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("%dx", n), func(t *testing.T) {
			out, err := Scale(src, Request{Spec: Factor(float64(n)), Mode: ScaleModeNearest})
			if err != nil {
				t.Fatalf("Scale() error = %v", err)
			}
			assertBlocks(t, src, out, n, n)
		})
	}
}

func TestScaleFactorOneIsCopy(t *testing.T) {
	src := checker(t, 7, 4)
	for _, mode := range []ScaleMode{ScaleModeNearest, ScaleModeFractionalOptimized} {
		out, err := Scale(src, Request{Spec: Factor(1), Mode: mode})
		if err != nil {
			t.Fatalf("Scale(%v) error = %v", mode, err)
		}
		if !out.Equal(src) {
			t.Errorf("Scale(%v, 1x) differs from source", mode)
		}
		if &out.Pix()[0] == &src.Pix()[0] {
			t.Errorf("Scale(%v, 1x) returned the source buffer", mode)
		}
	}
}

func TestScaleClampsBelowOne(t *testing.T) {
	src := checker(t, 16, 16)
	for _, spec := range []ScaleSpec{Factor(0.5), TargetWidth(4), TargetSize(8, 8)} {
		out, err := Scale(src, Request{Spec: spec})
		if err != nil {
			t.Fatalf("Scale(%v) error = %v", spec, err)
		}
		if out.Width() != 16 || out.Height() != 16 {
			t.Errorf("Scale(%v) = %dx%d, want 16x16", spec, out.Width(), out.Height())
		}
	}
}

func TestFractionalMatchesNearestDimensions(t *testing.T) {
	src := checker(t, 13, 7)
	for _, f := range []float64{1.25, 1.5, 2.2, 3.7, 4.5, 5.01} {
		req := Request{Spec: Factor(f)}
		nn, err := Scale(src, req)
		if err != nil {
			t.Fatalf("nearest Scale(%v) error = %v", f, err)
		}
		req.Mode = ScaleModeFractionalOptimized
		fr, err := Scale(src, req)
		if err != nil {
			t.Fatalf("fractional Scale(%v) error = %v", f, err)
		}
		wantW, wantH := int(math.Round(13*f)), int(math.Round(7*f))
		if fr.Width() != wantW || fr.Height() != wantH || nn.Width() != wantW || nn.Height() != wantH {
			t.Errorf("factor %v: fractional %dx%d, nearest %dx%d, want %dx%d",
				f, fr.Width(), fr.Height(), nn.Width(), nn.Height(), wantW, wantH)
		}
	}
}

func TestScaleBackendsAgreeForNearest(t *testing.T) {
	resetAccelerator()
	t.Cleanup(resetAccelerator)
	if err := RegisterAccelerator(&mockAccelerator{name: "gpu", modes: allModes()}); err != nil {
		t.Fatalf("RegisterAccelerator() error = %v", err)
	}

	src := checker(t, 11, 9)
	for _, f := range []float64{1, 2, 3, 4.5} {
		sw, err := Scale(src, Request{Spec: Factor(f), Backend: RenderBackendSoftware})
		if err != nil {
			t.Fatalf("software Scale(%v) error = %v", f, err)
		}
		hw, err := Scale(src, Request{Spec: Factor(f), Backend: RenderBackendHardware})
		if err != nil {
			t.Fatalf("hardware Scale(%v) error = %v", f, err)
		}
		if !sw.Equal(hw) {
			t.Errorf("factor %v: software and hardware differ", f)
		}
	}
}

func TestScaleScenario16x16Factor4(t *testing.T) {
	src := checker(t, 16, 16)
	out, err := Scale(src, Request{Spec: Factor(4), Mode: ScaleModeNearest})
	if err != nil {
		t.Fatalf("Scale() error = %v", err)
	}
	assertBlocks(t, src, out, 4, 4)
}

func TestScaleScenarioTargetSize72(t *testing.T) {
	src := checker(t, 16, 16)
	req := Request{Spec: TargetSize(72, 72), Mode: ScaleModeFractionalOptimized}

	f, err := Resolve(req.Spec, 16, 16)
	if err != nil || f != 4.5 {
		t.Fatalf("Resolve() = %v, %v; want 4.5", f, err)
	}
	out, err := Scale(src, req)
	if err != nil {
		t.Fatalf("Scale() error = %v", err)
	}
	if out.Width() != 72 || out.Height() != 72 {
		t.Fatalf("size = %dx%d, want 72x72", out.Width(), out.Height())
	}

	// Every output texel whose 6x6 intermediate block maps to one source
	// texel keeps that texel's exact color. At 4.5x that is most of them.
	exact := 0
	palette := make(map[[4]byte]bool)
	for y := range 16 {
		for x := range 16 {
			palette[src.Texel(x, y)] = true
		}
	}
	for y := range 72 {
		for x := range 72 {
			if palette[out.Texel(x, y)] {
				exact++
			}
		}
	}
	if exact < 72*72/2 {
		t.Errorf("only %d of %d texels keep a source color", exact, 72*72)
	}
}

func TestScaleScenarioStretch32x48(t *testing.T) {
	src := checker(t, 16, 16)
	out, err := Scale(src, Request{Spec: StretchTo(32, 48), Mode: ScaleModeNearest})
	if err != nil {
		t.Fatalf("Scale() error = %v", err)
	}
	assertBlocks(t, src, out, 2, 3)
}

func TestScaleErrors(t *testing.T) {
	tests := []struct {
		name string
		src  *Raster
		req  Request
		want error
	}{
		{"nil source", nil, Request{Spec: Factor(2)}, ErrInvalidSource},
		{"empty raster", &Raster{}, Request{Spec: Factor(2)}, ErrInvalidSource},
		{"zero factor", checker(t, 2, 2), Request{Spec: Factor(0)}, ErrInvalidScale},
		{"NaN factor", checker(t, 2, 2), Request{Spec: Factor(math.NaN())}, ErrInvalidScale},
		{"output too large", checker(t, 2, 2), Request{Spec: Factor(1e12)}, ErrInvalidScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scale(tt.src, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Scale() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Scale(checker(t, 2, 2), Request{Mode: ScaleMode(7)}); err == nil {
		t.Error("Scale() with unknown mode should fail")
	}
	if _, err := Scale(checker(t, 2, 2), Request{Backend: RenderBackend(7)}); err == nil {
		t.Error("Scale() with unknown backend should fail")
	}
}

func TestScaleOutOfMemory(t *testing.T) {
	src := checker(t, 16, 16)
	// 64x64 output needs 16 KiB.
	_, err := Scale(src, Request{Spec: Factor(4)}, WithMemoryBudget(8<<10))
	if !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("Scale() error = %v, want ErrOutOfMemory", err)
	}
	_, err = Scale(src, Request{Spec: Factor(4.5), Mode: ScaleModeFractionalOptimized}, WithMemoryBudget(8<<10))
	if !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("fractional Scale() error = %v, want ErrOutOfMemory", err)
	}
}

func TestScaleDoesNotModifySource(t *testing.T) {
	src := checker(t, 9, 9)
	before := src.Clone()
	for _, mode := range []ScaleMode{ScaleModeNearest, ScaleModeFractionalOptimized} {
		if _, err := Scale(src, Request{Spec: Factor(2.5), Mode: mode}); err != nil {
			t.Fatalf("Scale() error = %v", err)
		}
	}
	if !src.Equal(before) {
		t.Error("Scale() modified its source")
	}
}

func TestOutputSize(t *testing.T) {
	src := checker(t, 16, 16)
	tests := []struct {
		spec ScaleSpec
		w, h int
	}{
		{Factor(4.5), 72, 72},
		{TargetSize(72, 100), 72, 72},
		{StretchTo(32, 48), 32, 48},
		{Factor(0.1), 16, 16},
	}
	for _, tt := range tests {
		w, h, err := OutputSize(src, Request{Spec: tt.spec})
		if err != nil || w != tt.w || h != tt.h {
			t.Errorf("OutputSize(%v) = %d, %d, %v; want %d, %d", tt.spec, w, h, err, tt.w, tt.h)
		}
	}
}

func TestRequestString(t *testing.T) {
	r := Request{Spec: Factor(4.5), Mode: ScaleModeFractionalOptimized, Backend: RenderBackendHardware}
	if got := r.String(); got != "4.5x/fractional-optimized/hardware" {
		t.Errorf("String() = %q", got)
	}
}
