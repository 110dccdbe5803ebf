package pxscale

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Diff summarizes how two equally sized rasters differ.
type Diff struct {
	Pixels     int     // texels compared
	Mismatched int     // texels whose bytes differ
	MaxChannel uint8   // largest absolute difference in any channel
	MeanDeltaE float64 // mean CIE76 distance over all texels
	MaxDeltaE  float64 // largest CIE76 distance
}

// Identical reports whether no texel differs.
func (d Diff) Identical() bool { return d.Mismatched == 0 }

// String formats d for logs and the CLI.
func (d Diff) String() string {
	return fmt.Sprintf("%d/%d texels differ, max channel delta %d, mean dE %.3f, max dE %.3f",
		d.Mismatched, d.Pixels, d.MaxChannel, d.MeanDeltaE, d.MaxDeltaE)
}

// Compare measures the perceptual difference between a and b. Colors are
// composited over white before conversion to Lab, so differences hidden by
// full transparency do not count.
func Compare(a, b *Raster) (Diff, error) {
	if err := validSource(a); err != nil {
		return Diff{}, err
	}
	if err := validSource(b); err != nil {
		return Diff{}, err
	}
	if a.width != b.width || a.height != b.height {
		return Diff{}, fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, a, b)
	}

	d := Diff{Pixels: a.width * a.height}
	var sum float64
	for y := range a.height {
		ra, rb := a.Row(y), b.Row(y)
		for i := 0; i < len(ra); i += 4 {
			pa, pb := ra[i:i+4], rb[i:i+4]
			if pa[0] == pb[0] && pa[1] == pb[1] && pa[2] == pb[2] && pa[3] == pb[3] {
				continue
			}
			d.Mismatched++
			for c := range 4 {
				d.MaxChannel = max(d.MaxChannel, absDiff(pa[c], pb[c]))
			}
			de := overWhite(pa).DistanceCIE76(overWhite(pb))
			sum += de
			d.MaxDeltaE = max(d.MaxDeltaE, de)
		}
	}
	if d.Pixels > 0 {
		d.MeanDeltaE = sum / float64(d.Pixels)
	}
	return d, nil
}

func overWhite(p []byte) colorful.Color {
	a := float64(p[3]) / 255
	mix := func(v byte) float64 { return float64(v)/255*a + (1 - a) }
	return colorful.Color{R: mix(p[0]), G: mix(p[1]), B: mix(p[2])}
}

func absDiff(x, y uint8) uint8 {
	if x > y {
		return x - y
	}
	return y - x
}
