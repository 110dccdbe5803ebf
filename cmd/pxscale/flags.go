package main

import (
	"errors"
	"os"

	"github.com/spf13/pflag"

	"github.com/gogpu/pxscale"
)

// Environment variables that override the built-in defaults of --mode and
// --backend.
const (
	envMode    = "PXSCALE_MODE"
	envBackend = "PXSCALE_BACKEND"
)

// requestFlags holds the flags shared by every command that scales.
type requestFlags struct {
	scale      string
	width      int
	height     int
	stretch    bool
	mode       string
	backend    string
	multiplier int
	base64     bool
}

func (f *requestFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.scale, `scale`, `s`, ``, `scale factor or spec ("4.5", "w=72", "h=64", "72x72", "72x48!")`)
	fs.IntVar(&f.width, `width`, 0, `target width in pixels`)
	fs.IntVar(&f.height, `height`, 0, `target height in pixels`)
	fs.BoolVar(&f.stretch, `stretch`, false, `with --width and --height, scale each axis independently`)
	fs.StringVarP(&f.mode, `mode`, `m`, envOr(envMode, pxscale.ScaleModeNearest.String()), `scale mode: nearest or fractional-optimized`)
	fs.StringVarP(&f.backend, `backend`, `b`, envOr(envBackend, pxscale.RenderBackendHardware.String()), `render backend: software or hardware`)
	fs.IntVar(&f.multiplier, `multiplier`, pxscale.DefaultIntermediateMultiplier, `intermediate multiplier for fractional-optimized`)
	fs.BoolVar(&f.base64, `base64`, false, `treat the input argument as base64 image data`)
}

// spec builds the scale specification from --scale, --width, --height and
// --stretch.
func (f *requestFlags) spec() (pxscale.ScaleSpec, error) {
	sized := f.width != 0 || f.height != 0
	switch {
	case sized && f.scale != "":
		return pxscale.ScaleSpec{}, errors.New("--scale cannot be combined with --width or --height")
	case f.stretch && (f.width == 0 || f.height == 0):
		return pxscale.ScaleSpec{}, errors.New("--stretch needs both --width and --height")
	case f.width != 0 && f.height != 0:
		if f.stretch {
			return pxscale.StretchTo(f.width, f.height), nil
		}
		return pxscale.TargetSize(f.width, f.height), nil
	case f.width != 0:
		return pxscale.TargetWidth(f.width), nil
	case f.height != 0:
		return pxscale.TargetHeight(f.height), nil
	default:
		return pxscale.ParseScaleSpec(f.scale)
	}
}

// request builds the engine request from the flags.
func (f *requestFlags) request() (pxscale.Request, error) {
	spec, err := f.spec()
	if err != nil {
		return pxscale.Request{}, err
	}
	mode, err := pxscale.ParseScaleMode(f.mode)
	if err != nil {
		return pxscale.Request{}, err
	}
	backend, err := pxscale.ParseRenderBackend(f.backend)
	if err != nil {
		return pxscale.Request{}, err
	}
	return pxscale.Request{Spec: spec, Mode: mode, Backend: backend}, nil
}

func (f *requestFlags) options() []pxscale.Option {
	return []pxscale.Option{pxscale.WithIntermediateMultiplier(f.multiplier)}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
