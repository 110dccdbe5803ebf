// Package pxscale scales pixel art so that it stays crisp.
//
// # Overview
//
// Integer scale factors reproduce every source texel as an exact N x N block
// with no blending. Non-integer factors can use the fractional-optimized
// mode, which upsamples by nearest-neighbor to K times the target size and
// box-filters back down: blocks come out evenly sized and only their seams
// are blended, instead of some rows and columns being a texel wider than
// others.
//
// # Quick Start
//
//	src, _ := pxscale.RasterFromImage(img)
//	out, err := pxscale.Scale(src, pxscale.Request{
//	    Spec: pxscale.Factor(4.5),
//	    Mode: pxscale.ScaleModeFractionalOptimized,
//	})
//
// # Scale specifications
//
// A ScaleSpec is resolved against the source size: Factor(f), TargetWidth,
// TargetHeight, TargetSize (fit inside, aspect preserved) and StretchTo
// (independent axes). Scale clamps the resolved factor to at least 1.
//
// # Backends
//
// RenderBackendSoftware runs on the CPU. RenderBackendHardware runs on a
// registered GPUAccelerator; importing the gpu sub-package registers one
// backed by gogpu/wgpu:
//
//	import _ "github.com/gogpu/pxscale/gpu"
//
// Nearest-neighbor output is identical on both backends. Hardware fractional
// output approximates the software box filter at block seams. A hardware
// request without a usable accelerator runs on the CPU.
//
// # Concurrency
//
// Every call is synchronous and shares no mutable state with other calls.
// WithWorkers spreads the software kernels over row bands without changing
// the result. The view sub-package renders changing inputs in the
// background and keeps only the newest result.
//
// # Logging
//
// pxscale is silent by default; see SetLogger.
package pxscale

// Version is the current version of the library.
const Version = "0.1.0"
