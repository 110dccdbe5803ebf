package pxscale

import (
	"errors"
	"sync"

	"github.com/gogpu/gpucontext"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot run this job.
// The caller falls back to the software path.
var ErrFallbackToCPU = errors.New("pxscale: falling back to CPU resampling")

// GPUImage describes an RGBA8 pixel buffer handed to an accelerator:
// non-premultiplied, 4 bytes per texel, rows Stride bytes apart.
type GPUImage struct {
	Data          []uint8
	Width, Height int
	Stride        int
}

func gpuImage(r *Raster) GPUImage {
	return GPUImage{Data: r.pix, Width: r.width, Height: r.height, Stride: r.stride}
}

// NearestJob is a nearest-neighbor gather: Dst(x, y) = Src(XMap[x], YMap[y]).
// len(XMap) == Dst.Width and len(YMap) == Dst.Height.
type NearestJob struct {
	Dst, Src   GPUImage
	XMap, YMap []uint32
}

// FractionalJob is the two-stage fractional resample. XMap and YMap gather
// Src into an intermediate of Dst.Width*Multiplier x Dst.Height*Multiplier
// texels, which is then reduced by Multiplier on each axis into Dst.
type FractionalJob struct {
	Dst, Src   GPUImage
	XMap, YMap []uint32
	Multiplier int
}

// GPUAccelerator is an optional GPU resampling provider.
//
// When one is registered, RenderBackendHardware requests go to it first.
// If it returns ErrFallbackToCPU or any other error, the job silently runs
// on the software path.
//
// Implementations live in GPU backend packages and register on import:
//
//	import _ "github.com/gogpu/pxscale/gpu" // enables GPU resampling
type GPUAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanAccelerate reports whether the accelerator supports the mode.
	CanAccelerate(mode ScaleMode) bool

	// Nearest runs a nearest-neighbor gather and writes every Dst texel.
	// The result must equal the software gather byte for byte.
	Nearest(job NearestJob) error

	// Fractional runs the fractional resample and writes every Dst texel.
	// The downsample stage may approximate the software box filter.
	Fractional(job FractionalJob) error
}

// DeviceProviderAware is an optional interface for accelerators that can
// share an externally created GPU device (for example a gogpu window).
type DeviceProviderAware interface {
	SetDeviceProvider(provider gpucontext.DeviceProvider) error
}

var (
	accelMu sync.RWMutex
	accel   GPUAccelerator
)

// RegisterAccelerator registers a as the hardware backend, replacing and
// closing any previous one. a.Init is called first; if it fails, nothing is
// registered and the error is returned.
//
// Typical usage from a GPU backend package:
//
//	func init() {
//	    _ = pxscale.RegisterAccelerator(NewAccelerator())
//	}
func RegisterAccelerator(a GPUAccelerator) error {
	if a == nil {
		return errors.New("pxscale: accelerator must not be nil")
	}
	propagateLogger(a, Logger())
	if err := a.Init(); err != nil {
		return err
	}
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil && old != a {
		old.Close()
	}
	Logger().Info("pxscale: accelerator registered", "name", a.Name())
	return nil
}

// UnregisterAccelerator removes and closes the registered accelerator.
// Hardware requests run on the software path afterwards.
func UnregisterAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// Accelerator returns the registered GPU accelerator, or nil if none.
func Accelerator() GPUAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator so it reuses an existing GPU device. It is a no-op when no
// accelerator is registered or it does not support device sharing.
func SetAcceleratorDeviceProvider(provider gpucontext.DeviceProvider) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
