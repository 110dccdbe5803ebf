//go:build !nogpu

// Package gpu registers the wgpu resampling accelerator.
//
// Import this package to let RenderBackendHardware requests run on the GPU.
// Nearest-neighbor jobs gather texels in a compute shader; fractional jobs
// build the intermediate image and downsample it without leaving the GPU.
//
// If GPU initialization fails (no Vulkan/Metal/DX12 adapter, or only a
// software adapter), registration is skipped and hardware requests fall back
// to the software path.
//
// Usage:
//
//	import _ "github.com/gogpu/pxscale/gpu" // enable GPU resampling
package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/pxscale"
	gpuimpl "github.com/gogpu/pxscale/internal/gpu"
)

func init() {
	accel := &gpuimpl.ScaleAccelerator{}
	if err := pxscale.RegisterAccelerator(accel); err != nil {
		pxscale.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider makes the GPU accelerator share the device of an
// external provider (e.g., a gogpu window) instead of its own.
//
// The provider's Device must be a *wgpu.Device.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	return pxscale.SetAcceleratorDeviceProvider(provider)
}

// AdapterInfo describes the adapter the registered accelerator runs on.
// It reports false when no wgpu accelerator is active.
func AdapterInfo() (gpucontext.AdapterInfo, bool) {
	a, ok := pxscale.Accelerator().(*gpuimpl.ScaleAccelerator)
	if !ok {
		return gpucontext.AdapterInfo{}, false
	}
	return a.AdapterInfo()
}
