//go:build !nogpu

package gpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/pxscale"
	"github.com/gogpu/wgpu"

	// Register every GPU backend available on this platform.
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// readbackTimeout bounds the wait for a job's results.
const readbackTimeout = 10 * time.Second

// errSoftwareAdapter is returned by Init when the only adapter emulates a GPU
// on the CPU. pxscale's own software path is faster and exact.
var errSoftwareAdapter = errors.New("gpu: only a software adapter is available")

// ScaleAccelerator runs pxscale jobs on a wgpu device. It implements
// pxscale.GPUAccelerator, pxscale.DeviceProviderAware and the optional
// SetLogger hook.
//
// Jobs are serialized by a mutex; each one uploads its inputs, records its
// passes in one command buffer, submits and waits for the readback.
type ScaleAccelerator struct {
	mu sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	info     gpucontext.AdapterInfo
	limits   wgpu.Limits

	nearest    *computePipeline
	downsample *computePipeline

	gpuReady       bool
	externalDevice bool // shared device: never released here

	logger atomic.Pointer[slog.Logger]
}

var (
	_ pxscale.GPUAccelerator      = (*ScaleAccelerator)(nil)
	_ pxscale.DeviceProviderAware = (*ScaleAccelerator)(nil)
)

// Name returns "wgpu".
func (a *ScaleAccelerator) Name() string { return "wgpu" }

// CanAccelerate reports true for both modes once a device is ready.
func (a *ScaleAccelerator) CanAccelerate(mode pxscale.ScaleMode) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return false
	}
	return mode == pxscale.ScaleModeNearest || mode == pxscale.ScaleModeFractionalOptimized
}

// SetLogger sets the logger used for device and dispatch messages.
func (a *ScaleAccelerator) SetLogger(l *slog.Logger) {
	a.logger.Store(l)
}

func (a *ScaleAccelerator) log() *slog.Logger {
	if l := a.logger.Load(); l != nil {
		return l
	}
	return pxscale.Logger()
}

// Init validates the shaders, then opens a hardware adapter and builds the
// pipelines. It fails when no hardware adapter exists, which keeps the
// accelerator unregistered.
func (a *ScaleAccelerator) Init() error {
	if err := validateShaders(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gpuReady {
		return nil
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("gpu: create instance: %w", err)
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return fmt.Errorf("gpu: request adapter: %w", err)
	}
	info := adapter.Info()
	if info.DeviceType == gputypes.DeviceTypeCPU {
		adapter.Release()
		instance.Release()
		return fmt.Errorf("%w (%s)", errSoftwareAdapter, info.Name)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return fmt.Errorf("gpu: request device: %w", err)
	}

	a.instance, a.adapter, a.device = instance, adapter, device
	a.info = gpucontext.AdapterInfo{Name: info.Name, Type: adapterType(info.DeviceType)}
	a.limits = device.Limits()
	if err := a.createPipelines(); err != nil {
		a.releaseLocked()
		return err
	}
	a.gpuReady = true
	a.log().Info("gpu: adapter selected", "name", info.Name, "vendor", info.Vendor, "type", info.DeviceType.String())
	return nil
}

// Close releases the pipelines and, unless the device is shared, the device.
func (a *ScaleAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
}

func (a *ScaleAccelerator) releaseLocked() {
	a.destroyPipelines()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Release()
		}
		if a.adapter != nil {
			a.adapter.Release()
		}
		if a.instance != nil {
			a.instance.Release()
		}
	}
	a.device, a.adapter, a.instance = nil, nil, nil
	a.gpuReady = false
	a.externalDevice = false
}

// SetDeviceProvider switches to a device owned by provider, such as a gogpu
// window. The provider's Device must be a *wgpu.Device.
func (a *ScaleAccelerator) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	if provider == nil {
		return errors.New("gpu: nil device provider")
	}
	device, ok := provider.Device().(*wgpu.Device)
	if !ok || device == nil {
		return fmt.Errorf("gpu: provider device is %T, not *wgpu.Device", provider.Device())
	}
	info := provider.AdapterInfo()
	if info.Type == gpucontext.AdapterTypeSoftware {
		return fmt.Errorf("%w (%s)", errSoftwareAdapter, info.Name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	a.device = device
	a.externalDevice = true
	a.info = info
	a.limits = device.Limits()
	if err := a.createPipelines(); err != nil {
		a.releaseLocked()
		return fmt.Errorf("gpu: create pipelines with shared device: %w", err)
	}
	a.gpuReady = true
	a.log().Info("gpu: switched to shared device", "name", info.Name)
	return nil
}

// AdapterInfo describes the adapter in use, or reports false when no device
// is ready.
func (a *ScaleAccelerator) AdapterInfo() (gpucontext.AdapterInfo, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.info, a.gpuReady
}

func (a *ScaleAccelerator) createPipelines() error {
	var err error
	a.nearest, err = newComputePipeline(a.device, "pxscale_nearest", nearestShaderSource,
		gputypes.BufferBindingTypeUniform,
		gputypes.BufferBindingTypeReadOnlyStorage,
		gputypes.BufferBindingTypeReadOnlyStorage,
		gputypes.BufferBindingTypeReadOnlyStorage,
		gputypes.BufferBindingTypeStorage,
	)
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	a.downsample, err = newComputePipeline(a.device, "pxscale_downsample", downsampleShaderSource,
		gputypes.BufferBindingTypeUniform,
		gputypes.BufferBindingTypeReadOnlyStorage,
		gputypes.BufferBindingTypeStorage,
	)
	if err != nil {
		a.destroyPipelines()
		return fmt.Errorf("gpu: %w", err)
	}
	return nil
}

func (a *ScaleAccelerator) destroyPipelines() {
	a.nearest.release()
	a.downsample.release()
	a.nearest, a.downsample = nil, nil
}

// Nearest gathers job.Src into job.Dst through the job's index maps.
func (a *ScaleAccelerator) Nearest(job pxscale.NearestJob) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return pxscale.ErrFallbackToCPU
	}

	src := packTexels(job.Src)
	dstSize := texelBytes(job.Dst.Width, job.Dst.Height)
	if err := a.checkLimits(job.Dst.Width, job.Dst.Height, uint64(len(src)), dstSize); err != nil {
		return err
	}

	f := newFrame(a.device)
	defer f.release()

	srcBuf, err := f.upload("pxscale_src", src)
	if err != nil {
		return err
	}
	dstBuf, err := f.buffer("pxscale_dst", dstSize, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc, nil)
	if err != nil {
		return err
	}
	bg, err := a.nearestBindings(f, job.Src.Width, job.Dst.Width, job.Dst.Height, srcBuf, job.XMap, job.YMap, dstBuf)
	if err != nil {
		return err
	}

	encoder, err := a.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "pxscale_nearest"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := a.nearest.encode(encoder, "pxscale_nearest", bg, job.Dst.Width, job.Dst.Height); err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	data, err := a.submitAndRead(f, encoder, dstBuf, dstSize)
	if err != nil {
		return err
	}
	unpackTexels(job.Dst, data)
	a.log().Debug("gpu: nearest", "src", fmt.Sprintf("%dx%d", job.Src.Width, job.Src.Height),
		"dst", fmt.Sprintf("%dx%d", job.Dst.Width, job.Dst.Height))
	return nil
}

// Fractional gathers job.Src into a Multiplier-times intermediate that stays
// on the GPU, then downsamples it into job.Dst.
func (a *ScaleAccelerator) Fractional(job pxscale.FractionalJob) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return pxscale.ErrFallbackToCPU
	}

	interW, interH := len(job.XMap), len(job.YMap)
	src := packTexels(job.Src)
	interSize := texelBytes(interW, interH)
	dstSize := texelBytes(job.Dst.Width, job.Dst.Height)
	if err := a.checkLimits(interW, interH, uint64(len(src)), interSize); err != nil {
		return err
	}

	f := newFrame(a.device)
	defer f.release()

	srcBuf, err := f.upload("pxscale_src", src)
	if err != nil {
		return err
	}
	interBuf, err := f.buffer("pxscale_intermediate", interSize, wgpu.BufferUsageStorage, nil)
	if err != nil {
		return err
	}
	dstBuf, err := f.buffer("pxscale_dst", dstSize, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc, nil)
	if err != nil {
		return err
	}

	gatherBG, err := a.nearestBindings(f, job.Src.Width, interW, interH, srcBuf, job.XMap, job.YMap, interBuf)
	if err != nil {
		return err
	}
	params, err := f.uniform("pxscale_downsample_params", packParams(
		uint32(interW), uint32(interH), //nolint:gosec // bounded by checkLimits
		uint32(job.Dst.Width), uint32(job.Dst.Height), //nolint:gosec // bounded by checkLimits
		uint32(job.Multiplier), //nolint:gosec // clamped to [2, 16]
	))
	if err != nil {
		return err
	}
	downBG, err := f.bind("pxscale_downsample", a.downsample.bindLayout, params, interBuf, dstBuf)
	if err != nil {
		return err
	}

	encoder, err := a.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "pxscale_fractional"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := a.nearest.encode(encoder, "pxscale_upsample", gatherBG, interW, interH); err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	if err := a.downsample.encode(encoder, "pxscale_downsample", downBG, job.Dst.Width, job.Dst.Height); err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	data, err := a.submitAndRead(f, encoder, dstBuf, dstSize)
	if err != nil {
		return err
	}
	unpackTexels(job.Dst, data)
	a.log().Debug("gpu: fractional", "intermediate", fmt.Sprintf("%dx%d", interW, interH),
		"dst", fmt.Sprintf("%dx%d", job.Dst.Width, job.Dst.Height), "k", job.Multiplier)
	return nil
}

// nearestBindings uploads the index maps and parameters of one gather pass.
func (a *ScaleAccelerator) nearestBindings(f *frame, srcW, dstW, dstH int, srcBuf *wgpu.Buffer, xmap, ymap []uint32, dstBuf *wgpu.Buffer) (*wgpu.BindGroup, error) {
	xBuf, err := f.upload("pxscale_xmap", packIndices(xmap))
	if err != nil {
		return nil, err
	}
	yBuf, err := f.upload("pxscale_ymap", packIndices(ymap))
	if err != nil {
		return nil, err
	}
	params, err := f.uniform("pxscale_nearest_params", packParams(
		uint32(srcW), uint32(dstW), uint32(dstH), //nolint:gosec // bounded by checkLimits
	))
	if err != nil {
		return nil, err
	}
	return f.bind("pxscale_nearest", a.nearest.bindLayout, params, srcBuf, xBuf, yBuf, dstBuf)
}

// submitAndRead copies out into a staging buffer, submits the encoder and
// returns the mapped bytes.
func (a *ScaleAccelerator) submitAndRead(f *frame, encoder *wgpu.CommandEncoder, out *wgpu.Buffer, size uint64) ([]byte, error) {
	staging, err := f.buffer("pxscale_staging", size, wgpu.BufferUsageMapRead|wgpu.BufferUsageCopyDst, nil)
	if err != nil {
		return nil, err
	}
	encoder.CopyBufferToBuffer(out, 0, staging, 0, size)
	cmdBuf, err := encoder.Finish()
	if err != nil {
		return nil, fmt.Errorf("gpu: finish encoder: %w", err)
	}
	if _, err := a.device.Queue().Submit(cmdBuf); err != nil {
		return nil, fmt.Errorf("gpu: submit: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), readbackTimeout)
	defer cancel()
	if err := staging.Map(ctx, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("gpu: map staging buffer: %w", err)
	}
	rng, err := staging.MappedRange(0, size)
	if err != nil {
		_ = staging.Unmap()
		return nil, fmt.Errorf("gpu: staging mapped range: %w", err)
	}
	data := make([]byte, size)
	copy(data, rng.Bytes())
	if err := staging.Unmap(); err != nil {
		return nil, fmt.Errorf("gpu: unmap staging buffer: %w", err)
	}
	return data, nil
}

// checkLimits declines jobs whose buffers or dispatch grid exceed the
// device limits.
func (a *ScaleAccelerator) checkLimits(gridW, gridH int, inBytes, outBytes uint64) error {
	maxBinding := a.limits.MaxStorageBufferBindingSize
	if maxBinding > 0 && (inBytes > maxBinding || outBytes > maxBinding) {
		return fmt.Errorf("%w: buffer exceeds storage binding limit %d", pxscale.ErrFallbackToCPU, maxBinding)
	}
	maxGroups := a.limits.MaxComputeWorkgroupsPerDimension
	if maxGroups > 0 && (workgroups(gridW) > maxGroups || workgroups(gridH) > maxGroups) {
		return fmt.Errorf("%w: %dx%d grid exceeds %d workgroups per dimension", pxscale.ErrFallbackToCPU, gridW, gridH, maxGroups)
	}
	return nil
}

func texelBytes(w, h int) uint64 {
	return uint64(w) * uint64(h) * bytesPerTexel //nolint:gosec // dimensions are positive
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}
