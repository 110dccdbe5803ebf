//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/pxscale"
	"github.com/gogpu/wgpu"
)

const bytesPerTexel = 4

// packTexels returns img as tightly packed rows, which is exactly the
// array<u32> layout the shaders read. Tight images are returned without
// copying.
func packTexels(img pxscale.GPUImage) []byte {
	rowBytes := img.Width * bytesPerTexel
	if img.Stride == rowBytes {
		return img.Data[:rowBytes*img.Height]
	}
	out := make([]byte, rowBytes*img.Height)
	for y := range img.Height {
		copy(out[y*rowBytes:(y+1)*rowBytes], img.Data[y*img.Stride:])
	}
	return out
}

// unpackTexels copies tightly packed rows back into img.
func unpackTexels(img pxscale.GPUImage, data []byte) {
	rowBytes := img.Width * bytesPerTexel
	for y := range img.Height {
		copy(img.Data[y*img.Stride:y*img.Stride+rowBytes], data[y*rowBytes:])
	}
}

// packIndices serializes an index map as little-endian u32 values.
func packIndices(m []uint32) []byte {
	out := make([]byte, 0, len(m)*4)
	for _, v := range m {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}

// packParams serializes uniform values, padded to a 16-byte multiple.
func packParams(values ...uint32) []byte {
	n := (len(values) + 3) / 4 * 4
	out := make([]byte, n*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

// frame owns the per-job GPU objects and releases them together.
type frame struct {
	device  *wgpu.Device
	buffers []*wgpu.Buffer
	groups  []*wgpu.BindGroup
}

func newFrame(device *wgpu.Device) *frame {
	return &frame{device: device}
}

// buffer creates a buffer of size bytes and uploads data into it when data
// is non-empty.
func (f *frame) buffer(label string, size uint64, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	if len(data) > 0 {
		usage |= wgpu.BufferUsageCopyDst
	}
	buf, err := f.device.CreateBuffer(&wgpu.BufferDescriptor{Label: label, Size: size, Usage: usage})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	f.buffers = append(f.buffers, buf)
	if len(data) > 0 {
		if err := f.device.Queue().WriteBuffer(buf, 0, data); err != nil {
			return nil, fmt.Errorf("write %s buffer: %w", label, err)
		}
	}
	return buf, nil
}

// upload creates a read-only storage buffer holding data.
func (f *frame) upload(label string, data []byte) (*wgpu.Buffer, error) {
	return f.buffer(label, uint64(len(data)), wgpu.BufferUsageStorage, data)
}

// uniform creates a uniform buffer holding data.
func (f *frame) uniform(label string, data []byte) (*wgpu.Buffer, error) {
	return f.buffer(label, uint64(len(data)), wgpu.BufferUsageUniform, data)
}

// bind creates a bind group whose entry i is buffers[i].
func (f *frame) bind(label string, layout *wgpu.BindGroupLayout, buffers ...*wgpu.Buffer) (*wgpu.BindGroup, error) {
	entries := make([]wgpu.BindGroupEntry, len(buffers))
	for i, b := range buffers {
		entries[i] = wgpu.BindGroupEntry{Binding: uint32(i), Buffer: b, Size: b.Size()} //nolint:gosec // a handful of bindings
	}
	bg, err := f.device.CreateBindGroup(&wgpu.BindGroupDescriptor{Label: label, Layout: layout, Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("create %s bind group: %w", label, err)
	}
	f.groups = append(f.groups, bg)
	return bg, nil
}

func (f *frame) release() {
	for _, bg := range f.groups {
		bg.Release()
	}
	for _, b := range f.buffers {
		b.Release()
	}
	f.groups, f.buffers = nil, nil
}

// layoutEntries builds a compute bind group layout with one buffer entry
// per binding index.
func layoutEntries(types ...gputypes.BufferBindingType) []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, len(types))
	for i, t := range types {
		entries[i] = wgpu.BindGroupLayoutEntry{
			Binding:    uint32(i), //nolint:gosec // a handful of bindings
			Visibility: wgpu.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: t},
		}
	}
	return entries
}
