//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// computePipeline bundles a compute pipeline with the objects it owns.
type computePipeline struct {
	shader     *wgpu.ShaderModule
	bindLayout *wgpu.BindGroupLayout
	pipeLayout *wgpu.PipelineLayout
	pipeline   *wgpu.ComputePipeline
}

func newComputePipeline(device *wgpu.Device, label, wgsl string, bindings ...gputypes.BufferBindingType) (*computePipeline, error) {
	p := &computePipeline{}
	var err error

	p.shader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{Label: label, WGSL: wgsl})
	if err != nil {
		return nil, fmt.Errorf("create %s shader: %w", label, err)
	}
	p.bindLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label, Entries: layoutEntries(bindings...),
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("create %s bind group layout: %w", label, err)
	}
	p.pipeLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: label, BindGroupLayouts: []*wgpu.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("create %s pipeline layout: %w", label, err)
	}
	p.pipeline, err = device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: label, Layout: p.pipeLayout, Module: p.shader, EntryPoint: "main",
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}
	return p, nil
}

func (p *computePipeline) release() {
	if p == nil {
		return
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.pipeLayout != nil {
		p.pipeLayout.Release()
	}
	if p.bindLayout != nil {
		p.bindLayout.Release()
	}
	if p.shader != nil {
		p.shader.Release()
	}
}

// encode records one compute pass of p over a width x height grid.
func (p *computePipeline) encode(encoder *wgpu.CommandEncoder, label string, bg *wgpu.BindGroup, width, height int) error {
	pass, err := encoder.BeginComputePass(&wgpu.ComputePassDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("begin %s pass: %w", label, err)
	}
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(workgroups(width), workgroups(height), 1)
	if err := pass.End(); err != nil {
		return fmt.Errorf("end %s pass: %w", label, err)
	}
	return nil
}

func workgroups(n int) uint32 {
	return uint32((n + workgroupSize - 1) / workgroupSize) //nolint:gosec // bounded by checkLimits
}
