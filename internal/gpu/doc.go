//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu implements pxscale's hardware backend on gogpu/wgpu compute
// shaders.
//
// Two pipelines are built once per device:
//
//   - nearest: gathers source texels through the index maps computed on the
//     CPU, so its output is bit-identical to the software gather;
//   - downsample: reduces the K-times intermediate of the fractional mode by
//     bilinear sampling at each K x K block centre.
//
// A fractional job runs both as two compute passes in one submission; the
// intermediate never leaves the GPU.
package gpu
