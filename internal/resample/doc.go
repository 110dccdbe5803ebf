// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package resample implements the pixel kernels behind pxscale.
//
// All kernels work on tightly described RGBA8 byte buffers (non-premultiplied,
// 4 bytes per texel, rows separated by a stride) and never allocate: callers
// own the destination buffer. Sizing and overflow checks live in size.go so
// that the public package can enforce its memory budget before any
// allocation happens.
//
// Nearest-neighbor scaling is split into two steps: IndexMap computes, once
// per axis, which source column or row feeds each destination position, and
// Gather copies texels through those maps. The GPU path uploads the same maps,
// which is what keeps software and hardware output pixel-identical.
package resample
