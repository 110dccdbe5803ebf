// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package resample

import (
	"math"
	"testing"
)

func TestIndexMap(t *testing.T) {
	tests := []struct {
		name   string
		srcLen int
		outLen int
		factor float64
		want   []uint32
	}{
		{
			name:   "identity",
			srcLen: 4, outLen: 4, factor: 1,
			want: []uint32{0, 1, 2, 3},
		},
		{
			name:   "integer 3x",
			srcLen: 2, outLen: 6, factor: 3,
			want: []uint32{0, 0, 0, 1, 1, 1},
		},
		{
			name:   "fractional 1.5x",
			srcLen: 4, outLen: 6, factor: 1.5,
			want: []uint32{0, 0, 1, 2, 2, 3},
		},
		{
			name:   "clamped past source end",
			srcLen: 3, outLen: 5, factor: 1.2,
			want: []uint32{0, 0, 1, 2, 2},
		},
		{
			name:   "non-integer ratio",
			srcLen: 3, outLen: 10, factor: 10.0 / 3.0,
			want: []uint32{0, 0, 0, 0, 1, 1, 1, 2, 2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IndexMap(tt.srcLen, tt.outLen, tt.factor)
			if len(got) != len(tt.want) {
				t.Fatalf("IndexMap() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("IndexMap()[%d] = %d, want %d (full %v)", i, got[i], tt.want[i], got)
					break
				}
			}
		})
	}
}

func TestIndexMapIntegerBlocks(t *testing.T) {
	for n := 1; n <= 9; n++ {
		m := IndexMap(7, 7*n, float64(n))
		for i, s := range m {
			if int(s) != i/n {
				t.Fatalf("factor %d: IndexMap()[%d] = %d, want %d", n, i, s, i/n)
			}
		}
	}
}

func TestIndexMapSnapsToExactRatio(t *testing.T) {
	got := IndexMap(12, 40, 40.0/12.0)
	want := IndexMapFit(12, 40)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IndexMap()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIndexMapFit(t *testing.T) {
	m := IndexMapFit(16, 432)
	if m[0] != 0 || m[len(m)-1] != 15 {
		t.Fatalf("IndexMapFit() ends = %d..%d, want 0..15", m[0], m[len(m)-1])
	}
	// 432/16 = 27 texels per source pixel, exactly.
	for i, s := range m {
		if int(s) != i/27 {
			t.Fatalf("IndexMapFit()[%d] = %d, want %d", i, s, i/27)
		}
	}
	// Monotonic for a non-integer ratio.
	m = IndexMapFit(5, 13)
	for i := 1; i < len(m); i++ {
		if m[i] < m[i-1] {
			t.Fatalf("IndexMapFit() not monotonic at %d: %v", i, m)
		}
	}
	if m[len(m)-1] != 4 {
		t.Errorf("IndexMapFit() last = %d, want 4", m[len(m)-1])
	}
}

func TestGather(t *testing.T) {
	// 2x2 source with distinct texels, stride padded to 12 bytes.
	src := []byte{
		1, 2, 3, 255, 4, 5, 6, 255, 0, 0, 0, 0,
		7, 8, 9, 255, 10, 11, 12, 128, 0, 0, 0, 0,
	}
	xmap := []uint32{0, 0, 1}
	ymap := []uint32{0, 1, 1}
	dst := make([]byte, 3*3*4)
	Gather(dst, 12, src, 12, xmap, ymap)

	want := []byte{
		1, 2, 3, 255, 1, 2, 3, 255, 4, 5, 6, 255,
		7, 8, 9, 255, 7, 8, 9, 255, 10, 11, 12, 128,
		7, 8, 9, 255, 7, 8, 9, 255, 10, 11, 12, 128,
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("Gather() byte %d = %d, want %d\n got %v", i, dst[i], want[i], dst)
		}
	}
}

func TestBox(t *testing.T) {
	tests := []struct {
		name string
		src  [][4]byte // 2x2 block, row-major
		want [4]byte
	}{
		{
			name: "uniform block",
			src:  [][4]byte{{10, 20, 30, 255}, {10, 20, 30, 255}, {10, 20, 30, 255}, {10, 20, 30, 255}},
			want: [4]byte{10, 20, 30, 255},
		},
		{
			name: "opaque average rounds half up",
			src:  [][4]byte{{0, 0, 0, 255}, {255, 255, 255, 255}, {0, 0, 0, 255}, {255, 255, 255, 255}},
			want: [4]byte{128, 128, 128, 255},
		},
		{
			name: "transparent texels do not bleed color",
			src:  [][4]byte{{255, 0, 0, 255}, {0, 255, 0, 0}, {255, 0, 0, 255}, {0, 0, 255, 0}},
			want: [4]byte{255, 0, 0, 128},
		},
		{
			name: "fully transparent block",
			src:  [][4]byte{{9, 9, 9, 0}, {9, 9, 9, 0}, {9, 9, 9, 0}, {9, 9, 9, 0}},
			want: [4]byte{0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := make([]byte, 0, 16)
			for _, p := range tt.src {
				src = append(src, p[:]...)
			}
			dst := make([]byte, 4)
			Box(dst, 4, 1, 1, src, 8, 2)
			got := [4]byte{dst[0], dst[1], dst[2], dst[3]}
			if got != tt.want {
				t.Errorf("Box() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxLayout(t *testing.T) {
	// 6x3 source, k=3 -> 2x1 destination. Left block red, right block blue.
	const k = 3
	srcStride := 6 * 4
	src := make([]byte, srcStride*3)
	for y := range 3 {
		for x := range 6 {
			i := y*srcStride + x*4
			if x < 3 {
				src[i+0] = 255
			} else {
				src[i+2] = 255
			}
			src[i+3] = 255
		}
	}
	dst := make([]byte, 2*4)
	Box(dst, 8, 2, 1, src, srcStride, k)
	want := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("Box() = %v, want %v", dst, want)
		}
	}
}

func TestScaledLen(t *testing.T) {
	tests := []struct {
		n      int
		factor float64
		want   int
		ok     bool
	}{
		{16, 4, 64, true},
		{16, 4.5, 72, true},
		{3, 1.5, 5, true}, // 4.5 rounds away from zero
		{16, 0.01, 1, true},
		{16, math.Inf(1), 0, false},
		{16, math.NaN(), 0, false},
		{1 << 20, 1 << 20, 0, false},
	}
	for _, tt := range tests {
		got, ok := ScaledLen(tt.n, tt.factor)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ScaledLen(%d, %v) = (%d, %v), want (%d, %v)", tt.n, tt.factor, got, ok, tt.want, tt.ok)
		}
	}
}

func TestImageBytes(t *testing.T) {
	if got, ok := ImageBytes(72, 72); !ok || got != 72*72*4 {
		t.Errorf("ImageBytes(72, 72) = (%d, %v), want (%d, true)", got, ok, 72*72*4)
	}
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 5}, {maxDim + 1, 1}} {
		if _, ok := ImageBytes(dims[0], dims[1]); ok {
			t.Errorf("ImageBytes(%d, %d) ok = true, want false", dims[0], dims[1])
		}
	}
}

func TestIsInteger(t *testing.T) {
	tests := []struct {
		f    float64
		want bool
	}{
		{1, true},
		{4, true},
		{4.5, false},
		{40.0 / 12.0 * 3, true},
		{1.0000001, false},
	}
	for _, tt := range tests {
		if got := IsInteger(tt.f); got != tt.want {
			t.Errorf("IsInteger(%v) = %v, want %v", tt.f, got, tt.want)
		}
	}
}
