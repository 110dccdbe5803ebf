//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/nearest.wgsl
var nearestShaderSource string

//go:embed shaders/downsample.wgsl
var downsampleShaderSource string

// Workgroup edge length shared by both shaders (@workgroup_size(8, 8, 1)).
const workgroupSize = 8

// shaderSources lists every embedded shader by label.
func shaderSources() map[string]string {
	return map[string]string{
		"nearest":    nearestShaderSource,
		"downsample": downsampleShaderSource,
	}
}

// validateShaders compiles every embedded shader to SPIR-V with naga. It runs
// before any device is created so a broken shader fails Init with a
// readable error instead of a driver-specific one.
func validateShaders() error {
	for label, src := range shaderSources() {
		if _, err := compileSPIRV(src); err != nil {
			return fmt.Errorf("gpu: shader %s: %w", label, err)
		}
	}
	return nil
}

// compileSPIRV compiles WGSL to little-endian SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
