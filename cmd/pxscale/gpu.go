//go:build !nogpu

package main

import _ "github.com/gogpu/pxscale/gpu" // enables the hardware backend
