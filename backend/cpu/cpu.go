// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU compute backend.
package cpu

import (
	"github.com/born-ml/sonum/internal/backend/cpu"
)

// Backend is the CPU implementation of the tensor backend.
type Backend = cpu.CPUBackend

// New creates a new CPU backend.
func New() *Backend {
	return cpu.New()
}
