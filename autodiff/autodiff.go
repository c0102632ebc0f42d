// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// autodiff capabilities.
//
// Example:
//
//	import (
//	    "github.com/born-ml/sonum/autodiff"
//	    "github.com/born-ml/sonum/backend/cpu"
//	    "github.com/born-ml/sonum/tensor"
//	)
//
//	func main() {
//	    // Wrap CPU backend with autodiff
//	    base := cpu.New()
//	    backend := autodiff.New(base)
//
//	    // Operations are recorded on the tape
//	    x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
//	    y := x.Mul(x).Sum()
//
//	    // Compute gradients
//	    grads, _ := backend.Backward(y.Raw())
//	    _ = grads[x.Raw()]
//	}
package autodiff

import (
	"github.com/born-ml/sonum/internal/autodiff"
	"github.com/born-ml/sonum/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// Gradients maps forward-pass tensors to their accumulated gradients.
type Gradients = autodiff.Gradients

// GradientTape records operations for the backward pass.
type GradientTape = autodiff.GradientTape

// New creates a new autodiff backend wrapping the given backend.
func New[B tensor.Backend](inner B) *Backend[B] {
	return autodiff.New(inner)
}
