// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in sonum.
//
// The package defines the types differentiable objectives are built from:
//   - Tensor[T, B]: High-level generic tensor with type safety
//   - RawTensor: Low-level tensor representation
//   - Backend: Interface for compute implementations
//   - Shape, DataType, Device: Core type definitions
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Element-wise addition
package tensor

import (
	"github.com/born-ml/sonum/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Backend is the interface compute backends implement.
type Backend = tensor.Backend

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// Tensor is the high-level generic tensor type.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Constructor functions

// New creates a Tensor from a RawTensor and backend.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T](raw, b)
}

// NewRaw creates a new RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros creates a zero-filled tensor.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, b)
}

// Ones creates a one-filled tensor.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T](shape, b)
}

// Full creates a tensor filled with the given value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full(shape, value, b)
}

// Scalar creates a single-element tensor holding value.
func Scalar[T DType, B Backend](value T, b B) *Tensor[T, B] {
	return tensor.Scalar(value, b)
}

// Randn creates a tensor with standard normal random values.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Randn[T](shape, b)
}
