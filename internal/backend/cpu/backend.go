// Package cpu implements the CPU backend for sonum tensors.
package cpu

import (
	"fmt"

	"github.com/born-ml/sonum/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(x, y float64) float64 { return x / y })
}

// binary applies f element-wise over a and b.
// Shapes must match, or one operand must be a single-element tensor, which is
// expanded against the other. The result is always freshly allocated so the
// autodiff decorator can safely retain the operands.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, f func(x, y float64) float64) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, err := binaryShape(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	// Single-element operands hold their index at 0.
	stepA, stepB := 1, 1
	if a.NumElements() == 1 {
		stepA = 0
	}
	if b.NumElements() == 1 {
		stepB = 0
	}

	switch a.DType() {
	case tensor.Float32:
		x, y, dst := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := range dst {
			dst[i] = float32(f(float64(x[i*stepA]), float64(y[i*stepB])))
		}
	case tensor.Float64:
		x, y, dst := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := range dst {
			dst[i] = f(x[i*stepA], y[i*stepB])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

// binaryShape resolves the result shape for an element-wise binary operation.
func binaryShape(a, b tensor.Shape) (tensor.Shape, error) {
	switch {
	case a.Equal(b):
		return a.Clone(), nil
	case a.NumElements() == 1:
		return b.Clone(), nil
	case b.NumElements() == 1:
		return a.Clone(), nil
	default:
		return nil, fmt.Errorf("shape mismatch %v vs %v (only single-element expansion is supported)", a, b)
	}
}
