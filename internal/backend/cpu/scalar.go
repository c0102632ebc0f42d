package cpu

import (
	"fmt"

	"github.com/born-ml/sonum/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.

// MulScalar multiplies each element of the tensor by a scalar value.
// The scalar must match the tensor's dtype (float32 or float64).
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("mulScalar", x.DType(), scalar)
	return cpu.unary("mulScalar", x, func(v float64) float64 { return v * s })
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("addScalar", x.DType(), scalar)
	return cpu.unary("addScalar", x, func(v float64) float64 { return v + s })
}

// toFloat64 checks the scalar against the tensor dtype and widens it.
func toFloat64(name string, dtype tensor.DataType, scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		if dtype != tensor.Float32 {
			panic(fmt.Sprintf("%s: float32 scalar for %s tensor", name, dtype))
		}
		return float64(s)
	case float64:
		if dtype != tensor.Float64 {
			panic(fmt.Sprintf("%s: float64 scalar for %s tensor", name, dtype))
		}
		return s
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", name, scalar))
	}
}
