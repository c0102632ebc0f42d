package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/sonum/internal/tensor"
)

// unary applies f element-wise, allocating a fresh result tensor.
func (cpu *CPUBackend) unary(name string, x *tensor.RawTensor, f func(v float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(f(float64(v)))
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = f(v)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x, math.Exp)
}

// Log computes element-wise natural logarithm: ln(x).
// Non-positive inputs yield -Inf or NaN, as math.Log defines.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("log", x, math.Log)
}

// Sqrt computes element-wise square root: sqrt(x).
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sqrt", x, math.Sqrt)
}

// Cos computes element-wise cosine.
func (cpu *CPUBackend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("cos", x, math.Cos)
}

// Sin computes element-wise sine.
func (cpu *CPUBackend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sin", x, math.Sin)
}

// PowScalar raises each element to the power p.
func (cpu *CPUBackend) PowScalar(x *tensor.RawTensor, p float64) *tensor.RawTensor {
	return cpu.unary("pow", x, func(v float64) float64 { return math.Pow(v, p) })
}
