package cpu

import (
	"fmt"

	"github.com/born-ml/sonum/internal/tensor"
)

// Sum reduces the tensor to its total sum. The result has shape {1}.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.reduce("sum", x, 1)
}

// Mean reduces the tensor to its arithmetic mean. The result has shape {1}.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.reduce("mean", x, float64(x.NumElements()))
}

func (cpu *CPUBackend) reduce(name string, x *tensor.RawTensor, divisor float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		var sum float64
		for _, v := range x.AsFloat32() {
			sum += float64(v)
		}
		result.AsFloat32()[0] = float32(sum / divisor)
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		result.AsFloat64()[0] = sum / divisor
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}
