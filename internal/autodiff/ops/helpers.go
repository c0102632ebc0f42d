package ops

import (
	"fmt"

	"github.com/born-ml/sonum/internal/tensor"
)

// typedScalar converts v to the scalar type matching dtype, for backend
// scalar operations.
func typedScalar(dtype tensor.DataType, v float64) any {
	switch dtype {
	case tensor.Float32:
		return float32(v)
	case tensor.Float64:
		return v
	default:
		panic(fmt.Sprintf("ops: unsupported dtype %s", dtype))
	}
}

// scalarValue reads the single element of a one-element tensor as float64.
func scalarValue(t *tensor.RawTensor) float64 {
	switch t.DType() {
	case tensor.Float32:
		return float64(t.AsFloat32()[0])
	case tensor.Float64:
		return t.AsFloat64()[0]
	default:
		panic(fmt.Sprintf("ops: unsupported dtype %s", t.DType()))
	}
}

// fullLike creates a tensor of the given shape filled with v.
func fullLike(shape tensor.Shape, dtype tensor.DataType, device tensor.Device, v float64) *tensor.RawTensor {
	out, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("ops: %v", err))
	}
	switch dtype {
	case tensor.Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = float32(v)
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = v
		}
	default:
		panic(fmt.Sprintf("ops: unsupported dtype %s", dtype))
	}
	return out
}

// reduceTo adapts grad to the shape of a binary operand. When the operand was
// a single-element tensor expanded during the forward pass, its gradient is
// the sum of the element-wise gradient.
func reduceTo(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(target) {
		return grad
	}
	if target.NumElements() == 1 {
		return backend.Reshape(backend.Sum(grad), target)
	}
	panic(fmt.Sprintf("ops: cannot reduce gradient %v to %v", grad.Shape(), target))
}

// negate returns -g.
func negate(g *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	return backend.MulScalar(g, typedScalar(g.DType(), -1))
}
