package cpu

import (
	"fmt"

	"github.com/born-ml/sonum/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		matmulFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// matmulFloat32 performs naive matrix multiplication: C[i,j] = sum_k A[i,k] * B[k,j].
func matmulFloat32(c, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

func matmulFloat64(c, a, b []float64, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float64(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// Transpose permutes the tensor's dimensions.
// If axes is empty, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: expected %d axes, got %d", ndim, len(axes)))
	}

	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for %dD tensor", ax, ndim))
		}
		outShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(outShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	inStrides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	total := shape.NumElements()

	mapIndex := func(outIdx int) int {
		inIdx := 0
		remaining := outIdx
		for i := 0; i < ndim; i++ {
			coord := remaining / outStrides[i]
			remaining %= outStrides[i]
			inIdx += coord * inStrides[axes[i]]
		}
		return inIdx
	}

	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), result.AsFloat32()
		for i := 0; i < total; i++ {
			dst[i] = src[mapIndex(i)]
		}
	case tensor.Float64:
		src, dst := t.AsFloat64(), result.AsFloat64()
		for i := 0; i < total; i++ {
			dst[i] = src[mapIndex(i)]
		}
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return result
}
