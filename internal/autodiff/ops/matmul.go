package ops

import "github.com/born-ml/sonum/internal/tensor"

// MatMulOp represents a dense matrix product: output = a @ b.
//
// Backward pass:
//   - grad_a = outputGrad @ bᵀ
//   - grad_b = aᵀ @ outputGrad
type MatMulOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor   // a @ b
}

// NewMatMulOp creates a new MatMulOp.
func NewMatMulOp(a, b, output *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes the matrix gradients.
func (op *MatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := backend.MatMul(outputGrad, backend.Transpose(b))
	gradB := backend.MatMul(backend.Transpose(a), outputGrad)
	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *MatMulOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a @ b.
func (op *MatMulOp) Output() *tensor.RawTensor {
	return op.output
}
