package ops

import "github.com/born-ml/sonum/internal/tensor"

// ReshapeOp represents a shape change that preserves element order.
//
// Backward pass: grad_x = outputGrad reshaped back to the input shape.
type ReshapeOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(x, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward reshapes the output gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.inputs[0].Shape())}
}

// Inputs returns the input tensor [x].
func (op *ReshapeOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the reshaped output tensor.
func (op *ReshapeOp) Output() *tensor.RawTensor {
	return op.output
}

// TransposeOp represents an axes permutation.
//
// Backward pass: grad_x = outputGrad transposed with the inverse permutation.
type TransposeOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	axes   []int // empty means reverse all axes
}

// NewTransposeOp creates a new TransposeOp. axes is the permutation used in
// the forward pass; empty means all axes were reversed.
func NewTransposeOp(x, output *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
		axes:   append([]int(nil), axes...),
	}
}

// Backward applies the inverse permutation to the output gradient.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if len(op.axes) == 0 {
		// Reversing all axes is its own inverse.
		return []*tensor.RawTensor{backend.Transpose(outputGrad)}
	}
	inverse := make([]int, len(op.axes))
	for i, a := range op.axes {
		inverse[a] = i
	}
	return []*tensor.RawTensor{backend.Transpose(outputGrad, inverse...)}
}

// Inputs returns the input tensor [x].
func (op *TransposeOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the transposed output tensor.
func (op *TransposeOp) Output() *tensor.RawTensor {
	return op.output
}
