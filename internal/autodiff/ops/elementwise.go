package ops

import "github.com/born-ml/sonum/internal/tensor"

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If a single-element operand was expanded in the forward pass, its gradient
// is summed back to a single element.
type AddOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor   // a + b
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := reduceTo(outputGrad, a.Shape(), backend)
	gradB := reduceTo(outputGrad, b.Shape(), backend)
	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *AddOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a + b.
func (op *AddOp) Output() *tensor.RawTensor {
	return op.output
}

// SubOp represents an element-wise subtraction operation: output = a - b.
//
// Backward pass:
//   - grad_a = outputGrad
//   - grad_b = -outputGrad
type SubOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor   // a - b
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := reduceTo(outputGrad, a.Shape(), backend)
	gradB := reduceTo(negate(outputGrad, backend), b.Shape(), backend)
	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *SubOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a - b.
func (op *SubOp) Output() *tensor.RawTensor {
	return op.output
}

// MulOp represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - grad_a = outputGrad * b
//   - grad_b = outputGrad * a
type MulOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor   // a * b
}

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := reduceTo(backend.Mul(outputGrad, b), a.Shape(), backend)
	gradB := reduceTo(backend.Mul(outputGrad, a), b.Shape(), backend)
	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *MulOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a * b.
func (op *MulOp) Output() *tensor.RawTensor {
	return op.output
}

// DivOp represents an element-wise division operation: output = a / b.
//
// Backward pass:
//   - grad_a = outputGrad / b
//   - grad_b = -outputGrad * a / b²
type DivOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor   // a / b
}

// NewDivOp creates a new DivOp.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := reduceTo(backend.Div(outputGrad, b), a.Shape(), backend)

	// -g * a / b²
	bSquared := backend.Mul(b, b)
	gradB := negate(backend.Div(backend.Mul(outputGrad, a), bSquared), backend)
	gradB = reduceTo(gradB, b.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *DivOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a / b.
func (op *DivOp) Output() *tensor.RawTensor {
	return op.output
}
