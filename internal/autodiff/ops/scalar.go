package ops

import "github.com/born-ml/sonum/internal/tensor"

// MulScalarOp represents multiplication by a constant: output = s * x.
//
// Backward pass: grad_x = s * outputGrad.
type MulScalarOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(x, output *tensor.RawTensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
		scalar: scalar,
	}
}

// Backward scales the output gradient by the recorded constant.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := backend.MulScalar(outputGrad, typedScalar(outputGrad.DType(), op.scalar))
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor [x].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor s * x.
func (op *MulScalarOp) Output() *tensor.RawTensor {
	return op.output
}

// AddScalarOp represents addition of a constant: output = x + s.
//
// Backward pass: grad_x = outputGrad.
type AddScalarOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward passes the output gradient through unchanged.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// Inputs returns the input tensor [x].
func (op *AddScalarOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor x + s.
func (op *AddScalarOp) Output() *tensor.RawTensor {
	return op.output
}

// PowScalarOp represents element-wise power with a constant exponent:
// output = x^p.
//
// Backward pass: grad_x = outputGrad * p * x^(p-1).
type PowScalarOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	power  float64
}

// NewPowScalarOp creates a new PowScalarOp.
func NewPowScalarOp(x, output *tensor.RawTensor, power float64) *PowScalarOp {
	return &PowScalarOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
		power:  power,
	}
}

// Backward applies the power rule.
func (op *PowScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	deriv := backend.MulScalar(backend.PowScalar(x, op.power-1), typedScalar(x.DType(), op.power))
	return []*tensor.RawTensor{backend.Mul(outputGrad, deriv)}
}

// Inputs returns the input tensor [x].
func (op *PowScalarOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor x^p.
func (op *PowScalarOp) Output() *tensor.RawTensor {
	return op.output
}
