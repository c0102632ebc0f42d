package ops

import "github.com/born-ml/sonum/internal/tensor"

// ExpOp represents the element-wise exponential: output = exp(x).
//
// Backward pass: grad_x = outputGrad * exp(x) = outputGrad * output.
type ExpOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewExpOp creates a new ExpOp.
func NewExpOp(x, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward reuses the forward output: d(exp x)/dx = exp x.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// Inputs returns the input tensor [x].
func (op *ExpOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor exp(x).
func (op *ExpOp) Output() *tensor.RawTensor {
	return op.output
}

// LogOp represents the element-wise natural logarithm: output = ln(x).
//
// Backward pass: grad_x = outputGrad / x.
type LogOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewLogOp creates a new LogOp.
func NewLogOp(x, output *tensor.RawTensor) *LogOp {
	return &LogOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward computes grad_x = outputGrad / x.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.inputs[0])}
}

// Inputs returns the input tensor [x].
func (op *LogOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor ln(x).
func (op *LogOp) Output() *tensor.RawTensor {
	return op.output
}

// SqrtOp represents the element-wise square root: output = √x.
//
// Backward pass: grad_x = outputGrad / (2 * √x) = outputGrad / (2 * output).
type SqrtOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(x, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward reuses the forward output: d(√x)/dx = 1/(2√x).
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	twoRoot := backend.MulScalar(op.output, typedScalar(op.output.DType(), 2))
	return []*tensor.RawTensor{backend.Div(outputGrad, twoRoot)}
}

// Inputs returns the input tensor [x].
func (op *SqrtOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor √x.
func (op *SqrtOp) Output() *tensor.RawTensor {
	return op.output
}

// SinOp represents the element-wise sine: output = sin(x).
//
// Backward pass: grad_x = outputGrad * cos(x).
type SinOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSinOp creates a new SinOp.
func NewSinOp(x, output *tensor.RawTensor) *SinOp {
	return &SinOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward computes grad_x = outputGrad * cos(x).
func (op *SinOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Cos(op.inputs[0]))}
}

// Inputs returns the input tensor [x].
func (op *SinOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor sin(x).
func (op *SinOp) Output() *tensor.RawTensor {
	return op.output
}

// CosOp represents the element-wise cosine: output = cos(x).
//
// Backward pass: grad_x = -outputGrad * sin(x).
type CosOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewCosOp creates a new CosOp.
func NewCosOp(x, output *tensor.RawTensor) *CosOp {
	return &CosOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward computes grad_x = -outputGrad * sin(x).
func (op *CosOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{negate(backend.Mul(outputGrad, backend.Sin(op.inputs[0])), backend)}
}

// Inputs returns the input tensor [x].
func (op *CosOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor cos(x).
func (op *CosOp) Output() *tensor.RawTensor {
	return op.output
}
