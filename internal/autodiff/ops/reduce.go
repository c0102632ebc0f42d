package ops

import "github.com/born-ml/sonum/internal/tensor"

// SumOp represents a full reduction: output = Σᵢ xᵢ, shape [1].
//
// Backward pass: every input element contributed with weight 1, so
// grad_x is the scalar output gradient broadcast to the input shape.
type SumOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward broadcasts the scalar output gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	g := scalarValue(outputGrad)
	return []*tensor.RawTensor{fullLike(x.Shape(), x.DType(), x.Device(), g)}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor Σx.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}

// MeanOp represents a full mean reduction: output = (Σᵢ xᵢ)/n, shape [1].
//
// Backward pass: grad_x = outputGrad / n, broadcast to the input shape.
type MeanOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(x, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward broadcasts outputGrad/n to the input shape.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	n := float64(x.NumElements())
	g := scalarValue(outputGrad) / n
	return []*tensor.RawTensor{fullLike(x.Shape(), x.DType(), x.Device(), g)}
}

// Inputs returns the input tensor [x].
func (op *MeanOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor mean(x).
func (op *MeanOp) Output() *tensor.RawTensor {
	return op.output
}
