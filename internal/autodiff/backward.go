package autodiff

import (
	"fmt"

	"github.com/born-ml/sonum/internal/tensor"
)

// Gradients maps forward-pass tensors to their accumulated gradients.
type Gradients map[*tensor.RawTensor]*tensor.RawTensor

// Backward computes gradients of a scalar output with respect to every
// tensor that participated in its computation.
//
// It walks the recorded tape in reverse. The seed gradient d(output)/d(output)
// is a one-filled tensor of the output's shape. Gradients flowing into the
// same tensor from multiple consumers are summed.
func (ab *AutodiffBackend[B]) Backward(output *tensor.RawTensor) (Gradients, error) {
	operations := ab.tape.Operations()
	if len(operations) == 0 {
		return nil, fmt.Errorf("backward: empty tape")
	}

	grads := make(Gradients)
	grads[output] = onesLike(output)

	for i := len(operations) - 1; i >= 0; i-- {
		op := operations[i]

		outputGrad, ok := grads[op.Output()]
		if !ok {
			// This operation did not contribute to the requested output.
			continue
		}

		inputGrads := op.Backward(outputGrad, ab.inner)
		inputs := op.Inputs()
		if len(inputGrads) != len(inputs) {
			return nil, fmt.Errorf("backward: operation returned %d gradients for %d inputs",
				len(inputGrads), len(inputs))
		}

		for j, input := range inputs {
			if existing, ok := grads[input]; ok {
				grads[input] = ab.inner.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads, nil
}

// onesLike creates a one-filled tensor with the shape and dtype of t.
func onesLike(t *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("autodiff: %v", err))
	}
	switch t.DType() {
	case tensor.Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("autodiff: unsupported dtype %s", t.DType()))
	}
	return out
}
