// Package ops defines the differentiable operations recorded on the gradient tape.
//
// Each operation stores its forward inputs and output, and implements the
// backward pass (chain rule) for reverse-mode automatic differentiation.
package ops

import "github.com/born-ml/sonum/internal/tensor"

// Operation is a single recorded step of the forward pass.
type Operation interface {
	// Backward computes gradients for the operation's inputs given the
	// gradient of the loss with respect to the output.
	// The returned slice is parallel to Inputs().
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors of the forward pass.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor of the forward pass.
	Output() *tensor.RawTensor
}
