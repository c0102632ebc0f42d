package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// The operation set is scoped to what differentiable scalar objectives are
// built from: element-wise arithmetic, a few transcendental functions,
// reductions to a scalar, and dense matrix products.
//
// Implementations:
//   - CPU: pure Go (internal/backend/cpu)
//   - Autodiff decorator: wraps any Backend and records a gradient tape
//     (internal/autodiff)
type Backend interface {
	// Element-wise binary operations.
	// Operands must share a shape, or one operand must be a single-element
	// tensor, which is expanded against the other.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Matrix operations
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor
	PowScalar(x *RawTensor, p float64) *RawTensor

	// Math operations (element-wise)
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor

	// Reduction operations
	Sum(x *RawTensor) *RawTensor  // total sum, result shape {1}
	Mean(x *RawTensor) *RawTensor // arithmetic mean, result shape {1}

	// Metadata
	Name() string
	Device() Device
}
