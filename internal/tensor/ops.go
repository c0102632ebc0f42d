package tensor

// Add performs element-wise addition.
// The operand shapes must match, or one operand must be a single-element
// tensor, which is expanded against the other.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Sub performs element-wise subtraction.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Sub(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Mul performs element-wise multiplication.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Mul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Div performs element-wise division.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Div(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) → (M, N).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.MatMul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Reshape returns a tensor with the same data but different shape.
// The new shape must have the same number of elements.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	result := t.backend.Reshape(t.raw, Shape(newShape))
	return New[T, B](result, t.backend)
}

// Transpose transposes the tensor by permuting its dimensions.
// If axes is empty, reverses all dimensions.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	result := t.backend.Transpose(t.raw, axes...)
	return New[T, B](result, t.backend)
}

// T is a shortcut for 2D transpose (swaps rows and columns).
// Panics if the tensor is not 2D.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	if len(t.Shape()) != 2 {
		panic("T() only works for 2D tensors")
	}
	return t.Transpose(1, 0)
}

// MulScalar multiplies each element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	result := t.backend.MulScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// AddScalar adds a scalar to each element.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	result := t.backend.AddScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// SubScalar subtracts a scalar from each element.
func (t *Tensor[T, B]) SubScalar(scalar T) *Tensor[T, B] {
	return t.AddScalar(-scalar)
}

// Neg negates each element.
func (t *Tensor[T, B]) Neg() *Tensor[T, B] {
	return t.MulScalar(-1)
}

// Pow raises each element to the power p.
func (t *Tensor[T, B]) Pow(p float64) *Tensor[T, B] {
	result := t.backend.PowScalar(t.raw, p)
	return New[T, B](result, t.backend)
}

// Square squares each element.
func (t *Tensor[T, B]) Square() *Tensor[T, B] {
	return t.Mul(t)
}

// Exp computes the element-wise exponential.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	result := t.backend.Exp(t.raw)
	return New[T, B](result, t.backend)
}

// Log computes the element-wise natural logarithm.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	result := t.backend.Log(t.raw)
	return New[T, B](result, t.backend)
}

// Sqrt computes the element-wise square root.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	result := t.backend.Sqrt(t.raw)
	return New[T, B](result, t.backend)
}

// Cos computes the element-wise cosine.
func (t *Tensor[T, B]) Cos() *Tensor[T, B] {
	result := t.backend.Cos(t.raw)
	return New[T, B](result, t.backend)
}

// Sin computes the element-wise sine.
func (t *Tensor[T, B]) Sin() *Tensor[T, B] {
	result := t.backend.Sin(t.raw)
	return New[T, B](result, t.backend)
}

// Sum reduces the tensor to its total sum. The result has shape {1}.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	result := t.backend.Sum(t.raw)
	return New[T, B](result, t.backend)
}

// Mean reduces the tensor to its arithmetic mean. The result has shape {1}.
func (t *Tensor[T, B]) Mean() *Tensor[T, B] {
	result := t.backend.Mean(t.raw)
	return New[T, B](result, t.backend)
}
