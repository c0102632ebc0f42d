package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float64](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, T(1), b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float64](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Scalar creates a single-element tensor holding the given value.
// Convenient for mixing constants into differentiable expressions.
func Scalar[T DType, B Backend](value T, b B) *Tensor[T, B] {
	return Full[T, B](Shape{1}, value, b)
}

// Randn creates a tensor with random values from a normal distribution
// (mean=0, std=1) using the Box-Muller transform.
// Note: Uses math/rand (not crypto/rand) - appropriate for numeric purposes.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := 0; i < len(data); i += 2 {
		u1 := rand.Float64()
		u2 := rand.Float64()
		r := math.Sqrt(-2 * math.Log(u1))
		data[i] = T(r * math.Cos(2*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(r * math.Sin(2*math.Pi*u2))
		}
	}
	return t
}
