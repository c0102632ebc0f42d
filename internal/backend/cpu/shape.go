package cpu

import (
	"fmt"

	"github.com/born-ml/sonum/internal/tensor"
)

// Reshape returns a tensor with the same elements and a new shape.
// The new shape must describe the same number of elements.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}

	result, err := tensor.NewRaw(newShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}

	copy(result.Data(), t.Data()[:t.ByteSize()])
	return result
}
