package minimize

import (
	"github.com/born-ml/sonum/internal/tensor"
)

// assemble stacks per-instance solution vectors back into a detached
// tensor of the original batched shape, batch dimension leading.
func assemble(solutions [][]float64, shape tensor.Shape) (*Param, error) {
	flat := make([]float64, 0, shape.NumElements())
	for _, s := range solutions {
		flat = append(flat, s...)
	}
	return detached(flat, shape.Clone())
}
