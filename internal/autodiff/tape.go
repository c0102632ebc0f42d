package autodiff

import (
	"sync"

	"github.com/born-ml/sonum/internal/autodiff/ops"
)

// GradientTape records operations during the forward pass for later
// gradient computation.
//
// The tape is thread-safe so forward passes may be recorded from any
// goroutine, but a single tape records a single computation graph.
type GradientTape struct {
	mu         sync.Mutex
	operations []ops.Operation
}

// NewGradientTape creates an empty gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 16),
	}
}

// Record appends an operation to the tape.
func (t *GradientTape) Record(op ops.Operation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, op)
}

// Operations returns the recorded operations in execution order.
func (t *GradientTape) Operations() []ops.Operation {
	t.mu.Lock()
	defer t.mu.Unlock()
	result := make([]ops.Operation, len(t.operations))
	copy(result, t.operations)
	return result
}

// Len returns the number of recorded operations.
func (t *GradientTape) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.operations)
}

// Reset clears the tape for reuse.
func (t *GradientTape) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = t.operations[:0]
}
