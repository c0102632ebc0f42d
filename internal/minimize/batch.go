package minimize

import "fmt"

// dispatchBatch fans a batched call out to the single-instance path.
// Instances are solved strictly sequentially and independently; the only
// state they share is the diagnostic minimum tracker.
func dispatchBatch(objective Objective, x0 *Param, cfg *Config,
	useGrad, useHess bool, tracker *minTracker) (*Result, error) {

	shape := x0.Shape()
	if len(shape) < 2 {
		return nil, ErrBatchShape
	}
	b := shape[0]
	instShape := shape[1:].Clone()
	flatSize := instShape.NumElements()

	if err := cfg.validateBatch(b); err != nil {
		return nil, err
	}
	bounds := broadcast(cfg.Bounds, cfg.BatchBounds, b)
	constraints := broadcast(cfg.Constraints, cfg.BatchConstraints, b)
	tols := broadcast(cfg.Tol, cfg.BatchTol, b)
	args := broadcast(cfg.Args, cfg.BatchArgs, b)

	data, _ := flatten(x0)

	solutions := make([][]float64, b)
	success := make([]bool, b)
	message := make([]string, b)

	for i := 0; i < b; i++ {
		x := append([]float64(nil), data[i*flatSize:(i+1)*flatSize]...)
		inst := instanceConfig{
			bounds:      bounds[i],
			constraints: constraints[i],
			tol:         tols[i],
			args:        args[i],
		}
		outcome, err := solveInstance(objective, x, instShape, inst, cfg, useGrad, useHess, tracker)
		if err != nil {
			return nil, fmt.Errorf("minimize: batch instance %d: %w", i, err)
		}
		solutions[i] = outcome.X
		success[i] = outcome.Success
		message[i] = outcome.Message
	}

	solution, err := assemble(solutions, shape)
	if err != nil {
		return nil, err
	}
	return &Result{
		Solution:     solution,
		Success:      success,
		Message:      message,
		MinObjective: tracker.best,
	}, nil
}

// broadcast replicates a shared configuration value across the batch
// unless a per-instance override is present. Override lengths were
// already validated against the batch size.
func broadcast[T any](shared T, perInstance []T, b int) []T {
	if perInstance != nil {
		return perInstance
	}
	out := make([]T, b)
	for i := range out {
		out[i] = shared
	}
	return out
}
