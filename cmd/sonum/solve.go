package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/sonum/minimize"
	"github.com/born-ml/sonum/tensor"
)

var (
	objectiveName string
	methodName    string
	x0Flag        string
	tolFlag       float64
	maxIterFlag   int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Minimize a builtin objective",
	Long: `Minimizes one of the builtin test objectives (sphere, rosenbrock)
from a comma-separated starting point and prints the solution.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&objectiveName, "objective", "sphere", "Objective: sphere, rosenbrock")
	solveCmd.Flags().StringVar(&methodName, "method", "nelder-mead", "Optimization method")
	solveCmd.Flags().StringVar(&x0Flag, "x0", "1,1", "Comma-separated starting point")
	solveCmd.Flags().Float64Var(&tolFlag, "tol", 0, "Solver tolerance (0 = method default)")
	solveCmd.Flags().IntVar(&maxIterFlag, "max-iter", 0, "Iteration limit (0 = method default)")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	x0, err := parseVector(x0Flag)
	if err != nil {
		return fmt.Errorf("invalid --x0: %w", err)
	}

	method, err := minimize.ParseMethod(methodName)
	if err != nil {
		return err
	}

	objective, err := builtinObjective(objectiveName, len(x0))
	if err != nil {
		return err
	}

	slog.Info("Starting solve", "objective", objectiveName, "method", methodName, "dim", len(x0))

	start := minimize.FromSlice(x0, tensor.Shape{len(x0)})
	res, err := minimize.Minimize(objective, start, &minimize.Config{
		Method: method,
		Tol:    tolFlag,
		Options: minimize.Options{
			MaxIterations: maxIterFlag,
		},
	})
	if err != nil {
		return err
	}

	slog.Info("Solve finished",
		"success", res.Success[0],
		"message", res.Message[0],
		"min_objective", res.MinObjective)

	fmt.Printf("solution: %v\n", res.Solution.Data())
	return nil
}

func parseVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func builtinObjective(name string, n int) (minimize.Objective, error) {
	switch name {
	case "sphere":
		return func(x *minimize.Param, _ ...any) *minimize.Param {
			return x.Mul(x).Sum()
		}, nil
	case "rosenbrock":
		if n < 2 {
			return nil, fmt.Errorf("rosenbrock needs at least 2 variables")
		}
		return rosenbrock(n), nil
	default:
		return nil, fmt.Errorf("unknown objective %q", name)
	}
}

// rosenbrock builds Σ 100(x[i+1]-x[i]²)² + (1-x[i])² from matrix products:
// constant selection matrices pick the head (first n-1) and tail (last n-1)
// components, which keeps the whole expression inside the differentiable
// operation set.
func rosenbrock(n int) minimize.Objective {
	headSel := make([]float64, (n-1)*n)
	tailSel := make([]float64, (n-1)*n)
	for i := 0; i < n-1; i++ {
		headSel[i*n+i] = 1
		tailSel[i*n+i+1] = 1
	}

	return func(x *minimize.Param, _ ...any) *minimize.Param {
		b := x.Backend()
		selShape := tensor.Shape{n - 1, n}
		head, err := tensor.FromSlice(headSel, selShape, b)
		if err != nil {
			panic(err)
		}
		tail, err := tensor.FromSlice(tailSel, selShape, b)
		if err != nil {
			panic(err)
		}

		col := x.Reshape(n, 1)
		h := head.MatMul(col) // x[0..n-2]
		t := tail.MatMul(col) // x[1..n-1]

		d := t.Sub(h.Mul(h))
		curvature := d.Mul(d).MulScalar(100).Sum()
		offset := h.SubScalar(1)
		return curvature.Add(offset.Mul(offset).Sum())
	}
}
