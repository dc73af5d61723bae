package model

import (
	"context"
	"fmt"
	"math"
)

// Default training configuration constants.
const (
	defaultEpochs       = 300
	defaultLearningRate = 0.5
	defaultMinExamples  = 1000
)

// trainConfig holds tunable training parameters.
type trainConfig struct {
	epochs       int
	learningRate float64
	minExamples  int
}

// TrainOption applies a configuration option to training.
type TrainOption func(*trainConfig)

// WithEpochs sets the number of full-batch gradient descent passes.
func WithEpochs(epochs int) TrainOption {
	return func(c *trainConfig) {
		if epochs > 0 {
			c.epochs = epochs
		}
	}
}

// WithLearningRate sets the gradient descent step size.
func WithLearningRate(rate float64) TrainOption {
	return func(c *trainConfig) {
		if rate > 0 {
			c.learningRate = rate
		}
	}
}

// WithMinExamples lowers or raises the minimum corpus size accepted by Train.
func WithMinExamples(n int) TrainOption {
	return func(c *trainConfig) {
		if n > 0 {
			c.minExamples = n
		}
	}
}

// Logistic is a logistic-regression model over the expanded feature basis.
// Immutable after fitting; safe for concurrent use.
type Logistic struct {
	weights []float64
	means   []float64
	stds    []float64
}

// Train fits a logistic model on the corpus with full-batch gradient descent.
// It fails hard on a corpus that is too small or carries only one label, per
// the fail-closed training contract.
func Train(ctx context.Context, examples []Example, opts ...TrainOption) (*Logistic, error) {
	cfg := &trainConfig{
		epochs:       defaultEpochs,
		learningRate: defaultLearningRate,
		minExamples:  defaultMinExamples,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(examples) < cfg.minExamples {
		return nil, fmt.Errorf("%w: got %d examples, need at least %d",
			ErrInsufficientData, len(examples), cfg.minExamples)
	}

	admitted := 0
	for _, ex := range examples {
		if ex.Admitted {
			admitted++
		}
	}
	if admitted == 0 || admitted == len(examples) {
		return nil, fmt.Errorf("%w: %d of %d examples admitted",
			ErrDegenerateLabels, admitted, len(examples))
	}

	// Expand and standardize the design matrix once.
	design := make([][]float64, len(examples))
	labels := make([]float64, len(examples))
	for i, ex := range examples {
		design[i] = ex.Features.basis()
		if ex.Admitted {
			labels[i] = 1.0
		}
	}
	means, stds := standardize(design)

	m := &Logistic{
		weights: make([]float64, basisSize),
		means:   means,
		stds:    stds,
	}

	n := float64(len(design))
	grad := make([]float64, basisSize)
	for epoch := 0; epoch < cfg.epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("training cancelled: %w", err)
		}

		for j := range grad {
			grad[j] = 0
		}
		for i, row := range design {
			residual := sigmoid(dot(m.weights, row)) - labels[i]
			for j, x := range row {
				grad[j] += residual * x
			}
		}
		for j := range m.weights {
			m.weights[j] -= cfg.learningRate * grad[j] / n
		}
	}

	return m, nil
}

// PredictProbability returns the admission probability for a feature tuple.
func (m *Logistic) PredictProbability(_ context.Context, f Features) (float64, error) {
	if len(m.weights) != basisSize {
		return 0, ErrNotFitted
	}

	row := f.basis()
	for j := range row {
		row[j] = (row[j] - m.means[j]) / m.stds[j]
	}

	p := sigmoid(dot(m.weights, row))
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: probability %v out of range", ErrInference, p)
	}
	return p, nil
}

// standardize z-scores each column of the design matrix in place and returns
// the per-column means and deviations used.
func standardize(design [][]float64) (means, stds []float64) {
	means = make([]float64, basisSize)
	stds = make([]float64, basisSize)
	n := float64(len(design))

	for _, row := range design {
		for j, x := range row {
			means[j] += x
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, row := range design {
		for j, x := range row {
			d := x - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			// Constant column (e.g. a per-level bias); pass it through so the
			// model keeps its intercept.
			means[j] = 0
			stds[j] = 1
		}
	}
	for _, row := range design {
		for j := range row {
			row[j] = (row[j] - means[j]) / stds[j]
		}
	}
	return means, stds
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
