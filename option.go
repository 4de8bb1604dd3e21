package linprog

import (
	"fmt"
	"math"
)

type Option func(*Model) error

func WithLogger(logger Logger) Option {
	return func(m *Model) error {
		m.logger = logger

		return nil
	}
}

// WithTolerance overrides the numeric tolerance used by the solve
// algorithm. The default is DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(m *Model) error {
		if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
			return fmt.Errorf("%w: tolerance must be a positive finite number", ErrModelMalformed)
		}
		m.tol = tol

		return nil
	}
}
