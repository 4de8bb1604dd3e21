/*
Copyright © 2026 Felix Zeidler <felix@zeidler.dev>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package linprog

import "math"

/* Types */

type SolveResult struct {
	model  *Model
	status SolveStatus
	values []float64 // indexed by variable, nil unless optimal
	obj    float64
}

type SolveStatus int

const (
	SolutionOptimal SolveStatus = iota
	SolutionInfeasible
	SolutionUnbounded
)

func (s SolveStatus) String() string {
	switch s {
	case SolutionOptimal:
		return "optimal"
	case SolutionInfeasible:
		return "infeasible"
	case SolutionUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

type SolveError int

const (
	// ErrModelMalformed marks models rejected before solving:
	// undeclared or foreign variables, non-finite input, contradictory
	// bounds, empty models.
	ErrModelMalformed SolveError = iota + 1
	// ErrNumericalFailure marks an internal failure of the solve
	// algorithm on a well-formed model.
	ErrNumericalFailure
)

// Error returns a string representation of the given error value.
func (e SolveError) Error() string {
	switch e {
	case ErrModelMalformed:
		return "model is malformed"
	case ErrNumericalFailure:
		return "numerical failure while solving"
	default:
		panic("unrecognized error")
	}
}

/* Result accessors */

// Status reports whether the model has a finite optimum
// (SolutionOptimal), no feasible point (SolutionInfeasible), or an
// objective that can be improved without limit (SolutionUnbounded).
func (res *SolveResult) Status() SolveStatus {
	return res.status
}

// Value returns the computed value of the given variable for this
// optimization result.
// This is a shorthand for PrimalValue.
func (res *SolveResult) Value(v *Variable) float64 {
	return res.PrimalValue(v)
}

// PrimalValue returns the computed value of the given variable for
// this optimization result. It returns NaN unless the status is
// SolutionOptimal and the variable belongs to the solved model.
func (res *SolveResult) PrimalValue(v *Variable) float64 {
	if res.status != SolutionOptimal || v == nil || v.model != res.model {
		return math.NaN()
	}

	return res.values[v.index]
}

// Values returns the solution as a mapping from variable name to
// optimal value. The map is empty unless the status is
// SolutionOptimal.
func (res *SolveResult) Values() map[string]float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	values := make(map[string]float64, len(res.values))
	for i, val := range res.values {
		values[res.model.vars[i].name] = val
	}

	return values
}

// ObjectiveValue returns the value of the objective function for this
// optimization result. It returns NaN unless the status is
// SolutionOptimal.
func (res *SolveResult) ObjectiveValue() float64 {
	if res.status != SolutionOptimal {
		return math.NaN()
	}

	return res.obj
}
