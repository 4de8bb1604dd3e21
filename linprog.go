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

/*

Package linprog is a library for modeling and solving linear programming
problems in pure Go.

As an example of the API, the model of the following problem:

    Maximize:
      z = x1 + 2 x2 - x3
    With:
      0 <= x1 <= 40
      0 <= x2
      0 <= x3
    Subject to:
      2 x1 + x2 + x3 <= 14
      4 x1 + 2 x2 + 3 x3 <= 28
      x2 - 8 x3 = 0

can be expressed like this:

	package main

	import (
		"fmt"
		"math"

		"github.com/fzeidler/linprog"
	)

	func main() {
		model, _ := linprog.NewModel("some model", linprog.Maximize)
		x1, _ := model.AddVariable("x1")
		x1.SetBounds(0, 40)
		x1.SetObjectiveCoefficient(1)
		x2, _ := model.AddVariable("x2")
		x2.SetObjectiveCoefficient(2)
		// alternatively, all information can be given at once:
		x3, _ := model.AddDefinedVariable("x3", -1, 0, math.Inf(1))

		model.AddConstraint(math.Inf(-1), 14, []*linprog.Variable{x1, x2, x3}, []float64{2, 1, 1})
		model.AddConstraint(math.Inf(-1), 28, []*linprog.Variable{x1, x2, x3}, []float64{4, 2, 3})
		model.AddConstraint(0, 0, []*linprog.Variable{x2, x3}, []float64{1, -8})

		res, _ := model.Solve() // you should check for errors

		fmt.Printf("solution optimal? %t\n", res.Status() == linprog.SolutionOptimal)
		fmt.Printf("z = %f\n", res.ObjectiveValue())
		fmt.Printf("x1 = %f\n", res.Value(x1))
	}

Infeasibility and unboundedness are reported through the result status
rather than as errors, since both are legitimate outcomes of a
well-formed model. Errors are reserved for malformed models and for
internal solver failures.

*/
package linprog

import (
	"context"
	"fmt"
	"math"
	"sync"
)

/* Types */

type Model struct {
	mu     sync.RWMutex
	name   string
	dir    direction
	vars   []*Variable
	cons   []constraint
	tol    float64
	logger Logger
}

type direction int

const (
	Minimize direction = iota
	Maximize
)

// DefaultTolerance is the numeric tolerance used by Solve unless
// overridden with WithTolerance.
const DefaultTolerance = 1e-9

/* Model related functions */

// NewModel instantiates a new linear programming model, providing a
// name (purely informational) and an optimization direction (either
// Minimize or Maximize)
func NewModel(name string, dir direction, opts ...Option) (*Model, error) {
	model := &Model{
		name:   name,
		dir:    dir,
		tol:    DefaultTolerance,
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if err := opt(model); err != nil {
			return nil, fmt.Errorf("applying model option: %w", err)
		}
	}

	return model, nil
}

// Clone returns a copy of the model. The copy owns its own variables;
// the ones returned by the original model's Add*Variable calls must
// not be mixed into it.
func (model *Model) Clone() *Model {
	model.mu.RLock()
	defer model.mu.RUnlock()

	newModel := &Model{
		name:   model.name,
		dir:    model.dir,
		tol:    model.tol,
		logger: model.logger,
	}

	newModel.vars = make([]*Variable, len(model.vars))
	for i, v := range model.vars {
		newModel.vars[i] = &Variable{
			model: newModel,
			index: v.index,
			name:  v.name,
			coef:  v.coef,
			lower: v.lower,
			upper: v.upper,
		}
	}

	newModel.cons = make([]constraint, len(model.cons))
	for i, c := range model.cons {
		newModel.cons[i] = c.clone()
	}

	return newModel
}

// Name returns the name provided upon instantiation of a model
func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.name
}

// SetDirection changes the direction of the model's optimization
func (model *Model) SetDirection(dir direction) {
	model.mu.Lock()
	defer model.mu.Unlock()

	model.dir = dir
}

// Direction returns the model's current optimization direction
func (model *Model) Direction() direction {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.dir
}

/* Column-related functions */

func (model *Model) VariableCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.vars)
}

// Variables returns a new slice with the model's variables. Changes to
// the slice will not be reflected in the model.
func (model *Model) Variables() []*Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

	vars := make([]*Variable, len(model.vars))
	copy(vars, model.vars)

	return vars
}

// AddVariable adds a variable to the linear programming model and
// returns a reference to it.
// A freshly instantiated variable has bounds [0, +inf) and an
// objective coefficient of 0.
//
// A variable is bound to its model. Attempting to use a variable
// created in one model inside a different model is rejected when that
// model is solved.
//
// Empty names will automatically be replaced by a unique name.
func (model *Model) AddVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, 0, 0, math.Inf(1))
}

// AddFreeVariable is a convenience function for adding a variable
// without bounds, i.e. ranging over (-inf, +inf).
// Empty names will automatically be replaced by a unique name.
func (model *Model) AddFreeVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, 0, math.Inf(-1), math.Inf(1))
}

// AddDefinedVariable adds a variable to the linear programming model
// with its objective coefficient and bounds passed as arguments.
// Empty names will automatically be replaced by a unique name.
func (model *Model) AddDefinedVariable(name string, coefficient, lowerBound, upperBound float64) (*Variable, error) {
	model.mu.Lock()
	defer model.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("V%d", len(model.vars))
	}

	v := &Variable{
		model: model,
		index: len(model.vars),
		name:  name,
		coef:  coefficient,
		lower: lowerBound,
		upper: upperBound,
	}
	model.vars = append(model.vars, v)

	return v, nil
}

// SetObjectiveFunction defines the objective function for the model as
// a slice of coefficients and a slice of its respective variables.
// E.g.: an objective function of the form 2x+3y is passed as:
//
//	SetObjectiveFunction([]float64{2, 3}, []*Variable{x, y})
//
// Where x and y are the return values of one of the Add*Variable
// functions.
func (model *Model) SetObjectiveFunction(coefs []float64, vars []*Variable) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("%w: inconsistent number of variables and coefficients: %d != %d", ErrModelMalformed, len(vars), len(coefs))
	}

	for i, v := range vars {
		v.SetObjectiveCoefficient(coefs[i])
	}
	return nil
}

/* Constraint-related functions */

// ConstraintCount returns the number of individual constraints in
// the model
func (model *Model) ConstraintCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.cons)
}

// AddConstraint adds a constraint to the model as a lower and an upper
// bound, a slice of variables and a slice of their respective
// coefficients. Passing math.Inf(-1) or math.Inf(1) as a bound leaves
// the respective side unconstrained; equal bounds yield an equality
// constraint.
func (model *Model) AddConstraint(lower, upper float64, vars []*Variable, coefs []float64) error {
	model.mu.Lock()
	defer model.mu.Unlock()

	if len(vars) != len(coefs) {
		return fmt.Errorf("%w: inconsistent number of variables and coefficients: %d != %d", ErrModelMalformed, len(vars), len(coefs))
	}
	if len(vars) == 0 {
		return fmt.Errorf("%w: constraint without variables", ErrModelMalformed)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return fmt.Errorf("%w: constraint bound is NaN", ErrModelMalformed)
	}
	if lower > upper {
		return fmt.Errorf("%w: constraint bounds are contradictory: %v > %v", ErrModelMalformed, lower, upper)
	}
	if math.IsInf(lower, 0) && math.IsInf(upper, 0) {
		// no constraint
		return nil
	}

	cols := make([]int, len(vars))
	row := make([]float64, len(vars))
	for i, v := range vars {
		if v == nil {
			return fmt.Errorf("%w: constraint references a nil variable", ErrModelMalformed)
		}
		if v.model != model {
			return fmt.Errorf("%w: variable %q belongs to a different model", ErrModelMalformed, v.name)
		}
		if math.IsNaN(coefs[i]) || math.IsInf(coefs[i], 0) {
			return fmt.Errorf("%w: non-finite coefficient for variable %q", ErrModelMalformed, v.name)
		}
		cols[i] = v.index
		row[i] = coefs[i]
	}

	model.cons = append(model.cons, constraint{
		lower: lower,
		upper: upper,
		cols:  cols,
		coefs: row,
	})

	return nil
}

// AddLessEq adds the constraint sum(coefs*vars) <= rhs.
func (model *Model) AddLessEq(vars []*Variable, coefs []float64, rhs float64) error {
	return model.AddConstraint(math.Inf(-1), rhs, vars, coefs)
}

// AddGreaterEq adds the constraint sum(coefs*vars) >= rhs.
func (model *Model) AddGreaterEq(vars []*Variable, coefs []float64, rhs float64) error {
	return model.AddConstraint(rhs, math.Inf(1), vars, coefs)
}

// AddEquality adds the constraint sum(coefs*vars) = rhs.
func (model *Model) AddEquality(vars []*Variable, coefs []float64, rhs float64) error {
	return model.AddConstraint(rhs, rhs, vars, coefs)
}

/* Solving */

// Solve attempts to find an optimal solution to the model.
// Information about the solution can be queried from the returned
// SolveResult value, starting with its Status: infeasible and
// unbounded models are reported there, not as errors.
// Solving does not mutate the model; the same model may be solved
// repeatedly and from multiple goroutines.
func (model *Model) Solve() (*SolveResult, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if err := model.validate(); err != nil {
		return nil, err
	}

	model.logger.Print("solving model ", model.name, ": ", len(model.vars), " variables, ", len(model.cons), " constraints")

	res, err := model.runSimplex()
	if err != nil {
		model.logger.Print("solving model ", model.name, " failed: ", err)
		return nil, err
	}

	model.logger.Print("model ", model.name, " solved: ", res.status)

	return res, nil
}

// SolveWithContext wraps Solve() with a context. If the context is
// cancelled or times out before a solution is found, the context error
// is returned. The underlying computation cannot be interrupted and is
// left to finish on its own; models small enough for this library make
// that a non-concern.
func (model *Model) SolveWithContext(ctx context.Context) (*SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type outcome struct {
		res *SolveResult
		err error
	}

	ch := make(chan outcome, 1)
	go func() {
		res, err := model.Solve()
		ch <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-ch:
		return out.res, out.err
	}
}

// validate rejects malformed models before the solve algorithm runs.
// Callers must hold at least a read lock.
func (model *Model) validate() error {
	if len(model.vars) == 0 {
		return fmt.Errorf("%w: model has no variables", ErrModelMalformed)
	}
	if len(model.cons) == 0 {
		return fmt.Errorf("%w: model has no constraints", ErrModelMalformed)
	}

	referenced := make([]bool, len(model.vars))
	for _, c := range model.cons {
		for _, col := range c.cols {
			referenced[col] = true
		}
	}

	for _, v := range model.vars {
		if math.IsNaN(v.coef) || math.IsInf(v.coef, 0) {
			return fmt.Errorf("%w: variable %q has a non-finite objective coefficient", ErrModelMalformed, v.name)
		}
		if math.IsNaN(v.lower) || math.IsNaN(v.upper) || math.IsInf(v.lower, 1) || math.IsInf(v.upper, -1) {
			return fmt.Errorf("%w: variable %q has an ill-formed bound [%v, %v]", ErrModelMalformed, v.name, v.lower, v.upper)
		}
		if v.lower > v.upper {
			return fmt.Errorf("%w: variable %q has contradictory bounds: %v > %v", ErrModelMalformed, v.name, v.lower, v.upper)
		}
		if !referenced[v.index] && (math.IsInf(v.lower, 0) || math.IsInf(v.upper, 0)) {
			return fmt.Errorf("%w: variable %q is not referenced by any constraint", ErrModelMalformed, v.name)
		}
	}

	return nil
}
