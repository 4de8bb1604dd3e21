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

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

/* Standard-form lowering */

// The simplex routine wants min cᵀy s.t. Ay = b, y >= 0.  The general
// model is lowered onto it column by column:
//
//   - a variable with a finite lower bound l becomes x = l + y
//   - a variable bounded only above by u becomes x = u - y
//   - a free variable is split into x = y⁺ - y⁻
//
// Finite upper bounds of shifted variables and the two sides of range
// constraints become rows of their own, with a slack or surplus column
// per inequality row.

type colKind int

const (
	colShifted colKind = iota
	colMirrored
	colSplit
)

type column struct {
	kind   colKind
	offset float64
	pos    int
	neg    int // used by colSplit only
}

type stdRow struct {
	coefs map[int]float64
	rel   int // -1: <=, 0: =, +1: >=
	rhs   float64
}

// runSimplex lowers the model to standard form, runs the simplex
// algorithm and lifts the solution back to the model's variables.
// Callers must hold at least a read lock.
func (model *Model) runSimplex() (*SolveResult, error) {
	cols := make([]column, len(model.vars))
	ncols := 0
	for i, v := range model.vars {
		switch {
		case !math.IsInf(v.lower, -1):
			cols[i] = column{kind: colShifted, offset: v.lower, pos: ncols}
			ncols++
		case !math.IsInf(v.upper, 1):
			cols[i] = column{kind: colMirrored, offset: v.upper, pos: ncols}
			ncols++
		default:
			cols[i] = column{kind: colSplit, pos: ncols, neg: ncols + 1}
			ncols += 2
		}
	}

	var rows []stdRow
	for _, c := range model.cons {
		coefs := make(map[int]float64, len(c.cols))
		shift := 0.0
		for i, varIdx := range c.cols {
			co := c.coefs[i]
			col := cols[varIdx]
			switch col.kind {
			case colShifted:
				coefs[col.pos] += co
				shift += co * col.offset
			case colMirrored:
				coefs[col.pos] -= co
				shift += co * col.offset
			case colSplit:
				coefs[col.pos] += co
				coefs[col.neg] -= co
			}
		}

		if c.lower == c.upper {
			rows = append(rows, stdRow{coefs: coefs, rel: 0, rhs: c.lower - shift})
			continue
		}
		if !math.IsInf(c.upper, 1) {
			rows = append(rows, stdRow{coefs: coefs, rel: -1, rhs: c.upper - shift})
		}
		if !math.IsInf(c.lower, -1) {
			rows = append(rows, stdRow{coefs: coefs, rel: 1, rhs: c.lower - shift})
		}
	}

	// upper bounds of shifted variables become rows; mirrored and
	// split columns never carry a second finite bound
	for i, v := range model.vars {
		if cols[i].kind == colShifted && !math.IsInf(v.upper, 1) {
			rows = append(rows, stdRow{
				coefs: map[int]float64{cols[i].pos: 1},
				rel:   -1,
				rhs:   v.upper - v.lower,
			})
		}
	}

	nslack := 0
	for _, r := range rows {
		if r.rel != 0 {
			nslack++
		}
	}

	n := ncols + nslack
	m := len(rows)
	a := make([]float64, m*n)
	b := make([]float64, m)
	slack := ncols
	for i, r := range rows {
		for col, co := range r.coefs {
			a[i*n+col] = co
		}
		switch r.rel {
		case -1:
			a[i*n+slack] = 1
			slack++
		case 1:
			a[i*n+slack] = -1
			slack++
		}
		b[i] = r.rhs
	}

	c := make([]float64, n)
	for i, v := range model.vars {
		if v.coef == 0 {
			continue
		}
		col := cols[i]
		switch col.kind {
		case colShifted:
			c[col.pos] += v.coef
		case colMirrored:
			c[col.pos] -= v.coef
		case colSplit:
			c[col.pos] += v.coef
			c[col.neg] -= v.coef
		}
	}
	if model.dir == Maximize {
		floats.Scale(-1, c)
	}

	_, optY, err := lp.Simplex(c, mat.NewDense(m, n, a), b, model.tol, nil)
	switch {
	case err == nil:
		// fall through to solution recovery
	case errors.Is(err, lp.ErrInfeasible):
		return &SolveResult{model: model, status: SolutionInfeasible}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &SolveResult{model: model, status: SolutionUnbounded}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrNumericalFailure, err)
	}

	values := make([]float64, len(model.vars))
	objCoefs := make([]float64, len(model.vars))
	for i, v := range model.vars {
		col := cols[i]
		switch col.kind {
		case colShifted:
			values[i] = col.offset + optY[col.pos]
		case colMirrored:
			values[i] = col.offset - optY[col.pos]
		case colSplit:
			values[i] = optY[col.pos] - optY[col.neg]
		}
		objCoefs[i] = v.coef
	}

	return &SolveResult{
		model:  model,
		status: SolutionOptimal,
		values: values,
		obj:    floats.Dot(objCoefs, values),
	}, nil
}
