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

type Variable struct {
	model *Model
	index int
	name  string
	coef  float64
	lower float64
	upper float64
}

/* Variable-related functions (model variables, as opposed to Go variables) */

// Name returns the name given to the variable when it was added to its
// model.
func (v *Variable) Name() string {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.name
}

// SetBounds sets the boundaries for the given variable.
// To leave a side unbounded, pass math.Inf(1) or math.Inf(-1). The
// sign of the infinity is ignored, as the lower and upper bounds are
// always assumed to be the negative and positive infinities,
// respectively.
func (v *Variable) SetBounds(lower, upper float64) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	if math.IsInf(lower, 0) {
		lower = math.Inf(-1)
	}
	if math.IsInf(upper, 0) {
		upper = math.Inf(1)
	}

	v.lower = lower
	v.upper = upper
}

// Bounds returns the variable's lower and upper bounds.
func (v *Variable) Bounds() (lower, upper float64) {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.lower, v.upper
}

// SetObjectiveCoefficient sets the variable's coefficient in the
// model's objective function.
func (v *Variable) SetObjectiveCoefficient(coef float64) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.coef = coef
}

// Coefficient returns the variable's coefficient in the model's
// objective function.
func (v *Variable) Coefficient() float64 {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.coef
}
