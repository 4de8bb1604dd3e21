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

// constraint is a linear range constraint:
//
//	lower <= sum(coefs[i] * x[cols[i]]) <= upper
//
// An equality has lower == upper; a one-sided constraint has an
// infinite lower or upper.
type constraint struct {
	lower float64
	upper float64
	cols  []int
	coefs []float64
}

func (c constraint) clone() constraint {
	cols := make([]int, len(c.cols))
	copy(cols, c.cols)
	coefs := make([]float64, len(c.coefs))
	copy(coefs, c.coefs)

	return constraint{
		lower: c.lower,
		upper: c.upper,
		cols:  cols,
		coefs: coefs,
	}
}

// activity evaluates the constraint's left-hand side at the given
// point, indexed by variable.
func (c constraint) activity(x []float64) float64 {
	var sum float64
	for i, col := range c.cols {
		sum += c.coefs[i] * x[col]
	}
	return sum
}
