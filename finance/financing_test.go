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
package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzeidler/linprog"
)

const delta = 0.000001 // acceptable numerical deviation for test results

// the six-month schedule from the case study, in thousands of dollars
func testFinancingProblem() ShortTermFinancing {
	return ShortTermFinancing{
		NetCashFlows: []float64{-200, -150, 400, -300, 100, 450},
		CreditRate:   0.005,
		CreditLimit:  100,
		BondRate:     0.015,
		InvestRate:   0.002,
	}
}

func TestShortTermFinancing(t *testing.T) {
	fm, res, err := testFinancingProblem().Solve()
	require.NoError(t, err)

	assert.Equal(t, linprog.SolutionOptimal, res.Status())
	assert.InDelta(t, 294.40, res.ObjectiveValue(), 0.01)
	assert.InDelta(t, res.ObjectiveValue(), res.Value(fm.Wealth), delta)
}

func TestShortTermFinancingRespectsBounds(t *testing.T) {
	fm, res, err := testFinancingProblem().Solve()
	require.NoError(t, err)

	for _, v := range fm.Credit {
		assert.GreaterOrEqual(t, res.Value(v), 0.0-delta)
		assert.LessOrEqual(t, res.Value(v), 100.0+delta)
	}
	for _, v := range append(fm.Bonds, fm.Invest...) {
		assert.GreaterOrEqual(t, res.Value(v), 0.0-delta)
	}
	assert.GreaterOrEqual(t, res.Value(fm.Wealth), 0.0-delta)
}

func TestShortTermFinancingBalances(t *testing.T) {
	p := testFinancingProblem()
	fm, res, err := p.Solve()
	require.NoError(t, err)

	value := func(vs []*linprog.Variable, i int) float64 {
		if i < 0 || i >= len(vs) {
			return 0
		}
		return res.Value(vs[i])
	}

	// the month's financing, matured investments and net flow must
	// balance repayments, new investments and (finally) the wealth
	n := len(p.NetCashFlows)
	for m := 1; m <= n; m++ {
		in := value(fm.Credit, m-1) + value(fm.Bonds, m-1) +
			(1+p.InvestRate)*value(fm.Invest, m-2) +
			p.NetCashFlows[m-1]
		out := value(fm.Invest, m-1) +
			(1+p.CreditRate)*value(fm.Credit, m-2) +
			(1+p.BondRate)*value(fm.Bonds, m-bondMaturity-1)
		if m == n {
			out += res.Value(fm.Wealth)
		}
		assert.InDelta(t, out, in, delta, "month %d unbalanced", m)
	}
}

func TestShortTermFinancingDeterminism(t *testing.T) {
	fm, first, err := testFinancingProblem().Solve()
	require.NoError(t, err)

	second, err := fm.Model.Solve()
	require.NoError(t, err)

	assert.Equal(t, first.ObjectiveValue(), second.ObjectiveValue())
	assert.Equal(t, first.Values(), second.Values())
}

func TestShortTermFinancingInfeasible(t *testing.T) {
	// a two-month horizon has no bonds; a shortfall beyond the credit
	// limit cannot be financed
	p := ShortTermFinancing{
		NetCashFlows: []float64{-200, 0},
		CreditRate:   0.005,
		CreditLimit:  100,
		BondRate:     0.015,
		InvestRate:   0.002,
	}

	_, res, err := p.Solve()
	require.NoError(t, err)

	assert.Equal(t, linprog.SolutionInfeasible, res.Status())
}

func TestShortTermFinancingRejectsBadInput(t *testing.T) {
	p := testFinancingProblem()
	p.NetCashFlows = []float64{-200}
	_, err := p.Build()
	assert.Error(t, err)

	p = testFinancingProblem()
	p.CreditRate = -0.1
	_, err = p.Build()
	assert.Error(t, err)

	p = testFinancingProblem()
	p.CreditLimit = -5
	_, err = p.Build()
	assert.Error(t, err)
}
