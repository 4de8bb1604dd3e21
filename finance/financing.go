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

// Package finance holds the two worked optimization problems the
// library grew out of: short-term financing of a monthly cash-flow
// schedule, and currency arbitrage over a bid/ask quote table.
package finance

import (
	"fmt"
	"math"

	"github.com/fzeidler/linprog"
)

// bonds run for three months from issue to repayment
const bondMaturity = 3

// ShortTermFinancing describes the problem of covering a schedule of
// monthly net cash flows (negative entries are shortfalls) from three
// instruments: a line of credit drawn month to month, bonds issued
// against future surplus, and investment of any excess cash. The
// objective is the company's wealth after the final month.
type ShortTermFinancing struct {
	// NetCashFlows holds one net flow per month of the planning
	// horizon. Negative values must be financed.
	NetCashFlows []float64
	// CreditRate is the monthly interest rate on the line of credit,
	// e.g. 0.005 for 0.5%.
	CreditRate float64
	// CreditLimit caps the credit drawn in any single month.
	CreditLimit float64
	// BondRate is the interest due on a bond over its three-month
	// term, e.g. 0.015 for 1.5%.
	BondRate float64
	// InvestRate is the monthly return on invested surplus cash,
	// e.g. 0.002 for 0.2%.
	InvestRate float64
}

// FinancingModel is a ShortTermFinancing problem lowered to a linear
// program, with handles to the decision variables.
type FinancingModel struct {
	Model *linprog.Model
	// Credit[t] is the credit drawn in month t+1, repaid with
	// interest a month later.
	Credit []*linprog.Variable
	// Bonds[t] is the bond volume issued in month t+1, repaid with
	// interest at maturity.
	Bonds []*linprog.Variable
	// Invest[t] is the surplus invested in month t+1, returned with
	// interest a month later.
	Invest []*linprog.Variable
	// Wealth is the company's final wealth, the maximized objective.
	Wealth *linprog.Variable
}

// Build lowers the problem to a linear program: one cash-balance
// equality per month, linking each month's instruments to the
// previous month's repayments, with the final month feeding the
// wealth variable.
func (p ShortTermFinancing) Build(opts ...linprog.Option) (*FinancingModel, error) {
	n := len(p.NetCashFlows)
	if n < 2 {
		return nil, fmt.Errorf("financing horizon must cover at least two months, got %d", n)
	}
	for _, r := range []float64{p.CreditRate, p.BondRate, p.InvestRate} {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return nil, fmt.Errorf("rates must be finite and non-negative, got %v", r)
		}
	}
	if math.IsNaN(p.CreditLimit) || p.CreditLimit < 0 {
		return nil, fmt.Errorf("credit limit must be non-negative, got %v", p.CreditLimit)
	}

	model, err := linprog.NewModel("short-term financing", linprog.Maximize, opts...)
	if err != nil {
		return nil, err
	}

	fm := &FinancingModel{Model: model}

	for t := 1; t < n; t++ {
		v, err := model.AddDefinedVariable(fmt.Sprintf("credit_%d", t), 0, 0, p.CreditLimit)
		if err != nil {
			return nil, err
		}
		fm.Credit = append(fm.Credit, v)
	}
	for t := 1; t+bondMaturity <= n; t++ {
		v, err := model.AddDefinedVariable(fmt.Sprintf("bond_%d", t), 0, 0, math.Inf(1))
		if err != nil {
			return nil, err
		}
		fm.Bonds = append(fm.Bonds, v)
	}
	for t := 1; t < n; t++ {
		v, err := model.AddDefinedVariable(fmt.Sprintf("invest_%d", t), 0, 0, math.Inf(1))
		if err != nil {
			return nil, err
		}
		fm.Invest = append(fm.Invest, v)
	}
	fm.Wealth, err = model.AddDefinedVariable("wealth", 1, 0, math.Inf(1))
	if err != nil {
		return nil, err
	}

	// month t balance: new financing plus matured investments covers
	// the month's shortfall and the repayments falling due
	for t := 1; t <= n; t++ {
		var vars []*linprog.Variable
		var coefs []float64

		if t < n {
			vars = append(vars, fm.Credit[t-1], fm.Invest[t-1])
			coefs = append(coefs, 1, -1)
		}
		if t+bondMaturity <= n {
			vars = append(vars, fm.Bonds[t-1])
			coefs = append(coefs, 1)
		}
		if t > 1 {
			vars = append(vars, fm.Credit[t-2], fm.Invest[t-2])
			coefs = append(coefs, -(1 + p.CreditRate), 1+p.InvestRate)
		}
		if t > bondMaturity {
			vars = append(vars, fm.Bonds[t-bondMaturity-1])
			coefs = append(coefs, -(1 + p.BondRate))
		}
		if t == n {
			vars = append(vars, fm.Wealth)
			coefs = append(coefs, -1)
		}

		if err := model.AddEquality(vars, coefs, -p.NetCashFlows[t-1]); err != nil {
			return nil, err
		}
	}

	return fm, nil
}

// Solve builds the model and runs the solver.
func (p ShortTermFinancing) Solve(opts ...linprog.Option) (*FinancingModel, *linprog.SolveResult, error) {
	fm, err := p.Build(opts...)
	if err != nil {
		return nil, nil, err
	}

	res, err := fm.Model.Solve()
	if err != nil {
		return nil, nil, err
	}

	return fm, res, nil
}
