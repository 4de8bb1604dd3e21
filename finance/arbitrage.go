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
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/fzeidler/linprog"
)

// Quote is a two-sided price for a currency pair, in units of the
// counter currency per unit of the base currency. Selling the base
// earns the bid; buying it costs the ask.
type Quote struct {
	Base    string
	Counter string
	Bid     float64
	Ask     float64
}

// Conversion is one tradable direction derived from a quote.
type Conversion struct {
	From string
	To   string
}

// Arbitrage describes the search for a riskless profit in the home
// currency by trading cycles through a quote table. Without
// transaction costs any profitable cycle can be scaled indefinitely,
// so the model is unbounded unless ProfitCap is set; that is a
// property of the frictionless model, not a defect.
type Arbitrage struct {
	// Home is the currency profit is taken in.
	Home string
	// Quotes lists the tradable pairs. Each pair may appear once.
	Quotes []Quote
	// ProfitCap bounds the profit variable. Zero or +inf leaves the
	// profit uncapped.
	ProfitCap float64
}

// ArbitrageModel is an Arbitrage problem lowered to a linear program,
// with handles to the decision variables.
type ArbitrageModel struct {
	Model *linprog.Model
	// Conversions holds the traded amount per direction, denominated
	// in the source currency.
	Conversions map[Conversion]*linprog.Variable
	// Profit is the home-currency profit, the maximized objective.
	Profit *linprog.Variable
}

// Build lowers the problem to a linear program: one variable per
// tradable direction, a flow-conservation equality per non-home
// currency, and a profit variable collecting the home currency's net
// inflow.
func (p Arbitrage) Build(opts ...linprog.Option) (*ArbitrageModel, error) {
	if len(p.Quotes) == 0 {
		return nil, fmt.Errorf("no quotes given")
	}
	if math.IsNaN(p.ProfitCap) || p.ProfitCap < 0 {
		return nil, fmt.Errorf("profit cap must be non-negative, got %v", p.ProfitCap)
	}

	currencies := lo.Uniq(lo.FlatMap(p.Quotes, func(q Quote, _ int) []string {
		return []string{q.Base, q.Counter}
	}))
	if !lo.Contains(currencies, p.Home) {
		return nil, fmt.Errorf("home currency %q is not quoted", p.Home)
	}

	var conversions []Conversion
	rates := make(map[Conversion]float64, 2*len(p.Quotes))
	for _, q := range p.Quotes {
		if q.Base == q.Counter {
			return nil, fmt.Errorf("pair %s/%s quotes a currency against itself", q.Base, q.Counter)
		}
		if math.IsNaN(q.Bid) || math.IsInf(q.Bid, 0) || q.Bid <= 0 || math.IsNaN(q.Ask) || math.IsInf(q.Ask, 0) || q.Ask <= 0 {
			return nil, fmt.Errorf("pair %s/%s has a non-positive or non-finite price", q.Base, q.Counter)
		}

		sell := Conversion{From: q.Base, To: q.Counter}
		buy := Conversion{From: q.Counter, To: q.Base}
		if _, dup := rates[sell]; dup {
			return nil, fmt.Errorf("pair %s/%s is quoted twice", q.Base, q.Counter)
		}
		rates[sell] = q.Bid
		rates[buy] = 1 / q.Ask
		conversions = append(conversions, sell, buy)
	}

	model, err := linprog.NewModel("currency arbitrage", linprog.Maximize, opts...)
	if err != nil {
		return nil, err
	}

	am := &ArbitrageModel{
		Model:       model,
		Conversions: make(map[Conversion]*linprog.Variable, len(conversions)),
	}

	for _, conv := range conversions {
		v, err := model.AddVariable(fmt.Sprintf("%s_to_%s", conv.From, conv.To))
		if err != nil {
			return nil, err
		}
		am.Conversions[conv] = v
	}

	limit := math.Inf(1)
	if p.ProfitCap > 0 && !math.IsInf(p.ProfitCap, 1) {
		limit = p.ProfitCap
	}
	am.Profit, err = model.AddDefinedVariable("profit", 1, 0, limit)
	if err != nil {
		return nil, err
	}

	// every unit entering a currency must leave it again; at home the
	// surplus is the profit
	for _, ccy := range currencies {
		var vars []*linprog.Variable
		var coefs []float64
		for _, conv := range conversions {
			if conv.To == ccy {
				vars = append(vars, am.Conversions[conv])
				coefs = append(coefs, rates[conv])
			}
			if conv.From == ccy {
				vars = append(vars, am.Conversions[conv])
				coefs = append(coefs, -1)
			}
		}
		if ccy == p.Home {
			vars = append(vars, am.Profit)
			coefs = append(coefs, -1)
		}
		if err := model.AddEquality(vars, coefs, 0); err != nil {
			return nil, err
		}
	}

	return am, nil
}

// Solve builds the model and runs the solver.
func (p Arbitrage) Solve(opts ...linprog.Option) (*ArbitrageModel, *linprog.SolveResult, error) {
	am, err := p.Build(opts...)
	if err != nil {
		return nil, nil, err
	}

	res, err := am.Model.Solve()
	if err != nil {
		return nil, nil, err
	}

	return am, res, nil
}
