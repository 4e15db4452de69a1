package valuation

import "github.com/shopspring/decimal"

var milheiro = decimal.NewFromInt(1000)

// Estimate converts a points balance into an estimated currency amount:
// points / 1000 × milheiro price. Pure and unrounded; rounding to two
// places happens only at presentation time (FormatBRL).
func (t *Table) Estimate(points int64, programName string) decimal.Decimal {
	return decimal.NewFromInt(points).Div(milheiro).Mul(t.Lookup(programName))
}
