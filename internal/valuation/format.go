package valuation

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount the way the dashboard shows it: grouped
// pt-BR digits with two decimal places, e.g. "R$ 1.234,56". Rounding
// happens in decimal; the float boundary is never crossed.
func FormatBRL(v decimal.Decimal) string {
	centavos := v.Round(2).Mul(cem).IntPart()
	return ptBR.Sprintf("R$ %d,%02d", centavos/100, centavos%100)
}

// FormatPoints renders a points balance with pt-BR grouping ("10.000").
func FormatPoints(points int64) string {
	return ptBR.Sprintf("%d", points)
}
