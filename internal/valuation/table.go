// Package valuation maps loyalty-program names to an estimated market
// value per thousand points (the "milheiro" price) and converts point
// balances into currency amounts.
package valuation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is one named price in a Table. Centavos is the value of 1,000
// points in centavos; amounts stay integral until the lookup boundary.
type Entry struct {
	Name     string
	Centavos int64
}

// Table resolves program names, brands and aliases to a milheiro price.
// A Table is immutable after construction and safe for concurrent use.
type Table struct {
	entries  []Entry
	fallback int64
}

// NewTable builds a Table from ordered entries and a fallback price in
// centavos for names that resolve to nothing.
func NewTable(entries []Entry, fallbackCentavos int64) *Table {
	return &Table{entries: append([]Entry(nil), entries...), fallback: fallbackCentavos}
}

// DefaultTable holds the reference milheiro prices. Entries are ordered
// most-specific-first because substring resolution returns the first
// hit in table order.
func DefaultTable() *Table {
	return NewTable([]Entry{
		{"LATAM Pass", 3000},
		{"LATAM", 3000},
		{"Gol Smiles", 3500},
		{"Smiles", 3500},
		{"GOL", 3500},
		{"TudoAzul", 2600},
		{"Azul Fidelidade", 2600},
		{"Azul", 2600},
		{"AAdvantage", 3200},
		{"American Airlines", 3200},
		{"Livelo", 2800},
		{"Esfera", 2500},
	}, 3000)
}

var cem = decimal.NewFromInt(100)

// Lookup returns the value of 1,000 points for the given program name.
// Resolution order: exact match, case-insensitive match, then first
// substring hit in table order (either the input contains the entry
// name or vice versa). Unknown names resolve to the fallback price;
// Lookup never fails, so an unmapped program never blocks data entry.
func (t *Table) Lookup(programName string) decimal.Decimal {
	return decimal.NewFromInt(t.lookupCentavos(programName)).Div(cem)
}

func (t *Table) lookupCentavos(name string) int64 {
	for _, e := range t.entries {
		if e.Name == name {
			return e.Centavos
		}
	}
	lower := strings.ToLower(name)
	for _, e := range t.entries {
		if strings.ToLower(e.Name) == lower {
			return e.Centavos
		}
	}
	for _, e := range t.entries {
		k := strings.ToLower(e.Name)
		if strings.Contains(lower, k) || strings.Contains(k, lower) {
			return e.Centavos
		}
	}
	return t.fallback
}
