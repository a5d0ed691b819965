package models

import (
	"strings"

	"pnovbridge/internal/domain"
)

// Missort is one still-missing package from the PNOV export.
type Missort struct {
	TrackingID string
	DSPName    string
	DAName     string
	Route      string
	Cost       float64
	// HasCost is false when the cost cell was blank or the column is absent.
	HasCost bool
}

// Table is an uploaded sheet: the header as read and its rows in file order.
type Table struct {
	Columns []string
	Rows    []Missort
}

func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the required columns not present in the header,
// in the order they are listed in domain.RequiredColumns.
func (t Table) MissingColumns() []string {
	var out []string
	for _, c := range domain.RequiredColumns {
		if !t.HasColumn(c) {
			out = append(out, c)
		}
	}
	return out
}

// NormalizeDSP maps a blank carrier to FLEX.
func NormalizeDSP(name string) string {
	if strings.TrimSpace(name) == "" {
		return domain.CarrierFlex
	}
	return name
}

// Normalized returns a copy of the table with every DSPName normalized.
// The receiver is left untouched.
func (t Table) Normalized() Table {
	rows := make([]Missort, len(t.Rows))
	for i, r := range t.Rows {
		r.DSPName = NormalizeDSP(r.DSPName)
		rows[i] = r
	}
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	return Table{Columns: cols, Rows: rows}
}
