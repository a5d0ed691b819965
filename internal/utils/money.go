package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney keeps consistent decimal formatting for cost fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// ParseCost parses "85", "85.00", "$1,250.50" into a float amount.
// ok is false for a blank or missing-value cell; err is set when the cell
// is not a finite number.
func ParseCost(s string) (amount float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if IsMissingValue(s) {
		return 0, false, nil
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, fmt.Errorf("invalid cost amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("invalid cost amount %q", s)
	}
	if neg {
		v = -v
	}
	return v, true, nil
}
