package utils

import (
	"strings"
)

// TrimOrEmpty strips surrounding whitespace from a cell or header.
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// missingValues are the spreadsheet placeholders read as an empty cell.
// Matching is exact and case-sensitive.
var missingValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissingValue reports whether a cell holds no value: blank, whitespace
// or a placeholder such as "N/A" or "NaN".
func IsMissingValue(s string) bool {
	_, ok := missingValues[strings.TrimSpace(s)]
	return ok
}

// SafeFilenamePart replaces characters that are awkward in a
// Content-Disposition filename.
func SafeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

// SplitList splits a comma separated setting into trimmed, non-empty parts.
func SplitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
