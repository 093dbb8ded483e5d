package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reFourDigitYear = regexp.MustCompile(`\d{4}`)
	numStripper     = strings.NewReplacer(",", "", "，", "", "円", "", "¥", "", "￥", "", "%", "", "％", "", " ", " ")
)

// placeholderTokens are cell values that mean "no entry", not data.
var placeholderTokens = map[string]bool{
	"":    true,
	"-":   true,
	"－":   true,
	"N/A": true,
	"n/a": true,
	"ー":   true,
}

// IsPlaceholder reports whether a cell value carries no information.
func IsPlaceholder(value string) bool {
	return placeholderTokens[strings.TrimSpace(value)]
}

// ParseNumber extracts a numeric value from a cell, stripping thousands
// separators and currency glyphs. Unparseable text yields nil, never an
// error: a malformed figure must not abort assembly of the whole row.
func ParseNumber(value string) *float64 {
	cleaned := strings.TrimSpace(numStripper.Replace(value))
	if cleaned == "" || IsPlaceholder(cleaned) {
		return nil
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return FloatPtr(parsed)
}

// ParseYear extracts a 4-digit Gregorian year from a cell. Era expressions
// are expected to have been normalized to Gregorian form already.
func ParseYear(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" || IsPlaceholder(value) {
		return nil
	}
	match := reFourDigitYear.FindString(value)
	if match == "" {
		return nil
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &year
}
