// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and rendering cents as grouped currency text.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// Separators are resolved by NormalizeDecimal, so both 12,34 and $1,250 parse.
// It performs half-up rounding on the third decimal place. A leading currency
// sign is ignored. Zero is allowed; negative values are not.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("$1,250") -> 125000, nil
//	ParseDecimalToCents("12,5") -> 1250, nil
//	ParseDecimalToCents("12.345") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = NormalizeDecimal(s)
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv >= maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// NormalizeDecimal rewrites commas so the result uses a dot as the only
// decimal separator. A single comma followed by one or two digits, with no
// dot present, is a decimal comma (12,5). Every other comma groups thousands
// and is dropped ($1,250 and 1,250.00).
func NormalizeDecimal(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		i := strings.IndexByte(s, ',')
		if n := len(s) - i - 1; n == 1 || n == 2 {
			return s[:i] + "." + s[i+1:]
		}
	}
	return strings.ReplaceAll(s, ",", "")
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// String renders the amount as grouped dollars, e.g. "$1,250.00". Dollars and
// cents are split in integer arithmetic so every int64 renders exactly.
func (m Money) String() string {
	sign := ""
	abs := uint64(m.Cents)
	if m.Cents < 0 {
		sign = "-"
		abs = -abs
	}
	return fmt.Sprintf("%s$%s.%02d", sign, moneyPrinter.Sprint(number.Decimal(abs/100)), abs%100)
}
