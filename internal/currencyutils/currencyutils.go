// Package currencyutils provides the monetary parsing and decimal helpers every
// commission formula is built on.
package currencyutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"fjacquet/commission-calc/internal/calcerror"

	"github.com/shopspring/decimal"
)

// Bounds of a currency amount. Anything larger is rejected before rounding,
// which would otherwise expand the exponent into a full-length integer.
const (
	MaxExponent = 18
	MaxDigits   = 30
)

// ErrOutOfRange is wrapped by ParseAmount for literals past the currency bounds.
var ErrOutOfRange = errors.New("amount out of range")

var (
	hundred = decimal.NewFromInt(100)

	// anything a currency mask can put around the digits
	nonNumeric = regexp.MustCompile(`[^0-9.,'\-]`)

	// 1.234.567 with no decimal part
	dottedThousands = regexp.MustCompile(`^-?[1-9]\d{0,2}(\.\d{3})+$`)

	// abbreviated currency marks such as "Bs." or "Sr."
	abbreviation = regexp.MustCompile(`\p{L}+\.`)

	// 1e5, -2.5E-3
	scientific = regexp.MustCompile(`^-?\d+(\.\d+)?[eE][+-]?\d+$`)
)

// Decimaler is implemented by values that already carry a normalized amount.
type Decimaler interface {
	Decimal() decimal.Decimal
}

// Parse converts a raw form value into a decimal amount.
// It accepts strings with currency symbols and locale separators, the numeric
// kinds, decimal values and json.Number. Missing, empty, non-numeric and
// non-finite input yields zero, as does any amount outside InRange; Parse
// never fails.
func Parse(raw interface{}) decimal.Decimal {
	d := parse(raw)
	if !InRange(d) {
		return decimal.Zero
	}
	return d
}

func parse(raw interface{}) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case string:
		d, err := ParseAmount(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	case Decimaler:
		return v.Decimal()
	case json.Number:
		return parse(string(v))
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		return decimal.Zero
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// InRange reports whether d is within the exponent and digit bounds of a
// currency amount.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxExponent || exp < -MaxExponent {
		return false
	}
	return d.NumDigits() <= MaxDigits
}

// NewFromLiteral parses a plain decimal literal such as a JSON or YAML number,
// rejecting values outside InRange.
func NewFromLiteral(literal string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, err
	}
	if !InRange(d) {
		return decimal.Zero, ErrOutOfRange
	}
	return d, nil
}

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles formats like "1,234.56", "1.234,56", "1'234.56", "$ 1.234.567" and
// scientific notation such as "1e5". It returns an error when the cleaned
// string is still not a number or is outside InRange.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(amountStr)
	if trimmed == "" {
		return decimal.Zero, nil
	}

	standardized := trimmed
	if !scientific.MatchString(trimmed) {
		standardized = StandardizeAmount(amountStr)
	}

	amount, err := NewFromLiteral(standardized)
	if err != nil {
		return decimal.Zero, &calcerror.InputError{
			Source: "currencyutils",
			Field:  "amount",
			Value:  amountStr,
			Err:    err,
		}
	}

	return amount, nil
}

// StandardizeAmount converts masked currency text to a string decimal.NewFromString accepts.
// A lone dot before exactly three digits is a thousands separator when the text
// carries a mask ("Bs 1.500" is 1500, like "Bs 1,500"); bare "1.500" stays 1.5.
func StandardizeAmount(amountStr string) string {
	masked := nonNumeric.MatchString(strings.TrimSpace(amountStr))
	amountStr = abbreviation.ReplaceAllString(amountStr, "")
	amountStr = nonNumeric.ReplaceAllString(amountStr, "")

	// Apostrophes are only ever thousands separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		// the right-most separator is the decimal one
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasDot && dottedThousands.MatchString(amountStr) && (masked || strings.Count(amountStr, ".") > 1):
		amountStr = strings.ReplaceAll(amountStr, ".", "")
	}

	return amountStr
}

// FormatAmount formats an amount with two decimal places and an optional currency.
// Returns strings like "$1234.56", "€1234.56" or "VES 1234.56".
func FormatAmount(amount decimal.Decimal, currency string) string {
	formattedAmount := amount.StringFixed(2)

	if currency != "" {
		switch strings.ToUpper(currency) {
		case "USD":
			return "$" + formattedAmount
		case "EUR":
			return "€" + formattedAmount
		case "GBP":
			return "£" + formattedAmount
		default:
			return fmt.Sprintf("%s %s", currency, formattedAmount)
		}
	}

	return formattedAmount
}

// Round rounds an amount to cents.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Percent returns base * pct / 100 without rounding.
// e.g., Percent(1000, 45) returns 450
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}
