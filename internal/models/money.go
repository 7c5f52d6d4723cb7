package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/commission-calc/internal/currencyutils"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type currencyKind uint8

const (
	currencyEmpty currencyKind = iota
	currencyText
	currencyAmount
)

// Currency is a form value that is either raw text typed into a currency-masked
// input or an already numeric amount. It is normalized once, through
// currencyutils.Parse, when a calculation starts.
type Currency struct {
	kind   currencyKind
	raw    string
	amount decimal.Decimal
}

// Text wraps raw user input such as "$ 1.250,00".
func Text(raw string) Currency {
	if strings.TrimSpace(raw) == "" {
		return Currency{}
	}
	return Currency{kind: currencyText, raw: raw}
}

// Amount wraps a numeric value.
func Amount(amount decimal.Decimal) Currency {
	return Currency{kind: currencyAmount, amount: amount}
}

// AmountFromInt wraps an integer value.
func AmountFromInt(amount int64) Currency {
	return Amount(decimal.NewFromInt(amount))
}

// AmountFromString wraps a literal decimal such as "1000.50".
// Invalid or out-of-range literals are kept as raw text so they parse to zero
// like any other bad input.
func AmountFromString(amount string) Currency {
	d, err := currencyutils.NewFromLiteral(amount)
	if err != nil {
		return Text(amount)
	}
	return Amount(d)
}

// IsEmpty reports whether the field was never filled in.
func (c Currency) IsEmpty() bool {
	return c.kind == currencyEmpty
}

// IsText reports whether the value still holds unparsed input.
func (c Currency) IsText() bool {
	return c.kind == currencyText
}

// Raw returns the original text, or the amount formatted as text.
func (c Currency) Raw() string {
	switch c.kind {
	case currencyText:
		return c.raw
	case currencyAmount:
		return c.amount.String()
	default:
		return ""
	}
}

// Decimal returns the normalized amount; missing, unparseable or out-of-range
// input is zero.
func (c Currency) Decimal() decimal.Decimal {
	switch c.kind {
	case currencyAmount:
		return currencyutils.Parse(c.amount)
	case currencyText:
		return currencyutils.Parse(c.raw)
	default:
		return decimal.Zero
	}
}

// String returns the normalized amount with two decimal places.
func (c Currency) String() string {
	return c.Decimal().StringFixed(2)
}

// Equal compares normalized amounts.
func (c Currency) Equal(other Currency) bool {
	return c.Decimal().Equal(other.Decimal())
}

// MarshalJSON keeps text as a JSON string and amounts as JSON numbers.
func (c Currency) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case currencyText:
		return json.Marshal(c.raw)
	case currencyAmount:
		return []byte(c.amount.String()), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON string, number or null.
func (c *Currency) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*c = Currency{}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid currency value %s: %w", trimmed, err)
		}
		*c = Text(s)
		return nil
	}

	d, err := currencyutils.NewFromLiteral(trimmed)
	if err != nil {
		// booleans, huge exponents and other non-numeric literals degrade to raw text
		*c = Text(trimmed)
		return nil
	}
	*c = Amount(d)
	return nil
}

// MarshalYAML keeps the same text/amount distinction as JSON.
func (c Currency) MarshalYAML() (interface{}, error) {
	switch c.kind {
	case currencyText:
		return c.raw, nil
	case currencyAmount:
		value := c.amount.String()
		tag := "!!int"
		if strings.Contains(value, ".") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML reads a scalar; numeric tags become amounts, everything else text.
func (c *Currency) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("currency must be a scalar, got yaml kind %d at line %d", value.Kind, value.Line)
	}

	switch value.Tag {
	case "!!null":
		*c = Currency{}
	case "!!int", "!!float":
		d, err := currencyutils.NewFromLiteral(value.Value)
		if err != nil {
			*c = Text(value.Value)
			return nil
		}
		*c = Amount(d)
	default:
		*c = Text(value.Value)
	}
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (c Currency) MarshalCSV() (string, error) {
	return c.Raw(), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (c *Currency) UnmarshalCSV(value string) error {
	*c = Text(value)
	return nil
}
