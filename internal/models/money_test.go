package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCurrency_Decimal(t *testing.T) {
	tests := []struct {
		name     string
		value    Currency
		expected string
		empty    bool
	}{
		{"zero value is empty", Currency{}, "0", true},
		{"blank text is empty", Text("   "), "0", true},
		{"masked text", Text("$ 1.250,50"), "1250.5", false},
		{"garbage text", Text("n/a"), "0", false},
		{"amount", AmountFromInt(300), "300", false},
		{"literal string", AmountFromString("10.25"), "10.25", false},
		{"invalid literal degrades to text", AmountFromString("ten"), "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(tt.value.Decimal()),
				"expected %s, got %s", tt.expected, tt.value.Decimal())
			assert.Equal(t, tt.empty, tt.value.IsEmpty())
		})
	}
}

func TestCurrency_JSON(t *testing.T) {
	var holder struct {
		A Currency `json:"a"`
		B Currency `json:"b"`
		C Currency `json:"c"`
		D Currency `json:"d"`
	}

	err := json.Unmarshal([]byte(`{"a":"1.000,00","b":250.75,"c":null,"d":true}`), &holder)
	require.NoError(t, err)

	assert.True(t, holder.A.IsText())
	assert.Equal(t, "1000.00", holder.A.String())
	assert.False(t, holder.B.IsText())
	assert.Equal(t, "250.75", holder.B.String())
	assert.True(t, holder.C.IsEmpty())
	assert.Equal(t, "0.00", holder.D.String())

	out, err := json.Marshal(holder)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"1.000,00","b":250.75,"c":null,"d":"true"}`, string(out))
}

func TestCurrency_YAML(t *testing.T) {
	input := `
amount: 1500
rate: 12.5
masked: "$ 2,000.00"
missing: ~
`
	var holder struct {
		Amount  Currency `yaml:"amount"`
		Rate    Currency `yaml:"rate"`
		Masked  Currency `yaml:"masked"`
		Missing Currency `yaml:"missing"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(input), &holder))

	assert.Equal(t, "1500.00", holder.Amount.String())
	assert.Equal(t, "12.50", holder.Rate.String())
	assert.True(t, holder.Masked.IsText())
	assert.Equal(t, "2000.00", holder.Masked.String())
	assert.True(t, holder.Missing.IsEmpty())

	out, err := yaml.Marshal(holder)
	require.NoError(t, err)
	assert.Contains(t, string(out), "amount: 1500\n")
	assert.Contains(t, string(out), "rate: 12.5\n")
	assert.Contains(t, string(out), "2,000.00")
}

func TestCurrency_HugeExponentDegradesToText(t *testing.T) {
	var fromJSON struct {
		A Currency `json:"a"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1e20000000}`), &fromJSON))
	assert.True(t, fromJSON.A.IsText())
	assert.True(t, fromJSON.A.Decimal().IsZero())

	var fromYAML struct {
		A Currency `yaml:"a"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 1e20000000\n"), &fromYAML))
	assert.True(t, fromYAML.A.IsText())
	assert.True(t, fromYAML.A.Decimal().IsZero())

	assert.True(t, AmountFromString("1e-20000000").IsText())
	assert.True(t, Amount(decimal.New(1, 20000000)).Decimal().IsZero())
	assert.Equal(t, "100000.00", AmountFromString("1e5").String())
}

func TestCurrency_YAMLRejectsNonScalar(t *testing.T) {
	var holder struct {
		Amount Currency `yaml:"amount"`
	}
	err := yaml.Unmarshal([]byte("amount: [1, 2]"), &holder)
	assert.Error(t, err)
}

func TestCurrency_CSV(t *testing.T) {
	var c Currency
	require.NoError(t, c.UnmarshalCSV("1'500.40"))
	assert.Equal(t, "1500.40", c.String())

	raw, err := c.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "1'500.40", raw)

	raw, err = Currency{}.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", raw)
}

func TestCurrency_Equal(t *testing.T) {
	assert.True(t, Text("100,00").Equal(AmountFromInt(100)))
	assert.False(t, Text("100,01").Equal(AmountFromInt(100)))
	assert.True(t, Currency{}.Equal(Text("oops")))
}
