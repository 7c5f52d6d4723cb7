package validation_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/commission-calc/internal/calcerror"
	"fjacquet/commission-calc/internal/models"
	"fjacquet/commission-calc/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		name       string
		ctx        models.TransactionContext
		wantFields []string
	}{
		{
			name: "valid context",
			ctx: models.TransactionContext{
				ServicePercentage:       models.AmountFromInt(20),
				AdvisorLevelPercentage:  models.Text("15,5"),
				PropertyOwnerPercentage: models.AmountFromInt(100),
				Deductibles: []models.DeductibleItem{{
					Title:             "Notary",
					Amount:            models.AmountFromInt(10),
					AdvisorPercentage: models.AmountFromInt(80),
					CompanyPercentage: models.AmountFromInt(80),
				}},
			},
		},
		{
			name: "blank percentages are allowed",
			ctx:  models.TransactionContext{},
		},
		{
			name: "out of range percentages",
			ctx: models.TransactionContext{
				ServicePercentage:       models.AmountFromInt(101),
				AdvisorLevelPercentage:  models.AmountFromInt(-1),
				PropertyOwnerPercentage: models.AmountFromString("100.01"),
			},
			wantFields: []string{"servicePercentage", "advisorLevelPercentage", "propertyOwnerPercentage"},
		},
		{
			name:       "non numeric percentage",
			ctx:        models.TransactionContext{ServicePercentage: models.Text("abc")},
			wantFields: []string{"servicePercentage"},
		},
		{
			name: "amounts past the currency bounds",
			ctx: models.TransactionContext{
				ServicePercentage: models.Text("1e20000000"),
				TransactionAmount: models.Text("1e20000000"),
				DeductibleAmount:  models.Text("n/a"),
				MaterialFees:      models.AmountFromString("1e-20000000"),
				Deductibles:       []models.DeductibleItem{{Title: "Tax", Amount: models.Text("9e99")}},
			},
			wantFields: []string{"servicePercentage", "transactionAmount", "materialFees", "deductibles[0].amount"},
		},
		{
			name: "scientific percentage",
			ctx:  models.TransactionContext{ServicePercentage: models.Text("1e1")},
		},
		{
			name: "deductible problems",
			ctx: models.TransactionContext{
				Deductibles: []models.DeductibleItem{
					{Title: "ok", AdvisorPercentage: models.AmountFromInt(50)},
					{Title: "  ", CompanyPercentage: models.AmountFromInt(150)},
				},
			},
			wantFields: []string{"deductibles[1].title", "deductibles[1].companyPercentage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateContext(tt.ctx)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs calcerror.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			var fields []string
			for _, v := range verrs {
				fields = append(fields, v.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestClampPercentage(t *testing.T) {
	tests := []struct{ in, want string }{
		{"-5", "0"},
		{"0", "0"},
		{"42.5", "42.5"},
		{"100", "100"},
		{"250", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := validation.ClampPercentage(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestIsValidExportFormat(t *testing.T) {
	for _, f := range []string{"json", "yaml", "csv"} {
		assert.NoError(t, validation.IsValidExportFormat(f))
	}

	err := validation.IsValidExportFormat("xml")
	var formatErr *calcerror.UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "unsupported format: xml. Supported formats are json, yaml, csv", err.Error())
}

func TestIsValidInputFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "context.yaml")
	require.NoError(t, os.WriteFile(file, []byte("serviceId: 1\n"), 0600))

	assert.NoError(t, validation.IsValidInputFile(file))

	err := validation.IsValidInputFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "path does not exist")

	err = validation.IsValidInputFile(dir)
	assert.ErrorContains(t, err, "is not a regular file")
}
