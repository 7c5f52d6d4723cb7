package commission_test

import (
	"testing"

	"fjacquet/commission-calc/pkg/commission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	flat := commission.Calculate(commission.TransactionContext{
		ServiceID:         6,
		TransactionAmount: commission.Text("1.000,00"),
		ServicePercentage: commission.Text("20"),
	})

	assert.Equal(t, "200.00", flat.AdvisorFees)
	assert.Equal(t, "450.00", flat.LawyerFees)
	assert.Equal(t, "350.00", flat.CompanyFees)
}

func TestCalculate_RentalUsesOwnerDefault(t *testing.T) {
	ctx := commission.TransactionContext{
		ServiceID:              10,
		RealEstateCommission:   commission.Text("1000"),
		AdvisorLevelPercentage: commission.Text("20"),
		RentalCommissionMode:   commission.RentalDouble,
	}

	flat := commission.Calculate(ctx)
	assert.Equal(t, "1000.00", flat.PropertyTipAmount)
	assert.Equal(t, "400.00", flat.ClientTipAmount)
	assert.Equal(t, "600.00", flat.DoubleTipAmount)
	assert.True(t, ctx.PropertyOwnerPercentage.IsEmpty())
}

func TestParse(t *testing.T) {
	assert.Equal(t, "1234.56", commission.Parse("1.234,56").String())
	assert.True(t, commission.Parse(nil).IsZero())
}

func TestSession(t *testing.T) {
	s := commission.NewSession(commission.TransactionContext{
		ServiceID:              11,
		TransactionAmount:      commission.Text("10000"),
		AdvisorLevelPercentage: commission.Text("10"),
		Tip:                    commission.TipDouble,
	})
	assert.Equal(t, "2000.00", s.Result().Flatten().DoubleTipAmount)

	var seen int
	s.OnChange(func(commission.CalculationResult) { seen++ })
	result, err := s.AddDeductible(commission.DeductibleItem{Title: "Notary", Amount: commission.Text("1000")})
	require.NoError(t, err)
	assert.Equal(t, "1800.00", result.Flatten().DoubleTipAmount)
	assert.Equal(t, 1, seen)
}
