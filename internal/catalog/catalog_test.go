package catalog

import (
	"errors"
	"testing"

	"fjacquet/commission-calc/internal/calcerror"
	"fjacquet/commission-calc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return New(
		[]Service{
			{ID: 6, Title: "Legal advice", CommissionPercentage: models.AmountFromInt(20)},
			{ID: 1, Title: "Consulting", CommissionPercentage: models.AmountFromInt(30)},
			{ID: 11, Title: "Sale", CommissionPercentage: models.AmountFromInt(0)},
		},
		[]Advisor{
			{ID: 2, Name: "Ana", Metadata: AdvisorMetadata{AdviserLevelTitle: "Senior", AdviserLevelPercentage: models.AmountFromInt(15)}},
			{ID: 1, Name: "Luis", Metadata: AdvisorMetadata{AdviserLevelTitle: "Junior", AdviserLevelPercentage: models.AmountFromInt(5)}},
		},
	)
}

func TestCatalog_Lookups(t *testing.T) {
	c := testCatalog()

	s, err := c.Service(6)
	require.NoError(t, err)
	assert.Equal(t, "Legal advice", s.Title)
	assert.Equal(t, models.ServiceLegal, s.Class())

	a, err := c.Advisor(2)
	require.NoError(t, err)
	assert.Equal(t, "Ana", a.Name)

	_, err = c.Service(99)
	var catErr *calcerror.CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "service", catErr.Kind)
	assert.Equal(t, 99, catErr.ID)

	_, err = c.Advisor(99)
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "advisor", catErr.Kind)
}

func TestCatalog_ListingsAreSorted(t *testing.T) {
	c := testCatalog()

	var ids []int
	for _, s := range c.Services() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{1, 6, 11}, ids)
	assert.Equal(t, 1, c.Advisors()[0].ID)
	assert.Equal(t, 5, c.Len())
}

func TestCatalog_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		ctx           models.TransactionContext
		wantService   string
		wantLevel     string
		wantErrorKind string
	}{
		{
			name:        "static service takes catalog rate",
			ctx:         models.TransactionContext{ServiceID: 6, AdvisorID: 2},
			wantService: "20.00",
			wantLevel:   "15.00",
		},
		{
			name:        "real estate takes advisor level",
			ctx:         models.TransactionContext{ServiceID: 11, AdvisorID: 1},
			wantService: "5.00",
			wantLevel:   "5.00",
		},
		{
			name: "explicit values are kept",
			ctx: models.TransactionContext{
				ServiceID:              6,
				AdvisorID:              2,
				ServicePercentage:      models.AmountFromInt(33),
				AdvisorLevelPercentage: models.AmountFromInt(7),
			},
			wantService: "33.00",
			wantLevel:   "7.00",
		},
		{
			name:        "no advisor leaves level empty",
			ctx:         models.TransactionContext{ServiceID: 1},
			wantService: "30.00",
			wantLevel:   "",
		},
		{
			name:          "unknown advisor",
			ctx:           models.TransactionContext{ServiceID: 1, AdvisorID: 42},
			wantErrorKind: "advisor",
		},
		{
			name:          "unknown service",
			ctx:           models.TransactionContext{ServiceID: 3},
			wantErrorKind: "service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.ctx
			err := testCatalog().Resolve(&ctx)

			if tt.wantErrorKind != "" {
				var catErr *calcerror.CatalogError
				require.True(t, errors.As(err, &catErr))
				assert.Equal(t, tt.wantErrorKind, catErr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantService, ctx.ServicePercentage.String())
			if tt.wantLevel == "" {
				assert.True(t, ctx.AdvisorLevelPercentage.IsEmpty())
			} else {
				assert.Equal(t, tt.wantLevel, ctx.AdvisorLevelPercentage.String())
			}
		})
	}
}
