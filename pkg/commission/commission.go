// Package commission is the embeddable entry point to the commission engine
// for hosts that do not need configuration, a catalog or export.
package commission

import (
	"fjacquet/commission-calc/internal/currencyutils"
	"fjacquet/commission-calc/internal/engine"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/models"
	"fjacquet/commission-calc/internal/scheduler"

	"github.com/shopspring/decimal"
)

type (
	TransactionContext = models.TransactionContext
	DeductibleItem     = models.DeductibleItem
	Currency           = models.Currency
	CalculationResult  = models.CalculationResult
	FlatResult         = models.FlatResult
	TipMode            = models.TipMode
	Session            = scheduler.Session
)

const (
	TipClient    = models.TipClient
	TipProperty  = models.TipProperty
	TipDouble    = models.TipDouble
	RentalSingle = models.RentalSingle
	RentalDouble = models.RentalDouble
)

// ErrReentrantUpdate is returned by a Session mutated from its own listener.
var ErrReentrantUpdate = scheduler.ErrReentrantUpdate

// Text wraps raw form input such as "$ 1.250,00".
func Text(raw string) Currency { return models.Text(raw) }

// Amount wraps a numeric value.
func Amount(d decimal.Decimal) Currency { return models.Amount(d) }

// Parse reads any form value leniently; unusable input is zero.
func Parse(raw interface{}) decimal.Decimal { return currencyutils.Parse(raw) }

// Calculate applies form defaults to a copy of ctx and returns the flat
// figures the form displays.
func Calculate(ctx TransactionContext) FlatResult {
	return CalculateDetailed(ctx).Flatten()
}

// CalculateDetailed is Calculate with the typed breakdown.
func CalculateDetailed(ctx TransactionContext) CalculationResult {
	c := ctx.Clone()
	c.ApplyDefaults()
	return engine.Allocate(c)
}

// NewSession starts a recalculating session over ctx. It logs nowhere.
func NewSession(ctx TransactionContext) *Session {
	return scheduler.NewSession(ctx, logging.NewMockLogger())
}
