// Package engine derives advisor, company, specialist and real-estate role fees
// from a transaction context.
//
// Allocate is pure: it reads only its argument, keeps no state and never fails.
// Missing or unparseable amounts count as zero, and negative results are passed
// through unclamped so the form is never blocked.
package engine

import (
	"fjacquet/commission-calc/internal/classifier"
	"fjacquet/commission-calc/internal/currencyutils"
	"fjacquet/commission-calc/internal/ledger"
	"fjacquet/commission-calc/internal/models"

	"github.com/shopspring/decimal"
)

var (
	lawyerRate       = decimal.RequireFromString("0.45")
	accountantRate   = decimal.RequireFromString("0.50")
	stayOwnerRate    = decimal.RequireFromString("0.70")
	stayAdvisorRate  = decimal.RequireFromString("0.30")
	rentalDoubleRate = decimal.NewFromInt(2)
)

// inputs is the context normalized once through the monetary parser.
type inputs struct {
	transactionAmount       decimal.Decimal
	deductibleAmount        decimal.Decimal
	servicePercentage       decimal.Decimal
	advisorLevelPercentage  decimal.Decimal
	realEstateCommission    decimal.Decimal
	propertyOwnerPercentage decimal.Decimal
	dailyRate               decimal.Decimal
	numberOfDays            decimal.Decimal
	guaranteeAmount         decimal.Decimal
	administrativeFee       decimal.Decimal
	cleaningStaffFeesAmount decimal.Decimal
	materialFees            decimal.Decimal
	technicalFees           decimal.Decimal
	cleaningStaffFees       decimal.Decimal

	tip        models.TipMode
	rentalMode models.RentalCommissionMode

	// derived once, shared by every pass
	netAmount        decimal.Decimal
	totalDeductibles decimal.Decimal
}

func normalize(ctx models.TransactionContext) inputs {
	in := inputs{
		transactionAmount:       ctx.TransactionAmount.Decimal(),
		deductibleAmount:        ctx.DeductibleAmount.Decimal(),
		servicePercentage:       ctx.ServicePercentage.Decimal(),
		advisorLevelPercentage:  ctx.AdvisorLevelPercentage.Decimal(),
		realEstateCommission:    ctx.RealEstateCommission.Decimal(),
		propertyOwnerPercentage: ctx.PropertyOwnerPercentage.Decimal(),
		dailyRate:               ctx.DailyRate.Decimal(),
		numberOfDays:            ctx.NumberOfDays.Decimal(),
		guaranteeAmount:         ctx.GuaranteeAmount.Decimal(),
		administrativeFee:       ctx.AdministrativeFee.Decimal(),
		cleaningStaffFeesAmount: ctx.CleaningStaffFeesAmount.Decimal(),
		materialFees:            ctx.MaterialFees.Decimal(),
		technicalFees:           ctx.TechnicalFees.Decimal(),
		cleaningStaffFees:       ctx.CleaningStaffFees.Decimal(),
		tip:                     ctx.Tip,
		rentalMode:              ctx.RentalCommissionMode,
		totalDeductibles:        ledger.Sum(ctx.Deductibles),
	}
	in.netAmount = in.transactionAmount.Sub(in.deductibleAmount)
	return in
}

// calculation carries one run of the pipeline. Named outputs are stored
// rounded; later passes read those rounded values.
type calculation struct {
	serviceID int
	in        inputs
	class     models.ServiceClass
	result    models.CalculationResult
}

// Pass is one stage of the recalculation pipeline.
type Pass struct {
	Name string
	run  func(*calculation)
}

// Pipeline lists the passes in dependency order: later passes read outputs of
// earlier ones, so the order is fixed.
var Pipeline = []Pass{
	{Name: "classify", run: classify},
	{Name: "basic_fees", run: basicFees},
	{Name: "real_estate", run: realEstateFees},
	{Name: "final_totals", run: finalTotals},
}

// Allocate runs the whole pipeline over a snapshot of ctx.
func Allocate(ctx models.TransactionContext) models.CalculationResult {
	c := &calculation{serviceID: ctx.ServiceID, in: normalize(ctx)}
	for _, pass := range Pipeline {
		pass.run(c)
	}
	return c.result
}

func round(d decimal.Decimal) decimal.Decimal {
	return currencyutils.Round(d)
}

func percent(base, pct decimal.Decimal) decimal.Decimal {
	return currencyutils.Percent(base, pct)
}

func classify(c *calculation) {
	c.class = classifier.Classify(c.serviceID)
	if c.class.IsRealEstate() {
		// real-estate services pay the advisor's level, not a per-service rate
		c.in.servicePercentage = c.in.advisorLevelPercentage
	}

	c.result = models.CalculationResult{
		Class:            c.class,
		NetAmount:        round(c.in.netAmount),
		TotalDeductibles: round(c.in.totalDeductibles),
		Specialist:       models.SpecialistFee{Kind: c.class.Specialist(), Amount: decimal.Zero},
	}
}

func basicFees(c *calculation) {
	net := c.in.netAmount
	r := &c.result

	r.AdvisorFees = round(percent(net, c.in.servicePercentage))

	switch c.class {
	case models.ServiceLegal:
		r.Specialist.Amount = round(net.Mul(lawyerRate))
	case models.ServiceAccounting:
		r.Specialist.Amount = round(net.Mul(accountantRate))
	case models.ServiceRemodeling:
		r.Specialist.Amount = round(c.in.materialFees)
	case models.ServiceTechnical:
		r.Specialist.Amount = round(c.in.technicalFees)
	case models.ServiceCleaning:
		r.Specialist.Amount = round(c.in.cleaningStaffFees)
	}

	r.CompanyFees = round(net.Sub(r.AdvisorFees).Sub(r.Specialist.Amount))
}

func realEstateFees(c *calculation) {
	switch c.class {
	case models.ServiceSale:
		saleFees(c)
	case models.ServiceRental:
		rentalFees(c)
	case models.ServiceDailyStay:
		dailyStayFees(c)
	case models.ServiceBusinessTransfer:
		businessTransferFees(c)
	}
}

// tips splits one advisor-level share of base over the selected side(s).
// Double tip gives the full share to both sides; that is the business rule.
func tips(mode models.TipMode, base, levelPercentage decimal.Decimal) models.TipBreakdown {
	share := round(percent(base, levelPercentage))
	b := models.TipBreakdown{
		Mode:        mode,
		Base:        round(base),
		ClientTip:   decimal.Zero,
		PropertyTip: decimal.Zero,
		DoubleTip:   decimal.Zero,
	}

	switch mode {
	case models.TipClient:
		b.ClientTip = share
	case models.TipProperty:
		b.PropertyTip = share
	case models.TipDouble:
		b.ClientTip = share
		b.PropertyTip = share
		b.DoubleTip = round(b.ClientTip.Add(b.PropertyTip))
	}
	return b
}

func saleFees(c *calculation) {
	base := c.in.transactionAmount.Sub(c.in.deductibleAmount).Sub(c.in.totalDeductibles)
	c.result.Breakdown = tips(c.in.tip, base, c.in.advisorLevelPercentage)
}

func rentalFees(c *calculation) {
	gross := c.in.realEstateCommission
	if c.in.rentalMode == models.RentalDouble {
		gross = gross.Mul(rentalDoubleRate)
	}
	adjusted := gross.Sub(c.in.totalDeductibles)

	owner := round(percent(adjusted, c.in.propertyOwnerPercentage))
	advisor := round(percent(adjusted, c.in.advisorLevelPercentage))
	company := round(adjusted.Sub(owner).Sub(advisor))

	mode := c.in.rentalMode
	if mode != models.RentalDouble {
		mode = models.RentalSingle
	}

	c.result.Breakdown = models.RentalBreakdown{
		Mode:         mode,
		Gross:        round(gross),
		AdjustedBase: round(adjusted),
		OwnerShare:   owner,
		AdvisorShare: advisor,
		CompanyShare: company,
	}
	c.result.AdvisorFees = advisor
	c.result.CompanyFees = company
}

func dailyStayFees(c *calculation) {
	totalStay := c.in.dailyRate.Mul(c.in.numberOfDays)
	base := totalStay.Sub(c.in.guaranteeAmount).Sub(c.in.administrativeFee)

	owner := round(base.Mul(stayOwnerRate))
	advisorBase := round(base.Mul(stayAdvisorRate))
	advisor := round(percent(advisorBase, c.in.advisorLevelPercentage))
	company := round(totalStay.
		Sub(c.in.guaranteeAmount).
		Sub(owner).
		Sub(advisor).
		Sub(c.in.cleaningStaffFeesAmount))

	c.result.Breakdown = models.DailyStayBreakdown{
		TotalStay:    round(totalStay),
		BaseAmount:   round(base),
		OwnerShare:   owner,
		AdvisorBase:  advisorBase,
		AdvisorShare: advisor,
		CompanyShare: company,
	}
	c.result.AdvisorFees = advisor
	c.result.CompanyFees = company
}

func businessTransferFees(c *calculation) {
	baseForCommission := c.in.netAmount.Sub(c.in.totalDeductibles)
	combined := baseForCommission.Add(c.in.realEstateCommission)

	b := tips(c.in.tip, combined, c.in.advisorLevelPercentage)
	c.result.Breakdown = b
	c.result.AdvisorFees = b.Selected()
	c.result.CompanyFees = round(c.in.netAmount.Add(c.in.realEstateCommission).Sub(c.result.AdvisorFees))
}

func finalTotals(c *calculation) {
	r := &c.result

	if !c.class.IsRealEstate() {
		r.VisionAdvisorSubtotalFees = round(percent(c.in.netAmount, c.in.servicePercentage))
		r.VisionAdvisorTotalFees = round(r.VisionAdvisorSubtotalFees.Sub(c.in.totalDeductibles))
		r.CompanyFeesFinal = round(c.in.transactionAmount.
			Sub(c.in.deductibleAmount).
			Sub(r.VisionAdvisorTotalFees).
			Sub(r.Specialist.Amount))
		return
	}

	switch b := r.Breakdown.(type) {
	case models.TipBreakdown:
		if c.class == models.ServiceSale {
			r.VisionAdvisorSubtotalFees = r.AdvisorFees
			r.VisionAdvisorTotalFees = b.Selected()
		} else {
			r.VisionAdvisorSubtotalFees = r.AdvisorFees
			r.VisionAdvisorTotalFees = r.AdvisorFees
		}
	case models.RentalBreakdown:
		r.VisionAdvisorSubtotalFees = b.AdvisorShare
		r.VisionAdvisorTotalFees = b.AdvisorShare
	case models.DailyStayBreakdown:
		r.VisionAdvisorSubtotalFees = b.AdvisorBase
		r.VisionAdvisorTotalFees = b.AdvisorShare
	}
	r.CompanyFeesFinal = r.CompanyFees
}
