package models

import "github.com/shopspring/decimal"

// Breakdown is the class-specific part of a real-estate allocation.
// Non-real-estate results carry a nil Breakdown.
type Breakdown interface {
	// legacyTips maps the breakdown onto the flat propertyTip/clientTip/doubleTip fields.
	legacyTips() (property, client, double decimal.Decimal)
}

// TipBreakdown is produced by SALE and BUSINESS_TRANSFER.
// In double-tip mode both sides receive the full advisor-level share.
type TipBreakdown struct {
	Mode        TipMode         `json:"mode" yaml:"mode"`
	Base        decimal.Decimal `json:"base" yaml:"base"`
	ClientTip   decimal.Decimal `json:"clientTip" yaml:"clientTip"`
	PropertyTip decimal.Decimal `json:"propertyTip" yaml:"propertyTip"`
	DoubleTip   decimal.Decimal `json:"doubleTip" yaml:"doubleTip"`
}

func (b TipBreakdown) legacyTips() (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	return b.PropertyTip, b.ClientTip, b.DoubleTip
}

// Selected returns the advisor's tip total for the chosen mode.
func (b TipBreakdown) Selected() decimal.Decimal {
	switch b.Mode {
	case TipClient:
		return b.ClientTip
	case TipProperty:
		return b.PropertyTip
	case TipDouble:
		return b.DoubleTip
	default:
		return decimal.Zero
	}
}

// RentalBreakdown splits a rental commission between owner, advisor and company.
type RentalBreakdown struct {
	Mode         RentalCommissionMode `json:"mode" yaml:"mode"`
	Gross        decimal.Decimal      `json:"gross" yaml:"gross"`
	AdjustedBase decimal.Decimal      `json:"adjustedBase" yaml:"adjustedBase"`
	OwnerShare   decimal.Decimal      `json:"ownerShare" yaml:"ownerShare"`
	AdvisorShare decimal.Decimal      `json:"advisorShare" yaml:"advisorShare"`
	CompanyShare decimal.Decimal      `json:"companyShare" yaml:"companyShare"`
}

func (b RentalBreakdown) legacyTips() (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	return b.OwnerShare, b.AdvisorShare, b.CompanyShare
}

// DailyStayBreakdown splits a short stay: 70% to the owner, 30% to the advisor
// base, of which the advisor keeps their level percentage.
type DailyStayBreakdown struct {
	TotalStay    decimal.Decimal `json:"totalStay" yaml:"totalStay"`
	BaseAmount   decimal.Decimal `json:"baseAmount" yaml:"baseAmount"`
	OwnerShare   decimal.Decimal `json:"ownerShare" yaml:"ownerShare"`
	AdvisorBase  decimal.Decimal `json:"advisorBase" yaml:"advisorBase"`
	AdvisorShare decimal.Decimal `json:"advisorShare" yaml:"advisorShare"`
	CompanyShare decimal.Decimal `json:"companyShare" yaml:"companyShare"`
}

func (b DailyStayBreakdown) legacyTips() (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	return b.OwnerShare, b.AdvisorShare, b.CompanyShare
}

// SpecialistFee is the single third-party fee a service class may produce.
type SpecialistFee struct {
	Kind   SpecialistKind  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// CalculationResult is the output of one allocation. Every amount is rounded to cents.
type CalculationResult struct {
	Class            ServiceClass    `json:"serviceClass" yaml:"serviceClass"`
	NetAmount        decimal.Decimal `json:"netAmount" yaml:"netAmount"`
	TotalDeductibles decimal.Decimal `json:"totalDeductibles" yaml:"totalDeductibles"`

	AdvisorFees decimal.Decimal `json:"advisorFees" yaml:"advisorFees"`
	CompanyFees decimal.Decimal `json:"companyFees" yaml:"companyFees"`
	Specialist  SpecialistFee   `json:"specialist" yaml:"specialist"`
	Breakdown   Breakdown       `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`

	VisionAdvisorSubtotalFees decimal.Decimal `json:"visionAdvisorSubtotalFees" yaml:"visionAdvisorSubtotalFees"`
	VisionAdvisorTotalFees    decimal.Decimal `json:"visionAdvisorTotalFees" yaml:"visionAdvisorTotalFees"`
	CompanyFeesFinal          decimal.Decimal `json:"companyFeesFinal" yaml:"companyFeesFinal"`
}

// SpecialistAmount returns the fee for kind, or zero when the class pays another specialist.
func (r CalculationResult) SpecialistAmount(kind SpecialistKind) decimal.Decimal {
	if kind == SpecialistNone || r.Specialist.Kind != kind {
		return decimal.Zero
	}
	return r.Specialist.Amount
}

// FlatResult is the legacy shape the form binds to: one string field per output,
// with tip fields reused for rental and daily-stay role shares.
type FlatResult struct {
	AdvisorFees               string `json:"advisorFees" yaml:"advisorFees" csv:"advisorFees"`
	CompanyFees               string `json:"companyFees" yaml:"companyFees" csv:"companyFees"`
	LawyerFees                string `json:"lawyerFees" yaml:"lawyerFees" csv:"lawyerFees"`
	AccountantFees            string `json:"accountantFees" yaml:"accountantFees" csv:"accountantFees"`
	MaterialFees              string `json:"materialFees" yaml:"materialFees" csv:"materialFees"`
	TechnicalFees             string `json:"technicalFees" yaml:"technicalFees" csv:"technicalFees"`
	CleaningStaffFees         string `json:"cleaningStaffFees" yaml:"cleaningStaffFees" csv:"cleaningStaffFees"`
	PropertyTipAmount         string `json:"propertyTipAmount" yaml:"propertyTipAmount" csv:"propertyTipAmount"`
	ClientTipAmount           string `json:"clientTipAmount" yaml:"clientTipAmount" csv:"clientTipAmount"`
	DoubleTipAmount           string `json:"doubleTipAmount" yaml:"doubleTipAmount" csv:"doubleTipAmount"`
	VisionAdvisorSubtotalFees string `json:"visionAdvisorSubtotalFees" yaml:"visionAdvisorSubtotalFees" csv:"visionAdvisorSubtotalFees"`
	VisionAdvisorTotalFees    string `json:"visionAdvisorTotalFees" yaml:"visionAdvisorTotalFees" csv:"visionAdvisorTotalFees"`
	CompanyFeesFinal          string `json:"companyFeesFinal" yaml:"companyFeesFinal" csv:"companyFeesFinal"`
}

// Flatten converts the result to the legacy flat shape.
func (r CalculationResult) Flatten() FlatResult {
	property, client, double := decimal.Zero, decimal.Zero, decimal.Zero
	if r.Breakdown != nil {
		property, client, double = r.Breakdown.legacyTips()
	}

	return FlatResult{
		AdvisorFees:               money(r.AdvisorFees),
		CompanyFees:               money(r.CompanyFees),
		LawyerFees:                money(r.SpecialistAmount(SpecialistLawyer)),
		AccountantFees:            money(r.SpecialistAmount(SpecialistAccountant)),
		MaterialFees:              money(r.SpecialistAmount(SpecialistMaterial)),
		TechnicalFees:             money(r.SpecialistAmount(SpecialistTechnical)),
		CleaningStaffFees:         money(r.SpecialistAmount(SpecialistCleaningStaff)),
		PropertyTipAmount:         money(property),
		ClientTipAmount:           money(client),
		DoubleTipAmount:           money(double),
		VisionAdvisorSubtotalFees: money(r.VisionAdvisorSubtotalFees),
		VisionAdvisorTotalFees:    money(r.VisionAdvisorTotalFees),
		CompanyFeesFinal:          money(r.CompanyFeesFinal),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
