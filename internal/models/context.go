package models

import "github.com/shopspring/decimal"

// DefaultSplitPercentage is the advisor/company share given to a deductible
// and the property owner share given to a rental when the form leaves them blank.
var DefaultSplitPercentage = decimal.NewFromInt(50)

// DeductibleItem is one named expense subtracted from the commission base.
// The advisor/company split is captured and exported but not used by any formula.
type DeductibleItem struct {
	Title             string   `json:"title" yaml:"title"`
	Amount            Currency `json:"amount" yaml:"amount"`
	AdvisorPercentage Currency `json:"advisorPercentage" yaml:"advisorPercentage"`
	CompanyPercentage Currency `json:"companyPercentage" yaml:"companyPercentage"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// WithDefaults returns a copy with blank split percentages set to 50.
func (d DeductibleItem) WithDefaults() DeductibleItem {
	if d.AdvisorPercentage.IsEmpty() {
		d.AdvisorPercentage = Amount(DefaultSplitPercentage)
	}
	if d.CompanyPercentage.IsEmpty() {
		d.CompanyPercentage = Amount(DefaultSplitPercentage)
	}
	return d
}

// TransactionContext holds every input of one commission calculation as the
// form collects it. Field names follow the form payload.
type TransactionContext struct {
	ServiceID int `json:"serviceId" yaml:"serviceId"`
	AdvisorID int `json:"advisorId,omitempty" yaml:"advisorId,omitempty"`

	TransactionAmount      Currency `json:"transactionAmount" yaml:"transactionAmount"`
	DeductibleAmount       Currency `json:"deductibleAmount" yaml:"deductibleAmount"`
	ServicePercentage      Currency `json:"servicePercentage" yaml:"servicePercentage"`
	AdvisorLevelPercentage Currency `json:"advisorLevelPercentage" yaml:"advisorLevelPercentage"`

	Deductibles []DeductibleItem `json:"deductibles" yaml:"deductibles"`

	// real-estate modifiers
	Tip                     TipMode              `json:"tip,omitempty" yaml:"tip,omitempty"`
	RentalCommissionMode    RentalCommissionMode `json:"rentalCommissionMode,omitempty" yaml:"rentalCommissionMode,omitempty"`
	RealEstateCommission    Currency             `json:"realEstateCommission" yaml:"realEstateCommission"`
	PropertyOwnerPercentage Currency             `json:"propertyOwnerPercentage" yaml:"propertyOwnerPercentage"`

	// daily stay
	DailyRate               Currency `json:"dailyRate" yaml:"dailyRate"`
	NumberOfDays            Currency `json:"numberOfDays" yaml:"numberOfDays"`
	GuaranteeAmount         Currency `json:"guaranteeAmount" yaml:"guaranteeAmount"`
	AdministrativeFee       Currency `json:"administrativeFee" yaml:"administrativeFee"`
	CleaningStaffFeesAmount Currency `json:"cleaningStaffFeesAmount" yaml:"cleaningStaffFeesAmount"`

	// manual specialist fees
	MaterialFees      Currency `json:"materialFees" yaml:"materialFees"`
	TechnicalFees     Currency `json:"technicalFees" yaml:"technicalFees"`
	CleaningStaffFees Currency `json:"cleaningStaffFees" yaml:"cleaningStaffFees"`
}

// ApplyDefaults fills the form defaults: a 50% property owner share and a
// 50/50 split on every deductible left blank.
func (c *TransactionContext) ApplyDefaults() {
	if c.PropertyOwnerPercentage.IsEmpty() {
		c.PropertyOwnerPercentage = Amount(DefaultSplitPercentage)
	}
	for i := range c.Deductibles {
		c.Deductibles[i] = c.Deductibles[i].WithDefaults()
	}
}

// Clone returns a deep copy so a snapshot can be handed to another owner.
func (c TransactionContext) Clone() TransactionContext {
	if c.Deductibles != nil {
		items := make([]DeductibleItem, len(c.Deductibles))
		copy(items, c.Deductibles)
		c.Deductibles = items
	}
	return c
}
