// Package models holds the commission domain types: monetary values,
// transaction contexts, service classes and calculation results.
package models

// ServiceClass is the behavior class a service id maps to. It selects the
// formula branch the allocation engine runs.
type ServiceClass string

const (
	ServiceStandard         ServiceClass = "STANDARD"
	ServiceLegal            ServiceClass = "LEGAL"
	ServiceAccounting       ServiceClass = "ACCOUNTING"
	ServiceRemodeling       ServiceClass = "REMODELING"
	ServiceTechnical        ServiceClass = "TECHNICAL"
	ServiceCleaning         ServiceClass = "CLEANING"
	ServiceRental           ServiceClass = "RENTAL"
	ServiceSale             ServiceClass = "SALE"
	ServiceBusinessTransfer ServiceClass = "BUSINESS_TRANSFER"
	ServiceDailyStay        ServiceClass = "DAILY_STAY"
)

// IsRealEstate reports whether the class takes its rate from the advisor level
// and produces a tip/role breakdown.
func (c ServiceClass) IsRealEstate() bool {
	switch c {
	case ServiceRental, ServiceSale, ServiceBusinessTransfer, ServiceDailyStay:
		return true
	default:
		return false
	}
}

// Specialist returns the specialist fee the class produces, if any.
func (c ServiceClass) Specialist() SpecialistKind {
	switch c {
	case ServiceLegal:
		return SpecialistLawyer
	case ServiceAccounting:
		return SpecialistAccountant
	case ServiceRemodeling:
		return SpecialistMaterial
	case ServiceTechnical:
		return SpecialistTechnical
	case ServiceCleaning:
		return SpecialistCleaningStaff
	default:
		return SpecialistNone
	}
}

// SpecialistKind names the third party paid out of a service's net amount.
type SpecialistKind string

const (
	SpecialistNone          SpecialistKind = ""
	SpecialistLawyer        SpecialistKind = "lawyer"
	SpecialistAccountant    SpecialistKind = "accountant"
	SpecialistMaterial      SpecialistKind = "material"
	SpecialistTechnical     SpecialistKind = "technical"
	SpecialistCleaningStaff SpecialistKind = "cleaning_staff"
)

// TipMode is the side of a sale the advisor represents.
type TipMode string

const (
	TipClient   TipMode = "punta_cliente"
	TipProperty TipMode = "punta_inmueble"
	TipDouble   TipMode = "doble_punta"
)

// RentalCommissionMode selects whether a rental commission is charged once or twice.
type RentalCommissionMode string

const (
	RentalSingle RentalCommissionMode = "comision_simple"
	RentalDouble RentalCommissionMode = "doble_comision"
)
