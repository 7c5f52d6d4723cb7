// Package classifier maps service ids to the behavior class that selects a
// commission formula.
package classifier

import "fjacquet/commission-calc/internal/models"

// Service ids with dedicated formulas.
const (
	ServiceIDRemodeling       = 4
	ServiceIDAccounting       = 5
	ServiceIDLegal            = 6
	ServiceIDCleaning         = 7
	ServiceIDRental           = 10
	ServiceIDSale             = 11
	ServiceIDTechnical        = 13
	ServiceIDBusinessTransfer = 16
	ServiceIDDailyStay        = 19
)

var classes = map[int]models.ServiceClass{
	ServiceIDRemodeling:       models.ServiceRemodeling,
	ServiceIDAccounting:       models.ServiceAccounting,
	ServiceIDLegal:            models.ServiceLegal,
	ServiceIDCleaning:         models.ServiceCleaning,
	ServiceIDTechnical:        models.ServiceTechnical,
	ServiceIDRental:           models.ServiceRental,
	ServiceIDSale:             models.ServiceSale,
	ServiceIDBusinessTransfer: models.ServiceBusinessTransfer,
	ServiceIDDailyStay:        models.ServiceDailyStay,
}

// Classify returns the class for a service id; unknown ids are STANDARD.
func Classify(serviceID int) models.ServiceClass {
	if class, ok := classes[serviceID]; ok {
		return class
	}
	return models.ServiceStandard
}

// IsRealEstate is shorthand for Classify(serviceID).IsRealEstate().
func IsRealEstate(serviceID int) bool {
	return Classify(serviceID).IsRealEstate()
}
