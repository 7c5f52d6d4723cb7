package classifier

import (
	"testing"

	"fjacquet/commission-calc/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		serviceID  int
		expected   models.ServiceClass
		realEstate bool
	}{
		{4, models.ServiceRemodeling, false},
		{5, models.ServiceAccounting, false},
		{6, models.ServiceLegal, false},
		{7, models.ServiceCleaning, false},
		{13, models.ServiceTechnical, false},
		{10, models.ServiceRental, true},
		{11, models.ServiceSale, true},
		{16, models.ServiceBusinessTransfer, true},
		{19, models.ServiceDailyStay, true},
		{0, models.ServiceStandard, false},
		{1, models.ServiceStandard, false},
		{12, models.ServiceStandard, false},
		{-7, models.ServiceStandard, false},
		{999, models.ServiceStandard, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.serviceID))
			assert.Equal(t, tt.realEstate, IsRealEstate(tt.serviceID))
		})
	}
}
