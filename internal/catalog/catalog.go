// Package catalog holds the agency's services and advisors and fills the
// percentages a transaction context needs from them.
package catalog

import (
	"sort"

	"fjacquet/commission-calc/internal/calcerror"
	"fjacquet/commission-calc/internal/classifier"
	"fjacquet/commission-calc/internal/models"
)

// Service is a billable service with its static commission percentage.
type Service struct {
	ID                   int             `json:"id" yaml:"id"`
	Title                string          `json:"title" yaml:"title"`
	CommissionPercentage models.Currency `json:"commissionPercentage" yaml:"commission_percentage"`
}

// Class returns the service's behavior class.
func (s Service) Class() models.ServiceClass {
	return classifier.Classify(s.ID)
}

// AdvisorMetadata carries the advisor's level.
type AdvisorMetadata struct {
	AdviserLevelTitle      string          `json:"adviserLevelTitle" yaml:"adviser_level_title"`
	AdviserLevelPercentage models.Currency `json:"adviserLevelPercentage" yaml:"adviser_level_percentage"`
}

// Advisor is a sales advisor.
type Advisor struct {
	ID       int             `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Metadata AdvisorMetadata `json:"metadata" yaml:"metadata"`
}

// File is the on-disk catalog layout.
type File struct {
	Services []Service `yaml:"services"`
	Advisors []Advisor `yaml:"advisors"`
}

// Catalog indexes services and advisors by id. It is read-only after
// construction and safe for concurrent use.
type Catalog struct {
	services map[int]Service
	advisors map[int]Advisor
}

// New builds a catalog. A later entry with a duplicate id replaces an earlier one.
func New(services []Service, advisors []Advisor) *Catalog {
	c := &Catalog{
		services: make(map[int]Service, len(services)),
		advisors: make(map[int]Advisor, len(advisors)),
	}
	for _, s := range services {
		c.services[s.ID] = s
	}
	for _, a := range advisors {
		c.advisors[a.ID] = a
	}
	return c
}

// Service returns the service with id.
func (c *Catalog) Service(id int) (Service, error) {
	if s, ok := c.services[id]; ok {
		return s, nil
	}
	return Service{}, &calcerror.CatalogError{Kind: "service", ID: id}
}

// Advisor returns the advisor with id.
func (c *Catalog) Advisor(id int) (Advisor, error) {
	if a, ok := c.advisors[id]; ok {
		return a, nil
	}
	return Advisor{}, &calcerror.CatalogError{Kind: "advisor", ID: id}
}

// Services lists services ordered by id.
func (c *Catalog) Services() []Service {
	out := make([]Service, 0, len(c.services))
	for _, s := range c.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Advisors lists advisors ordered by id.
func (c *Catalog) Advisors() []Advisor {
	out := make([]Advisor, 0, len(c.advisors))
	for _, a := range c.advisors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of services and advisors.
func (c *Catalog) Len() int {
	return len(c.services) + len(c.advisors)
}

// Resolve fills the percentages ctx left empty. The advisor level comes from
// the advisor when AdvisorID is set. The service percentage comes from the
// service, or from the advisor level for real-estate services. Values already
// present are kept.
func (c *Catalog) Resolve(ctx *models.TransactionContext) error {
	if ctx.AdvisorID != 0 && ctx.AdvisorLevelPercentage.IsEmpty() {
		advisor, err := c.Advisor(ctx.AdvisorID)
		if err != nil {
			return err
		}
		ctx.AdvisorLevelPercentage = advisor.Metadata.AdviserLevelPercentage
	}

	if !ctx.ServicePercentage.IsEmpty() {
		return nil
	}
	if classifier.IsRealEstate(ctx.ServiceID) {
		ctx.ServicePercentage = ctx.AdvisorLevelPercentage
		return nil
	}
	service, err := c.Service(ctx.ServiceID)
	if err != nil {
		return err
	}
	ctx.ServicePercentage = service.CommissionPercentage
	return nil
}
