// Package calculate computes the commission split of a single transaction
package calculate

import (
	"fmt"
	"strings"

	"fjacquet/commission-calc/cmd/common"
	"fjacquet/commission-calc/cmd/root"
	"fjacquet/commission-calc/internal/container"
	"fjacquet/commission-calc/internal/currencyutils"
	"fjacquet/commission-calc/internal/export"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/models"
	"fjacquet/commission-calc/internal/scheduler"
	"fjacquet/commission-calc/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the transaction fields that can be given on the command line.
// Text values go through the monetary parser, so "$ 1,200.50" is accepted.
type Options struct {
	ServiceID int
	AdvisorID int

	TransactionAmount      string
	DeductibleAmount       string
	ServicePercentage      string
	AdvisorLevelPercentage string

	Tip                     string
	RentalCommissionMode    string
	RealEstateCommission    string
	PropertyOwnerPercentage string

	DailyRate               string
	NumberOfDays            string
	GuaranteeAmount         string
	AdministrativeFee       string
	CleaningStaffFeesAmount string

	MaterialFees      string
	TechnicalFees     string
	CleaningStaffFees string

	// Deductibles are "title=amount" pairs.
	Deductibles []string
}

var opts Options

// Cmd represents the calculate command
var Cmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate the commission split of one transaction",
	Long: `Calculate the advisor, company, specialist and real-estate role fees of one
transaction. The transaction is read from the input file, or built from flags
when no input is given. Missing percentages are looked up in the catalog.

Examples:
  commission-calc calculate --service 6 --advisor 3 --amount 10000
  commission-calc calculate --service 11 --advisor 3 --amount 100000 --tip doble_punta \
      --deductible "Notary=1500" --deductible "Ads=$ 250"
  commission-calc calculate -i deal.yaml -o result.json`,
	Run: calculateFunc,
}

func init() {
	f := Cmd.Flags()
	f.IntVar(&opts.ServiceID, "service", 0, "Service id")
	f.IntVar(&opts.AdvisorID, "advisor", 0, "Advisor id")
	f.StringVar(&opts.TransactionAmount, "amount", "", "Transaction amount")
	f.StringVar(&opts.DeductibleAmount, "deductible-amount", "", "Flat deductible amount")
	f.StringVar(&opts.ServicePercentage, "service-percentage", "", "Service commission percentage (catalog when empty)")
	f.StringVar(&opts.AdvisorLevelPercentage, "level-percentage", "", "Advisor level percentage (catalog when empty)")
	f.StringVar(&opts.Tip, "tip", "", "Tip side: punta_cliente, punta_inmueble or doble_punta")
	f.StringVar(&opts.RentalCommissionMode, "rental-mode", "", "Rental commission: comision_simple or doble_comision")
	f.StringVar(&opts.RealEstateCommission, "real-estate-commission", "", "Real-estate commission amount")
	f.StringVar(&opts.PropertyOwnerPercentage, "owner-percentage", "", "Property owner percentage (default 50)")
	f.StringVar(&opts.DailyRate, "daily-rate", "", "Daily stay rate")
	f.StringVar(&opts.NumberOfDays, "days", "", "Daily stay number of days")
	f.StringVar(&opts.GuaranteeAmount, "guarantee", "", "Daily stay guarantee amount")
	f.StringVar(&opts.AdministrativeFee, "admin-fee", "", "Daily stay administrative fee")
	f.StringVar(&opts.CleaningStaffFeesAmount, "cleaning-amount", "", "Daily stay cleaning staff amount")
	f.StringVar(&opts.MaterialFees, "material-fees", "", "Remodeling material fees")
	f.StringVar(&opts.TechnicalFees, "technical-fees", "", "Technical fees")
	f.StringVar(&opts.CleaningStaffFees, "cleaning-fees", "", "Cleaning staff fees")
	f.StringArrayVar(&opts.Deductibles, "deductible", nil, `Deductible line item as "title=amount" (repeatable)`)
}

func calculateFunc(cmd *cobra.Command, args []string) {
	c := root.GetContainer()
	if c == nil {
		root.Log.Fatalf("Container not initialized")
		return
	}

	sub, err := Run(c, root.SharedFlags.Input, opts, root.SharedFlags.Validate)
	if err != nil {
		root.Log.Fatalf("Error calculating commission: %v", err)
		return
	}

	cfg := c.GetConfig()
	if err := c.GetWriter().WriteFile(root.SharedFlags.Output, []export.Submission{sub}, cfg.Export.Format); err != nil {
		root.Log.Fatalf("Error writing output: %v", err)
	}
}

// Run builds the transaction from inputFile, or from o when inputFile is
// empty, resolves it against the catalog and calculates it. Deductibles in o
// are added to the transaction in both cases.
func Run(c *container.Container, inputFile string, o Options, validate bool) (export.Submission, error) {
	logger := c.GetLogger()

	ctx, err := loadContext(c, inputFile, o)
	if err != nil {
		return export.Submission{}, err
	}
	if err := c.GetCatalog().Resolve(&ctx); err != nil {
		return export.Submission{}, err
	}

	session := scheduler.NewSession(ctx, logger)
	for _, raw := range o.Deductibles {
		item, err := ParseDeductible(raw)
		if err != nil {
			return export.Submission{}, err
		}
		if _, err := session.AddDeductible(item); err != nil {
			return export.Submission{}, err
		}
	}

	if validate {
		if err := validation.ValidateContext(session.Context()); err != nil {
			return export.Submission{}, err
		}
	}

	result := session.Result()
	currency := c.GetConfig().Export.Currency
	logger.Info("Commission calculated",
		logging.F(logging.FieldServiceID, ctx.ServiceID),
		logging.F(logging.FieldServiceClass, result.Class),
		logging.F("advisor_total", currencyutils.FormatAmount(result.VisionAdvisorTotalFees, currency)),
		logging.F("company_total", currencyutils.FormatAmount(result.CompanyFeesFinal, currency)))

	return export.NewSubmission(session.Context(), result, currency), nil
}

func loadContext(c *container.Container, inputFile string, o Options) (models.TransactionContext, error) {
	if inputFile == "" {
		return o.Context(), nil
	}
	contexts, err := common.LoadInput(c, inputFile)
	if err != nil {
		return models.TransactionContext{}, err
	}
	if len(contexts) != 1 {
		return models.TransactionContext{}, fmt.Errorf("%s holds %d transactions, use the batch command", inputFile, len(contexts))
	}
	return contexts[0], nil
}

// Context converts the flag values to a transaction context.
func (o Options) Context() models.TransactionContext {
	return models.TransactionContext{
		ServiceID:               o.ServiceID,
		AdvisorID:               o.AdvisorID,
		TransactionAmount:       currency(o.TransactionAmount),
		DeductibleAmount:        currency(o.DeductibleAmount),
		ServicePercentage:       currency(o.ServicePercentage),
		AdvisorLevelPercentage:  currency(o.AdvisorLevelPercentage),
		Tip:                     models.TipMode(o.Tip),
		RentalCommissionMode:    models.RentalCommissionMode(o.RentalCommissionMode),
		RealEstateCommission:    currency(o.RealEstateCommission),
		PropertyOwnerPercentage: currency(o.PropertyOwnerPercentage),
		DailyRate:               currency(o.DailyRate),
		NumberOfDays:            currency(o.NumberOfDays),
		GuaranteeAmount:         currency(o.GuaranteeAmount),
		AdministrativeFee:       currency(o.AdministrativeFee),
		CleaningStaffFeesAmount: currency(o.CleaningStaffFeesAmount),
		MaterialFees:            currency(o.MaterialFees),
		TechnicalFees:           currency(o.TechnicalFees),
		CleaningStaffFees:       currency(o.CleaningStaffFees),
	}
}

// currency keeps an unset flag empty so catalog lookups still apply.
func currency(raw string) models.Currency {
	if strings.TrimSpace(raw) == "" {
		return models.Currency{}
	}
	return models.Text(raw)
}

// ParseDeductible parses a "title=amount" pair. The last "=" separates the
// amount, so titles may contain one.
func ParseDeductible(raw string) (models.DeductibleItem, error) {
	i := strings.LastIndex(raw, "=")
	if i < 0 {
		return models.DeductibleItem{}, fmt.Errorf("invalid deductible %q, expected title=amount", raw)
	}
	title := strings.TrimSpace(raw[:i])
	if title == "" {
		return models.DeductibleItem{}, fmt.Errorf("invalid deductible %q, title is empty", raw)
	}
	return models.DeductibleItem{Title: title, Amount: currency(raw[i+1:])}, nil
}
