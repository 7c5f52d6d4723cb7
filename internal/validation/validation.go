// Package validation holds the form-level checks that run before a
// calculation. The engine never rejects input; callers decide whether to
// enforce these.
package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fjacquet/commission-calc/internal/calcerror"
	"fjacquet/commission-calc/internal/config"
	"fjacquet/commission-calc/internal/currencyutils"
	"fjacquet/commission-calc/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidateContext checks deductible titles, that every percentage the form
// collects is a number in [0,100] and that no amount is past the currency
// bounds. Amounts are otherwise lenient. The advisor/company split of a
// deductible is not required to sum to 100. It returns
// calcerror.ValidationErrors or nil.
func ValidateContext(ctx models.TransactionContext) error {
	var errs calcerror.ValidationErrors

	check := func(field string, value models.Currency) {
		if err := percentage(field, value); err != nil {
			errs = append(errs, err)
		}
	}
	checkAmount := func(field string, value models.Currency) {
		if err := amount(field, value); err != nil {
			errs = append(errs, err)
		}
	}

	check("servicePercentage", ctx.ServicePercentage)
	check("advisorLevelPercentage", ctx.AdvisorLevelPercentage)
	check("propertyOwnerPercentage", ctx.PropertyOwnerPercentage)

	checkAmount("transactionAmount", ctx.TransactionAmount)
	checkAmount("deductibleAmount", ctx.DeductibleAmount)
	checkAmount("realEstateCommission", ctx.RealEstateCommission)
	checkAmount("dailyRate", ctx.DailyRate)
	checkAmount("numberOfDays", ctx.NumberOfDays)
	checkAmount("guaranteeAmount", ctx.GuaranteeAmount)
	checkAmount("administrativeFee", ctx.AdministrativeFee)
	checkAmount("cleaningStaffFeesAmount", ctx.CleaningStaffFeesAmount)
	checkAmount("materialFees", ctx.MaterialFees)
	checkAmount("technicalFees", ctx.TechnicalFees)
	checkAmount("cleaningStaffFees", ctx.CleaningStaffFees)

	for i, item := range ctx.Deductibles {
		prefix := fmt.Sprintf("deductibles[%d]", i)
		if strings.TrimSpace(item.Title) == "" {
			errs = append(errs, &calcerror.ValidationError{Field: prefix + ".title", Reason: "title is required"})
		}
		checkAmount(prefix+".amount", item.Amount)
		check(prefix+".advisorPercentage", item.AdvisorPercentage)
		check(prefix+".companyPercentage", item.CompanyPercentage)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// percentage validates one optional percentage; blank is allowed.
func percentage(field string, value models.Currency) *calcerror.ValidationError {
	if value.IsEmpty() {
		return nil
	}
	d := value.Decimal()
	if value.IsText() {
		parsed, err := currencyutils.ParseAmount(value.Raw())
		if errors.Is(err, currencyutils.ErrOutOfRange) {
			return outOfRange(field, value)
		}
		if err != nil {
			return &calcerror.ValidationError{Field: field, Reason: fmt.Sprintf("'%s' is not a number", value.Raw())}
		}
		d = parsed
	}
	if !ClampPercentage(d).Equal(d) {
		return &calcerror.ValidationError{Field: field, Reason: fmt.Sprintf("%s is outside 0..100", d.String())}
	}
	return nil
}

// amount rejects only values past the currency bounds; other unparseable
// text counts as zero in the engine.
func amount(field string, value models.Currency) *calcerror.ValidationError {
	if !value.IsText() {
		return nil
	}
	if _, err := currencyutils.ParseAmount(value.Raw()); errors.Is(err, currencyutils.ErrOutOfRange) {
		return outOfRange(field, value)
	}
	return nil
}

func outOfRange(field string, value models.Currency) *calcerror.ValidationError {
	raw := value.Raw()
	if len(raw) > 32 {
		raw = raw[:32] + "..."
	}
	return &calcerror.ValidationError{Field: field, Reason: fmt.Sprintf("'%s' is out of range", raw)}
}

// ClampPercentage limits d to [0,100].
func ClampPercentage(d decimal.Decimal) decimal.Decimal {
	if currencyutils.IsNegative(d) {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

// IsValidExportFormat checks that format is one the export writer supports.
func IsValidExportFormat(format string) error {
	if config.IsSupportedExportFormat(format) {
		return nil
	}
	return &calcerror.UnsupportedFormatError{Format: format, Supported: config.SupportedExportFormats}
}

// IsValidInputFile checks that path exists and is a regular file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}
