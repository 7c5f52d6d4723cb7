package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/commission-calc/internal/calcerror"
	"fjacquet/commission-calc/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// InputFormats lists the file formats LoadContexts reads.
var InputFormats = []string{"json", "yaml", "csv"}

// ContextRow is the CSV layout for batch input. CSV input carries no
// deductible line items.
type ContextRow struct {
	ServiceID               int             `csv:"serviceId"`
	AdvisorID               int             `csv:"advisorId"`
	TransactionAmount       models.Currency `csv:"transactionAmount"`
	DeductibleAmount        models.Currency `csv:"deductibleAmount"`
	ServicePercentage       models.Currency `csv:"servicePercentage"`
	AdvisorLevelPercentage  models.Currency `csv:"advisorLevelPercentage"`
	Tip                     string          `csv:"tip"`
	RentalCommissionMode    string          `csv:"rentalCommissionMode"`
	RealEstateCommission    models.Currency `csv:"realEstateCommission"`
	PropertyOwnerPercentage models.Currency `csv:"propertyOwnerPercentage"`
	DailyRate               models.Currency `csv:"dailyRate"`
	NumberOfDays            models.Currency `csv:"numberOfDays"`
	GuaranteeAmount         models.Currency `csv:"guaranteeAmount"`
	AdministrativeFee       models.Currency `csv:"administrativeFee"`
	CleaningStaffFeesAmount models.Currency `csv:"cleaningStaffFeesAmount"`
	MaterialFees            models.Currency `csv:"materialFees"`
	TechnicalFees           models.Currency `csv:"technicalFees"`
	CleaningStaffFees       models.Currency `csv:"cleaningStaffFees"`
}

// Context converts the row to a transaction context.
func (r ContextRow) Context() models.TransactionContext {
	return models.TransactionContext{
		ServiceID:               r.ServiceID,
		AdvisorID:               r.AdvisorID,
		TransactionAmount:       r.TransactionAmount,
		DeductibleAmount:        r.DeductibleAmount,
		ServicePercentage:       r.ServicePercentage,
		AdvisorLevelPercentage:  r.AdvisorLevelPercentage,
		Tip:                     models.TipMode(strings.TrimSpace(r.Tip)),
		RentalCommissionMode:    models.RentalCommissionMode(strings.TrimSpace(r.RentalCommissionMode)),
		RealEstateCommission:    r.RealEstateCommission,
		PropertyOwnerPercentage: r.PropertyOwnerPercentage,
		DailyRate:               r.DailyRate,
		NumberOfDays:            r.NumberOfDays,
		GuaranteeAmount:         r.GuaranteeAmount,
		AdministrativeFee:       r.AdministrativeFee,
		CleaningStaffFeesAmount: r.CleaningStaffFeesAmount,
		MaterialFees:            r.MaterialFees,
		TechnicalFees:           r.TechnicalFees,
		CleaningStaffFees:       r.CleaningStaffFees,
	}
}

// FormatFromPath maps a file extension to an input format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".csv":
		return "csv", nil
	default:
		return "", &calcerror.UnsupportedFormatError{Format: filepath.Ext(path), Supported: InputFormats}
	}
}

// LoadContexts reads one context or a list of contexts from path. The format
// follows the file extension; delimiter applies to csv.
func LoadContexts(path string, delimiter rune) ([]models.TransactionContext, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	contexts, err := DecodeContexts(data, format, delimiter)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return contexts, nil
}

// DecodeContexts decodes one context or a list of contexts.
func DecodeContexts(data []byte, format string, delimiter rune) ([]models.TransactionContext, error) {
	switch format {
	case "json":
		return decodeJSON(data)
	case "yaml":
		return decodeYAML(data)
	case "csv":
		return decodeCSV(data, delimiter)
	default:
		return nil, &calcerror.UnsupportedFormatError{Format: format, Supported: InputFormats}
	}
}

func decodeJSON(data []byte) ([]models.TransactionContext, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var contexts []models.TransactionContext
		if err := json.Unmarshal(trimmed, &contexts); err != nil {
			return nil, err
		}
		return contexts, nil
	}
	var ctx models.TransactionContext
	if err := json.Unmarshal(trimmed, &ctx); err != nil {
		return nil, err
	}
	return []models.TransactionContext{ctx}, nil
}

func decodeYAML(data []byte) ([]models.TransactionContext, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var contexts []models.TransactionContext
		if err := root.Decode(&contexts); err != nil {
			return nil, err
		}
		return contexts, nil
	}
	var ctx models.TransactionContext
	if err := root.Decode(&ctx); err != nil {
		return nil, err
	}
	return []models.TransactionContext{ctx}, nil
}

func decodeCSV(data []byte, delimiter rune) ([]models.TransactionContext, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.TrimLeadingSpace = true

	var rows []ContextRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, err
	}

	contexts := make([]models.TransactionContext, 0, len(rows))
	for _, row := range rows {
		contexts = append(contexts, row.Context())
	}
	return contexts, nil
}
