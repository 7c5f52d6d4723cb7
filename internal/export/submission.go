// Package export turns calculations into submission payloads and reads
// transaction contexts back from files.
package export

import (
	"fjacquet/commission-calc/internal/models"

	"github.com/google/uuid"
)

// Submission is the payload handed to the system of record: the inputs as
// entered plus the flat figures the form displays.
type Submission struct {
	ID           uuid.UUID                 `json:"id" yaml:"id"`
	ServiceClass models.ServiceClass       `json:"serviceClass" yaml:"serviceClass"`
	Currency     string                    `json:"currency,omitempty" yaml:"currency,omitempty"`
	Context      models.TransactionContext `json:"context" yaml:"context"`
	Result       models.FlatResult         `json:"result" yaml:"result"`
}

// NewSubmission builds a submission with a fresh id.
func NewSubmission(ctx models.TransactionContext, result models.CalculationResult, currency string) Submission {
	return Submission{
		ID:           uuid.New(),
		ServiceClass: result.Class,
		Currency:     currency,
		Context:      ctx.Clone(),
		Result:       result.Flatten(),
	}
}

// Row is one CSV line of a submission.
type Row struct {
	SubmissionID      string `csv:"submissionId"`
	ServiceID         int    `csv:"serviceId"`
	ServiceClass      string `csv:"serviceClass"`
	AdvisorID         int    `csv:"advisorId"`
	Currency          string `csv:"currency"`
	TransactionAmount string `csv:"transactionAmount"`
	DeductibleAmount  string `csv:"deductibleAmount"`
	DeductiblesTotal  string `csv:"deductiblesTotal"`
	DeductiblesCount  int    `csv:"deductiblesCount"`
	models.FlatResult
}

// Row flattens the submission for CSV output.
func (s Submission) Row() Row {
	return Row{
		SubmissionID:      s.ID.String(),
		ServiceID:         s.Context.ServiceID,
		ServiceClass:      string(s.ServiceClass),
		AdvisorID:         s.Context.AdvisorID,
		Currency:          s.Currency,
		TransactionAmount: s.Context.TransactionAmount.String(),
		DeductibleAmount:  s.Context.DeductibleAmount.String(),
		DeductiblesTotal:  deductiblesTotal(s.Context.Deductibles),
		DeductiblesCount:  len(s.Context.Deductibles),
		FlatResult:        s.Result,
	}
}
