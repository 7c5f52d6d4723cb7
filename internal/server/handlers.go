package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fjacquet/commission-calc/internal/calcerror"
	"fjacquet/commission-calc/internal/engine"
	"fjacquet/commission-calc/internal/export"
	"fjacquet/commission-calc/internal/ledger"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/models"
	"fjacquet/commission-calc/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type totalResponse struct {
	Total string `json:"total"`
	Count int    `json:"count"`
}

type batchItem struct {
	Index      int                `json:"index"`
	Submission *export.Submission `json:"submission,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, details ...string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// statusFor maps calculation errors to HTTP statuses.
func statusFor(err error) int {
	var catErr *calcerror.CatalogError
	var verrs calcerror.ValidationErrors
	switch {
	case errors.As(err, &catErr):
		return http.StatusNotFound
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func validationDetails(err error) []string {
	var verrs calcerror.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]string, 0, len(verrs))
	for _, v := range verrs {
		details = append(details, v.Error())
	}
	return details
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Services())
}

func (s *Server) handleListAdvisors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Advisors())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var ctx models.TransactionContext
	if err := decodeBody(w, r, &ctx); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx.ApplyDefaults()
	if err := s.catalog.Resolve(&ctx); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if err := validation.ValidateContext(ctx); err != nil {
		writeError(w, statusFor(err), "validation failed", validationDetails(err)...)
		return
	}

	result := engine.Allocate(ctx)
	submission := export.NewSubmission(ctx, result, s.currency)

	s.logger.Info("Commission calculated",
		logging.F(logging.FieldSubmissionID, submission.ID.String()),
		logging.F(logging.FieldServiceID, ctx.ServiceID),
		logging.F(logging.FieldServiceClass, string(result.Class)),
		logging.F(logging.FieldAdvisorID, ctx.AdvisorID))
	writeJSON(w, http.StatusOK, submission)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var contexts []models.TransactionContext
	if err := decodeBody(w, r, &contexts); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcomes, err := s.processor.Process(r.Context(), contexts)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	items := make([]batchItem, 0, len(outcomes))
	for _, o := range outcomes {
		item := batchItem{Index: o.Index}
		if o.Err != nil {
			item.Error = o.Err.Error()
		} else {
			sub := export.NewSubmission(o.Context, o.Result, s.currency)
			item.Submission = &sub
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleDeductiblesTotal(w http.ResponseWriter, r *http.Request) {
	var items []models.DeductibleItem
	if err := decodeBody(w, r, &items); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l := ledger.New(items...)
	writeJSON(w, http.StatusOK, totalResponse{Total: l.Total().StringFixed(2), Count: l.Len()})
}
