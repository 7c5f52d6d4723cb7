// Package scheduler keeps one form's transaction context and its derived
// commission figures in step. Every mutation recomputes the whole pipeline
// synchronously before it returns.
package scheduler

import (
	"errors"
	"time"

	"fjacquet/commission-calc/internal/engine"
	"fjacquet/commission-calc/internal/ledger"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/models"
)

// ErrReentrantUpdate is returned when a listener tries to mutate the session
// that is notifying it.
var ErrReentrantUpdate = errors.New("scheduler: update issued while listeners are running")

// Listener receives the result of every recompute.
type Listener func(models.CalculationResult)

// Session owns a TransactionContext and its latest CalculationResult. It is
// meant to be driven by one goroutine.
type Session struct {
	ctx       models.TransactionContext
	result    models.CalculationResult
	listeners []Listener
	notifying bool
	logger    logging.Logger
}

// NewSession applies form defaults to ctx and computes it once. A nil logger
// discards output.
func NewSession(ctx models.TransactionContext, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	s := &Session{ctx: ctx.Clone(), logger: logger}
	s.ctx.ApplyDefaults()
	s.recompute()
	return s
}

// Context returns a copy of the current inputs.
func (s *Session) Context() models.TransactionContext {
	return s.ctx.Clone()
}

// Result returns the latest result.
func (s *Session) Result() models.CalculationResult {
	return s.result
}

// OnChange registers fn to run after every recompute.
func (s *Session) OnChange(fn Listener) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// Update applies mutate to a copy of the context, then recomputes. If mutate
// is nil the session is recomputed unchanged.
func (s *Session) Update(mutate func(*models.TransactionContext)) (models.CalculationResult, error) {
	if s.notifying {
		return s.result, ErrReentrantUpdate
	}
	if mutate != nil {
		next := s.ctx.Clone()
		mutate(&next)
		s.ctx = next
	}
	s.recompute()
	return s.result, nil
}

// SetService switches the service and its static percentage.
func (s *Session) SetService(serviceID int, percentage models.Currency) (models.CalculationResult, error) {
	return s.Update(func(c *models.TransactionContext) {
		c.ServiceID = serviceID
		c.ServicePercentage = percentage
	})
}

// SetAdvisor switches the advisor and the level percentage that comes with it.
func (s *Session) SetAdvisor(advisorID int, levelPercentage models.Currency) (models.CalculationResult, error) {
	return s.Update(func(c *models.TransactionContext) {
		c.AdvisorID = advisorID
		c.AdvisorLevelPercentage = levelPercentage
	})
}

// AddDeductible appends item to the ledger with the default split filled in.
func (s *Session) AddDeductible(item models.DeductibleItem) (models.CalculationResult, error) {
	return s.Update(func(c *models.TransactionContext) {
		l := ledger.New(c.Deductibles...)
		l.Add(item)
		c.Deductibles = l.Items()
	})
}

// RemoveDeductible drops the item at index. An out-of-range index changes
// nothing and returns a *calcerror.IndexError.
func (s *Session) RemoveDeductible(index int) (models.CalculationResult, error) {
	if s.notifying {
		return s.result, ErrReentrantUpdate
	}
	l := ledger.New(s.ctx.Deductibles...)
	if err := l.Remove(index); err != nil {
		return s.result, err
	}
	return s.Update(func(c *models.TransactionContext) {
		c.Deductibles = l.Items()
	})
}

// Recompute re-runs the pipeline on the current context.
func (s *Session) Recompute() (models.CalculationResult, error) {
	return s.Update(nil)
}

func (s *Session) recompute() {
	start := time.Now()
	s.result = engine.Allocate(s.ctx)

	s.logger.Debug("Recalculated commission",
		logging.F(logging.FieldServiceID, s.ctx.ServiceID),
		logging.F(logging.FieldServiceClass, string(s.result.Class)),
		logging.F(logging.FieldDeductibles, len(s.ctx.Deductibles)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	s.notifying = true
	defer func() { s.notifying = false }()
	for _, fn := range s.listeners {
		fn(s.result)
	}
}
