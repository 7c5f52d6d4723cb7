// Package batch calculates many transaction contexts at once, on a worker
// pool when the input is large enough to benefit from it.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"fjacquet/commission-calc/internal/engine"
	"fjacquet/commission-calc/internal/export"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/models"
	"fjacquet/commission-calc/internal/validation"
)

// sequentialThreshold is the input size below which items run on the
// calling goroutine.
const sequentialThreshold = 100

// Resolver fills catalog-derived percentages into a context.
type Resolver interface {
	Resolve(ctx *models.TransactionContext) error
}

// Outcome is the calculation of one input item. Err is set when the item
// could not be resolved or validated; Result is then empty.
type Outcome struct {
	Index   int
	Context models.TransactionContext
	Result  models.CalculationResult
	Err     error
}

// Processor runs calculations over a list of contexts.
type Processor struct {
	logger   logging.Logger
	workers  int
	resolver Resolver
	validate bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets the pool size; n <= 0 means one worker per CPU.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithResolver resolves every context through r before calculating.
func WithResolver(r Resolver) Option {
	return func(p *Processor) { p.resolver = r }
}

// WithValidation enables form-level validation of every context.
func WithValidation(enabled bool) Option {
	return func(p *Processor) { p.validate = enabled }
}

// NewProcessor creates a processor.
func NewProcessor(logger logging.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	p := &Processor{logger: logger, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers returns the configured pool size.
func (p *Processor) Workers() int {
	return p.workers
}

// Process calculates every context and returns one outcome per input, in
// input order. Per-item failures are recorded on the outcome. The returned
// error is non-nil only when ctx is cancelled.
func (p *Processor) Process(ctx context.Context, contexts []models.TransactionContext) ([]Outcome, error) {
	start := time.Now()

	var (
		outcomes []Outcome
		err      error
	)
	if len(contexts) < sequentialThreshold {
		outcomes, err = p.processSequential(ctx, contexts)
	} else {
		outcomes, err = p.processConcurrent(ctx, contexts)
	}
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	p.logger.Info("Batch processed",
		logging.F(logging.FieldCount, len(outcomes)),
		logging.F(logging.FieldFailed, failed),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return outcomes, nil
}

func (p *Processor) processSequential(ctx context.Context, contexts []models.TransactionContext) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(contexts))
	for i := range contexts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, p.calculate(i, contexts[i]))
	}
	return outcomes, nil
}

func (p *Processor) processConcurrent(ctx context.Context, contexts []models.TransactionContext) ([]Outcome, error) {
	jobs := make(chan int, p.workers)
	outcomes := make([]Outcome, len(contexts))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// each index is written by exactly one worker
				outcomes[i] = p.calculate(i, contexts[i])
			}
		}()
	}

	var cancelled error
feed:
	for i := range contexts {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}

	p.logger.Debug("Concurrent processing completed",
		logging.F(logging.FieldCount, len(contexts)),
		logging.F(logging.FieldWorkers, p.workers))
	return outcomes, nil
}

func (p *Processor) calculate(index int, in models.TransactionContext) Outcome {
	c := in.Clone()
	c.ApplyDefaults()
	out := Outcome{Index: index, Context: c}

	if p.resolver != nil {
		if err := p.resolver.Resolve(&c); err != nil {
			out.Err = fmt.Errorf("item %d: %w", index, err)
			p.logger.WithError(err).Warn("Skipping unresolvable item", logging.F(logging.FieldIndex, index))
			return out
		}
		out.Context = c
	}
	if p.validate {
		if err := validation.ValidateContext(c); err != nil {
			out.Err = fmt.Errorf("item %d: %w", index, err)
			p.logger.WithError(err).Warn("Skipping invalid item", logging.F(logging.FieldIndex, index))
			return out
		}
	}

	out.Result = engine.Allocate(c)
	return out
}

// Submissions converts the successful outcomes to export payloads, in order.
func Submissions(outcomes []Outcome, currency string) []export.Submission {
	subs := make([]export.Submission, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			subs = append(subs, export.NewSubmission(o.Context, o.Result, currency))
		}
	}
	return subs
}
