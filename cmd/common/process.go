// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/commission-calc/internal/batch"
	"fjacquet/commission-calc/internal/container"
	"fjacquet/commission-calc/internal/export"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/models"
	"fjacquet/commission-calc/internal/validation"
)

// ErrNothingCalculated is returned when every input item failed.
var ErrNothingCalculated = errors.New("no commission could be calculated")

// Summary reports what ProcessFile did.
type Summary struct {
	Count  int
	Failed int
}

// LoadInput checks that inputFile exists and decodes its contexts using the
// configured CSV delimiter.
func LoadInput(c *container.Container, inputFile string) ([]models.TransactionContext, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("an input file is required")
	}
	if err := validation.IsValidInputFile(inputFile); err != nil {
		return nil, err
	}
	contexts, err := export.LoadContexts(inputFile, c.GetConfig().Delimiter())
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", inputFile, err)
	}
	return contexts, nil
}

// ProcessFile calculates every context in inputFile and writes the successful
// submissions to outputFile in the configured format. Failed items are
// skipped; the call fails only when nothing could be calculated.
func ProcessFile(ctx context.Context, c *container.Container, inputFile, outputFile string, validate bool) (Summary, error) {
	logger := c.GetLogger().WithField(logging.FieldInputFile, inputFile)

	contexts, err := LoadInput(c, inputFile)
	if err != nil {
		return Summary{}, err
	}
	if len(contexts) == 0 {
		logger.Warn("No transactions found in input")
		return Summary{}, nil
	}

	outcomes, err := c.NewProcessor(validate).Process(ctx, contexts)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Count: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil {
			summary.Failed++
		}
	}
	if summary.Failed == summary.Count {
		return summary, ErrNothingCalculated
	}

	cfg := c.GetConfig()
	subs := batch.Submissions(outcomes, cfg.Export.Currency)
	if err := c.GetWriter().WriteFile(outputFile, subs, cfg.Export.Format); err != nil {
		return summary, fmt.Errorf("error writing output: %w", err)
	}
	return summary, nil
}
