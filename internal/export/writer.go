package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/commission-calc/internal/calcerror"
	"fjacquet/commission-calc/internal/config"
	"fjacquet/commission-calc/internal/ledger"
	"fjacquet/commission-calc/internal/logging"
	"fjacquet/commission-calc/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Writer serializes submissions as json, yaml or csv.
type Writer struct {
	delimiter rune
	logger    logging.Logger
}

// NewWriter creates a writer; delimiter applies to csv only.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{delimiter: delimiter, logger: logger}
}

// Write encodes submissions to w. A single json or yaml submission is written
// as an object, several as a list.
func (wr *Writer) Write(w io.Writer, submissions []Submission, format string) error {
	switch format {
	case "json":
		return wr.writeJSON(w, submissions)
	case "yaml":
		return wr.writeYAML(w, submissions)
	case "csv":
		return wr.writeCSV(w, submissions)
	default:
		return &calcerror.UnsupportedFormatError{Format: format, Supported: config.SupportedExportFormats}
	}
}

// WriteFile writes submissions to path, creating its directory. An empty
// path writes to stdout.
func (wr *Writer) WriteFile(path string, submissions []Submission, format string) error {
	if path == "" {
		return wr.Write(os.Stdout, submissions, format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			wr.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := wr.Write(file, submissions, format); err != nil {
		return err
	}
	wr.logger.Info("Wrote submissions",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldCount, len(submissions)))
	return nil
}

func single(submissions []Submission) interface{} {
	if len(submissions) == 1 {
		return submissions[0]
	}
	return submissions
}

func (wr *Writer) writeJSON(w io.Writer, submissions []Submission) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(single(submissions)); err != nil {
		wr.logger.WithError(err).Error("Failed to marshal JSON submission")
		return fmt.Errorf("failed to marshal JSON submission: %w", err)
	}
	return nil
}

func (wr *Writer) writeYAML(w io.Writer, submissions []Submission) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(single(submissions)); err != nil {
		wr.logger.WithError(err).Error("Failed to marshal YAML submission")
		return fmt.Errorf("failed to marshal YAML submission: %w", err)
	}
	return enc.Close()
}

func (wr *Writer) writeCSV(w io.Writer, submissions []Submission) error {
	rows := make([]Row, 0, len(submissions))
	for _, s := range submissions {
		rows = append(rows, s.Row())
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = wr.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		wr.logger.WithError(err).Error("Failed to marshal submissions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

func deductiblesTotal(items []models.DeductibleItem) string {
	return ledger.Sum(items).StringFixed(2)
}
