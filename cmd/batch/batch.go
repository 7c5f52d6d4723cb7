// Package batch handles batch calculation of transaction files
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/commission-calc/cmd/common"
	"fjacquet/commission-calc/cmd/root"
	"fjacquet/commission-calc/internal/container"
	"fjacquet/commission-calc/internal/export"
	"fjacquet/commission-calc/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch calculate commissions from a file or directory",
	Long: `Batch calculate the commissions of many transactions.

The input is a json, yaml or csv file holding a list of transactions, or a
directory of such files. Transactions that cannot be resolved or fail
validation are skipped and reported; the others are written in the configured
format. For a directory, each input file gets an output file of the same name
in the output directory.

Example:
  commission-calc batch -i deals.csv -o results.json
  commission-calc batch -i input_dir/ -o output_dir/ --format csv`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	c := root.GetContainer()
	if c == nil {
		root.Log.Fatalf("Container not initialized")
		return
	}

	count, err := Run(cmd.Context(), c, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate)
	if err != nil {
		root.Log.Fatalf("Error during batch calculation: %v", err)
		return
	}
	c.GetLogger().Info(fmt.Sprintf("Batch processing completed. %d files written.", count))
}

// Run processes input, a file or a directory, and returns the number of
// output files written.
func Run(ctx context.Context, c *container.Container, input, output string, validate bool) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if input == "" {
		return 0, fmt.Errorf("an input file or directory is required")
	}

	info, err := os.Stat(input)
	if err != nil {
		return 0, fmt.Errorf("error reading input: %w", err)
	}
	if !info.IsDir() {
		if _, err := common.ProcessFile(ctx, c, input, output, validate); err != nil {
			return 0, err
		}
		return 1, nil
	}

	if output == "" {
		return 0, fmt.Errorf("an output directory is required for directory input")
	}
	return processDirectory(ctx, c, input, output, validate)
}

func processDirectory(ctx context.Context, c *container.Container, inputDir, outputDir string, validate bool) (int, error) {
	logger := c.GetLogger()

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	files, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read input directory: %w", err)
	}

	var inputFiles []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if _, err := export.FormatFromPath(file.Name()); err == nil {
			inputFiles = append(inputFiles, filepath.Join(inputDir, file.Name()))
		}
	}

	if len(inputFiles) == 0 {
		logger.Warn("No supported files found in input directory")
		return 0, nil
	}
	logger.Info("Found files for processing", logging.F(logging.FieldCount, len(inputFiles)))

	format := c.GetConfig().Export.Format
	written := 0
	for _, inputFile := range inputFiles {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
		outputFile := filepath.Join(outputDir, base+"."+format)

		summary, err := common.ProcessFile(ctx, c, inputFile, outputFile, validate)
		if err != nil {
			logger.WithError(err).Error("Failed to process file",
				logging.F(logging.FieldInputFile, filepath.Base(inputFile)))
			continue
		}
		if summary.Count == 0 {
			continue
		}

		logger.Info("Processed file",
			logging.F(logging.FieldInputFile, filepath.Base(inputFile)),
			logging.F(logging.FieldOutputFile, outputFile),
			logging.F(logging.FieldCount, summary.Count),
			logging.F(logging.FieldFailed, summary.Failed))
		written++
	}

	return written, nil
}
