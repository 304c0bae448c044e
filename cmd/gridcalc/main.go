// Package main provides the CLI entry point for gridcalc.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gridcell-go/pkg/gridcell"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/models"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/output"
)

var (
	outputPath string
	format     string
	pretty     bool
	mode       string
	sheets     []string
	cellRange  string
	cellLabel  string
	noCache    bool
	verbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridcalc [input.xlsx]",
		Short: "Evaluate the cells of an Excel workbook",
		Long: `gridcalc loads the raw cell values of an Excel workbook, evaluates
arithmetic formulas (+ - * / ^ over numbers and cell references) and outputs
the display value of every cell.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&format, "format", "", "Output format: json, parquet, xlsx (default: from output extension, else json)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&mode, "mode", "all", "Cells to report: all, formulas")
	rootCmd.Flags().StringSliceVar(&sheets, "sheet", nil, "Sheet to evaluate (repeatable, default: all sheets)")
	rootCmd.Flags().StringVar(&cellRange, "range", "", "Only report cells in this range, e.g. A1:D10 or Sheet1!A1:D10")
	rootCmd.Flags().StringVar(&cellLabel, "cell", "", "Print the display value of a single cell, e.g. C7 or Sheet1!C7")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable display value memoization")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	// Parse mode
	var evalMode gridcell.Mode
	switch mode {
	case "all":
		evalMode = gridcell.ModeAll
	case "formulas":
		evalMode = gridcell.ModeFormulas
	default:
		return fmt.Errorf("invalid mode: %s (must be all or formulas)", mode)
	}

	opts := gridcell.Options{
		Mode:         evalMode,
		Sheets:       sheets,
		Range:        cellRange,
		DisableCache: noCache,
		Logger:       logger,
	}
	if cellLabel != "" {
		opts.Mode = gridcell.ModeAll
		opts.Range = cellLabel
	}

	wb, err := gridcell.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	for name, sheet := range wb.Sheets {
		for _, c := range sheet.Failed() {
			logger.Debug("cell failed", "sheet", name, "cell", c.Cell, "error", c.Error)
		}
	}

	if cellLabel != "" {
		return printCell(cmd, wb, cellLabel)
	}

	outFormat, err := resolveFormat(format, outputPath)
	if err != nil {
		return err
	}
	logger.Debug("writing output", "format", outFormat, "path", outputPath)

	switch outFormat {
	case "xlsx":
		if outputPath == "" {
			return fmt.Errorf("xlsx output requires --output")
		}
		if err := output.WriteXLSX(outputPath, wb); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	case "parquet":
		if outputPath == "" {
			return fmt.Errorf("parquet output requires --output")
		}
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		defer file.Close()
		if err := output.WriteParquet(file, wb); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	default:
		// Serialize to JSON
		jsonData, err := output.ToJSON(wb, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if outputPath != "" {
			if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		}
	}

	return nil
}

// resolveFormat picks the output format from the flag, falling back to the
// output file extension.
func resolveFormat(format, path string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			return "xlsx", nil
		case ".parquet":
			return "parquet", nil
		default:
			return "json", nil
		}
	}
	switch format {
	case "json", "parquet", "xlsx":
		return format, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be json, parquet, or xlsx)", format)
}

// printCell prints the display value of the single cell selected by --cell.
func printCell(cmd *cobra.Command, wb *models.WorkbookData, label string) error {
	if len(wb.Sheets) != 1 {
		return fmt.Errorf("cell %s is ambiguous across %d sheets; use Sheet!%s or --sheet", label, len(wb.Sheets), label)
	}
	for _, sheet := range wb.Sheets {
		if len(sheet.Cells) == 0 {
			// empty cells display as nothing
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		c := sheet.Cells[0]
		fmt.Fprintln(cmd.OutOrStdout(), c.Value)
		if c.Error != "" {
			return fmt.Errorf("cell %s: %s", c.Cell, c.Error)
		}
	}
	return nil
}
