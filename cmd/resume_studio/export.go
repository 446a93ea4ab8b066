package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a markdown resume to PDF",
	Long:  `Lays out a markdown resume as paginated A4 pages and writes the PDF.`,
	RunE:  runExportCmd,
}

var (
	exportIn  string
	exportOut string
)

func init() {
	exportCmd.Flags().StringVarP(&exportIn, "in", "i", "", "Path to the markdown resume file (required)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output PDF path (default: input path with .pdf extension)")
	_ = exportCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(exportCmd)
}

func runExportCmd(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(exportIn)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	pdfBytes, err := export.Render(string(data))
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = strings.TrimSuffix(exportIn, ".md") + ".pdf"
	}

	if err := os.WriteFile(out, pdfBytes, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("PDF written to %s\n", out)
	return nil
}
