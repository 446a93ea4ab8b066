// Package main provides the entry point for the Resume Studio CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_studio",
	Short: "Resume Studio editor and optimization service",
	Long:  "Resume Studio rewrites resumes in markdown for a target role using AI, previews them as paginated A4 documents, and exports them to PDF, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
