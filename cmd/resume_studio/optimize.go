package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/extraction"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/parsing"
	"github.com/jonathan/resume-studio/internal/types"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite a resume for a target role",
	Long: `Extracts text from a resume file (PDF, DOCX, or plain text), sends it to the
AI service together with the target role, and writes the rewritten markdown.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runOptimizeCmd,
}

var (
	optConfigPath string
	optResume     string
	optTitle      string
	optSeniority  string
	optJob        string
	optJobURL     string
	optContext    string
	optOut        string
	optAPIKey     string
	optVerbose    bool
)

func init() {
	// Config file flag (processed first)
	optimizeCmd.Flags().StringVar(&optConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	optimizeCmd.Flags().StringVarP(&optResume, "resume", "r", "", "Path to the resume file (PDF, DOCX, or plain text)")
	optimizeCmd.Flags().StringVarP(&optTitle, "title", "t", "", "Target job title")
	optimizeCmd.Flags().StringVarP(&optSeniority, "seniority", "s", "", "Target seniority level (optional)")
	optimizeCmd.Flags().StringVarP(&optJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	optimizeCmd.Flags().StringVar(&optJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	optimizeCmd.Flags().StringVar(&optContext, "context", "", "Path to extra candidate context text file (optional)")
	optimizeCmd.Flags().StringVarP(&optOut, "out", "o", "", "Output path for the optimized markdown (default: stdout)")
	optimizeCmd.Flags().BoolVarP(&optVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	optimizeCmd.Flags().StringVar(&optAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimizeCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadOptimizeConfig()
	if err != nil {
		return err
	}

	// Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Title == "" {
		return fmt.Errorf("--title is required (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	// API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	printer := observability.NewPrinter(os.Stdout)

	req, err := buildOptimizationRequest(ctx, cfg, printer)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintRequest(req)
	}

	client, err := llm.NewClient(ctx, llm.ConfigFromEnv(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	result, err := parsing.Optimize(ctx, client, req)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintResult(result)
	}

	if cfg.Out == "" {
		fmt.Println(result.OptimizedText)
		return nil
	}
	if err := os.WriteFile(cfg.Out, []byte(result.OptimizedText), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Optimized resume written to %s (ATS score %d/100)\n", cfg.Out, result.ATSScore)
	return nil
}

// loadOptimizeConfig merges the config file under the CLI flags: a flag that
// was given wins, an empty one falls back to the file value.
func loadOptimizeConfig() (config.Config, error) {
	flagCfg := config.Config{
		Resume:    optResume,
		Title:     optTitle,
		Seniority: optSeniority,
		Job:       optJob,
		JobURL:    optJobURL,
		Context:   optContext,
		Out:       optOut,
		APIKey:    optAPIKey,
		Verbose:   optVerbose,
	}

	if optConfigPath == "" {
		return flagCfg, nil
	}

	fileCfg, err := config.LoadConfig(optConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := fileCfg.Validate(); err != nil {
		return config.Config{}, err
	}

	merged := flagCfg.MergeWithDefaults(*fileCfg)
	// MergeWithDefaults skips bools; either source may turn verbose on.
	merged.Verbose = optVerbose || fileCfg.Verbose
	if merged.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", optConfigPath)
	}
	return merged, nil
}

// buildOptimizationRequest reads the input files and assembles the request.
func buildOptimizationRequest(ctx context.Context, cfg config.Config, printer *observability.Printer) (*types.OptimizationRequest, error) {
	data, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	resumeText, err := extraction.Extract(data, cfg.Resume)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		printer.PrintExtraction(cfg.Resume, resumeText)
	}

	req := &types.OptimizationRequest{
		ResumeText:  resumeText,
		TargetTitle: cfg.Title,
		Seniority:   cfg.Seniority,
	}

	if cfg.Job != "" {
		jobData, err := os.ReadFile(cfg.Job)
		if err != nil {
			return nil, fmt.Errorf("failed to read job file: %w", err)
		}
		req.JobDescription = string(jobData)
	} else if cfg.JobURL != "" {
		jobText, err := fetch.JobDescription(ctx, cfg.JobURL, nil)
		if err != nil {
			return nil, err
		}
		req.JobDescription = jobText
	}

	if cfg.Context != "" {
		contextData, err := os.ReadFile(cfg.Context)
		if err != nil {
			return nil, fmt.Errorf("failed to read context file: %w", err)
		}
		req.ExtraContext = string(contextData)
	}

	return req, nil
}
