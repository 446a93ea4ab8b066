// Package parsing turns raw AI service output into validated, strictly typed
// optimization results. A response that fails schema validation is terminal
// for the request; the caller keeps whatever state it had before.
package parsing

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/prompts"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// Optimize sends the resume and target role to the AI service and parses the
// structured response. No partial result is ever returned: on any failure the
// result is nil and the error says which boundary failed.
func Optimize(ctx context.Context, client llm.Client, req *types.OptimizationRequest) (*types.OptimizationResult, error) {
	prompt := BuildOptimizationPrompt(req)

	// Full rewriting needs the advanced tier.
	raw, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate optimization", Cause: err}
	}

	return ParseOptimizationResult(raw)
}

// ParseOptimizationResult validates raw response text against the response
// schema and unmarshals it.
func ParseOptimizationResult(raw string) (*types.OptimizationResult, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateOptimizationResult([]byte(cleaned)); err != nil {
		return nil, &ResponseShapeError{Message: "response failed schema validation", Cause: err}
	}

	var result types.OptimizationResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &ResponseShapeError{Message: "failed to parse JSON response", Cause: err}
	}

	return &result, nil
}

// BuildOptimizationPrompt assembles the rewrite prompt from the request. The
// job description and extra context clauses are only included when provided.
func BuildOptimizationPrompt(req *types.OptimizationRequest) string {
	seniorityClause := ""
	if req.Seniority != "" {
		seniorityClause = " at " + req.Seniority + " level"
	}

	jobClause := ""
	if req.JobDescription != "" {
		jobClause = prompts.Format(
			prompts.MustGet("optimization.json", "job-description-clause"),
			map[string]string{"JobDescription": req.JobDescription},
		)
	}

	contextClause := ""
	if req.ExtraContext != "" {
		contextClause = prompts.Format(
			prompts.MustGet("optimization.json", "extra-context-clause"),
			map[string]string{"ExtraContext": req.ExtraContext},
		)
	}

	template := prompts.MustGet("optimization.json", "optimize-resume")
	return prompts.Format(template, map[string]string{
		"ResumeText":           req.ResumeText,
		"TargetTitle":          req.TargetTitle,
		"SeniorityClause":      seniorityClause,
		"JobDescriptionClause": jobClause,
		"ExtraContextClause":   contextClause,
	})
}
