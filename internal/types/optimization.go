// Package types provides type definitions for structured data used throughout the resume-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// OptimizationRequest carries everything needed to rewrite a resume for a target role.
// Exactly one of JobDescription or JobURL may be set; both empty is allowed.
type OptimizationRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	TargetTitle    string `json:"target_title" validate:"required,max=200"`
	Seniority      string `json:"seniority,omitempty" validate:"max=100"`
	JobDescription string `json:"job_description,omitempty"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
	ExtraContext   string `json:"extra_context,omitempty"`
}

// OptimizationResult is the structured response from the AI service.
// OptimizedText is markdown in the dialect understood by the layout engine
// (#, ##, ###, -/* prefixes and **bold** spans).
type OptimizationResult struct {
	OptimizedText   string   `json:"optimized_text"`
	KeyChanges      []string `json:"key_changes"`
	SuggestedSkills []string `json:"suggested_skills"`
	ATSScore        int      `json:"ats_score"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request for missing or malformed fields.
// These are the inline, user-correctable errors; nothing here is terminal.
func (r *OptimizationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.JobDescription != "" && r.JobURL != "" {
		return &FieldError{Field: "job_url", Message: "job_description and job_url are mutually exclusive"}
	}
	return nil
}

// FieldError reports a single invalid request field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return "invalid field " + e.Field + ": " + e.Message
}
