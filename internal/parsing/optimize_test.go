package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// stubClient returns canned responses for GenerateJSON.
type stubClient struct {
	response string
	err      error
	prompt   string
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }
func (s *stubClient) Close() error                  { return nil }

const validResponse = `{
	"optimized_text": "# Jane Doe\njane@x.com\n## Experience\n- Built **critical** systems",
	"key_changes": ["Quantified impact in experience bullets"],
	"suggested_skills": ["Terraform", "Kubernetes"],
	"ats_score": 82
}`

func optimizationRequest() *types.OptimizationRequest {
	return &types.OptimizationRequest{
		ResumeText:  "Jane Doe\nBuilt systems",
		TargetTitle: "Platform Engineer",
		Seniority:   "senior",
	}
}

func TestOptimize_Success(t *testing.T) {
	client := &stubClient{response: validResponse}

	result, err := Optimize(context.Background(), client, optimizationRequest())
	require.NoError(t, err)
	assert.Contains(t, result.OptimizedText, "# Jane Doe")
	assert.Equal(t, []string{"Quantified impact in experience bullets"}, result.KeyChanges)
	assert.Equal(t, []string{"Terraform", "Kubernetes"}, result.SuggestedSkills)
	assert.Equal(t, 82, result.ATSScore)
}

func TestOptimize_APIFailure(t *testing.T) {
	client := &stubClient{err: errors.New("quota exceeded")}

	result, err := Optimize(context.Background(), client, optimizationRequest())
	assert.Nil(t, result)
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestOptimize_MissingFieldIsTerminal(t *testing.T) {
	client := &stubClient{response: `{"optimized_text": "# Jane", "ats_score": 50}`}

	result, err := Optimize(context.Background(), client, optimizationRequest())
	assert.Nil(t, result)
	var shapeErr *ResponseShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestOptimize_MalformedJSONIsTerminal(t *testing.T) {
	client := &stubClient{response: "I could not produce JSON, sorry"}

	result, err := Optimize(context.Background(), client, optimizationRequest())
	assert.Nil(t, result)
	var shapeErr *ResponseShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestParseOptimizationResult_StripsCodeFences(t *testing.T) {
	result, err := ParseOptimizationResult("```json\n" + validResponse + "\n```")
	require.NoError(t, err)
	assert.Equal(t, 82, result.ATSScore)
}

func TestParseOptimizationResult_ScoreOutOfRange(t *testing.T) {
	_, err := ParseOptimizationResult(`{
		"optimized_text": "# Jane",
		"key_changes": [],
		"suggested_skills": [],
		"ats_score": 101
	}`)
	var shapeErr *ResponseShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestBuildOptimizationPrompt_IncludesRequestFields(t *testing.T) {
	req := optimizationRequest()
	req.JobDescription = "We need someone who knows Go."
	req.ExtraContext = "Prefers remote work."

	prompt := BuildOptimizationPrompt(req)
	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "Platform Engineer")
	assert.Contains(t, prompt, "at senior level")
	assert.Contains(t, prompt, "We need someone who knows Go.")
	assert.Contains(t, prompt, "Prefers remote work.")
}

func TestBuildOptimizationPrompt_OmitsEmptyClauses(t *testing.T) {
	prompt := BuildOptimizationPrompt(optimizationRequest())
	assert.NotContains(t, prompt, "Target job description")
	assert.NotContains(t, prompt, "Additional context from the candidate")
}
