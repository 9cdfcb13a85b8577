package interview

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jonathan/interview-platform/internal/llm"
	"github.com/jonathan/interview-platform/internal/prompts"
	"github.com/jonathan/interview-platform/internal/schemas"
)

// Evaluator scores a completed interview transcript.
type Evaluator struct {
	client llm.Client
	roles  *RoleTable
}

// NewEvaluator creates an evaluator over the fixed role table.
func NewEvaluator(client llm.Client, roles *RoleTable) *Evaluator {
	return &Evaluator{client: client, roles: roles}
}

// Evaluate renders the evaluation instructions and requests one structured
// scorecard. The resume-verification section is present only when a profile
// is supplied; without one the instructions explicitly tell the model to
// null out the resume-consistency score. Returns *EvaluationReport or a
// *llm.Fallback when the reply cannot be decoded. Single call, no retries.
func (e *Evaluator) Evaluate(ctx context.Context, transcript, roleID string, profile *CandidateProfile) (any, error) {
	role := e.roles.Get(roleID)

	template := prompts.MustGet("interview.json", "transcript-evaluator")
	prompt := prompts.Render(template, map[string]string{
		"ROLE":                roleLabel(role.ID),
		"TRANSCRIPT":          transcript,
		"RESUME_EVAL_CONTEXT": ResumeEvalContext(profile),
	})

	reply, err := e.client.GenerateContent(ctx, prompt, llm.TierAdvanced, llm.Options{
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}

	jsonText, ok := llm.ExtractJSON(reply)
	if !ok {
		return &llm.Fallback{Error: llm.FallbackMessage, Raw: reply}, nil
	}

	var report EvaluationReport
	if err := json.Unmarshal([]byte(jsonText), &report); err != nil {
		return &llm.Fallback{Error: llm.FallbackMessage, Raw: reply}, nil
	}

	if err := schemas.ValidateEvaluation(jsonText); err != nil {
		log.Printf("[evaluate] report failed schema validation: %v", err)
	}

	return &report, nil
}
