package interview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-platform/internal/llm"
)

const sampleTranscript = `Interviewer: Tell me about yourself.
Candidate: I spent five years building Go services.`

func TestEvaluate_DecodesReport(t *testing.T) {
	client := &stubClient{reply: `{
		"scorecard": {"technical_depth": 4, "communication": 5, "problem_solving": 4, "role_fit": 4, "resume_consistency": null},
		"summary": "Strong backend candidate.",
		"recommendation": "recommend",
		"resume_verification": ""
	}`}
	evaluator := NewEvaluator(client, NewRoleTable())

	result, err := evaluator.Evaluate(context.Background(), sampleTranscript, "software-engineer", nil)
	require.NoError(t, err)

	report, ok := result.(*EvaluationReport)
	require.True(t, ok, "expected *EvaluationReport, got %T", result)
	assert.Equal(t, Recommend, report.Recommendation)
	assert.Equal(t, "Strong backend candidate.", report.Summary)
	require.Contains(t, report.Scorecard, "technical_depth")
	require.NotNil(t, report.Scorecard["technical_depth"])
	assert.Equal(t, 4, *report.Scorecard["technical_depth"])
	assert.Nil(t, report.Scorecard["resume_consistency"])
}

func TestEvaluate_NoProfileInstructsNullConsistency(t *testing.T) {
	client := &stubClient{reply: `{"scorecard": {}, "summary": "ok", "recommendation": "maybe"}`}
	evaluator := NewEvaluator(client, NewRoleTable())

	_, err := evaluator.Evaluate(context.Background(), sampleTranscript, "software-engineer", nil)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "No resume data")
	assert.Contains(t, client.prompts[0], sampleTranscript)
}

func TestEvaluate_ProfileClaimsAppearInPrompt(t *testing.T) {
	client := &stubClient{reply: `{"scorecard": {}, "summary": "ok", "recommendation": "maybe"}`}
	evaluator := NewEvaluator(client, NewRoleTable())

	profile := &CandidateProfile{
		Name:            "Ava Chen",
		ExperienceYears: "5",
		Skills:          []string{"Go", "PostgreSQL", "Kafka"},
		Projects: []Project{
			{Name: "Billing", Contribution: "Led the migration to event sourcing"},
		},
	}

	_, err := evaluator.Evaluate(context.Background(), sampleTranscript, "software-engineer", profile)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Ava Chen")
	for _, skill := range profile.Skills {
		assert.Contains(t, prompt, skill)
	}
	assert.Contains(t, prompt, "Billing")
	assert.NotContains(t, prompt, "No resume data")
}

func TestEvaluate_UndecodableReplyReturnsFallback(t *testing.T) {
	client := &stubClient{reply: "The candidate did well overall, I would say four out of five."}
	evaluator := NewEvaluator(client, NewRoleTable())

	result, err := evaluator.Evaluate(context.Background(), sampleTranscript, "software-engineer", nil)
	require.NoError(t, err)

	fallback, ok := result.(*llm.Fallback)
	require.True(t, ok, "expected *llm.Fallback, got %T", result)
	assert.Equal(t, client.reply, fallback.Raw)
}
