package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-platform/internal/llm"
)

func TestAnalyze_DecodesProfile(t *testing.T) {
	client := &stubClient{reply: `Here is the analysis:
{"name": "Ava Chen", "experience_years": "5", "skills": ["Go", "PostgreSQL"], "summary": "Backend engineer."}`}
	analyzer := NewAnalyzer(client)

	result, err := analyzer.Analyze(context.Background(), "Ava Chen. 5 years building Go services on PostgreSQL.")
	require.NoError(t, err)

	profile, ok := result.(*CandidateProfile)
	require.True(t, ok, "expected *CandidateProfile, got %T", result)
	assert.Equal(t, "Ava Chen", profile.Name)
	assert.Equal(t, "5", profile.ExperienceYears)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.Skills)
}

func TestAnalyze_PromptContainsResumeText(t *testing.T) {
	client := &stubClient{reply: `{"name": "Ava"}`}
	analyzer := NewAnalyzer(client)

	_, err := analyzer.Analyze(context.Background(), "UNIQUE-RESUME-MARKER experience with Kafka")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "UNIQUE-RESUME-MARKER")
	assert.NotContains(t, client.prompts[0], "{{RESUME_TEXT}}")
}

func TestAnalyze_UndecodableReplyReturnsFallback(t *testing.T) {
	client := &stubClient{reply: "I could not find structured information in this resume."}
	analyzer := NewAnalyzer(client)

	result, err := analyzer.Analyze(context.Background(), "resume text")
	require.NoError(t, err, "decode failure must not surface as an error")

	fallback, ok := result.(*llm.Fallback)
	require.True(t, ok, "expected *llm.Fallback, got %T", result)
	assert.Equal(t, llm.FallbackMessage, fallback.Error)
	assert.Equal(t, client.reply, fallback.Raw)
}

func TestAnalyze_UpstreamErrorPropagates(t *testing.T) {
	client := &stubClient{err: &llm.UpstreamError{StatusCode: 429, Message: "rate limited"}}
	analyzer := NewAnalyzer(client)

	_, err := analyzer.Analyze(context.Background(), "resume text")
	require.Error(t, err)

	var upstream *llm.UpstreamError
	assert.True(t, errors.As(err, &upstream))
}
