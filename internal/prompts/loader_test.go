package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompt(t *testing.T) {
	prompt, err := Get("interview.json", "interviewer-system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{ROLE}}")
	assert.Contains(t, prompt, "{{RESUME_CONTEXT}}")
	assert.Contains(t, prompt, "ONE question per turn")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("interview.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "interviewer-system")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("interview.json", "does-not-exist")
	})
}

func TestList_ContainsAllKeys(t *testing.T) {
	keys, err := List("interview.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "interviewer-system")
	assert.Contains(t, keys, "resume-analyzer")
	assert.Contains(t, keys, "transcript-evaluator")
}

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	out := Render("Role: {{ROLE}}, Context: {{RESUME_CONTEXT}}", map[string]string{
		"ROLE":           "software engineer",
		"RESUME_CONTEXT": "five years of Go",
	})

	assert.Equal(t, "Role: software engineer, Context: five years of Go", out)
}

func TestRender_BlanksUnresolvedPlaceholders(t *testing.T) {
	template := MustGet("interview.json", "interviewer-system")

	out := Render(template, map[string]string{"ROLE": "data analyst"})

	assert.NotContains(t, out, "{{RESUME_CONTEXT}}")
	assert.NotContains(t, out, "{{")
	assert.Contains(t, out, "data analyst")
}

func TestRender_Deterministic(t *testing.T) {
	template := MustGet("interview.json", "interviewer-system")
	subs := map[string]string{"ROLE": "software engineer", "RESUME_CONTEXT": "context block"}

	first := Render(template, subs)
	second := Render(template, subs)

	assert.Equal(t, first, second)
	assert.True(t, strings.Contains(first, "context block"))
}

func TestRender_ValuesAreNotReexpanded(t *testing.T) {
	// Resume text is caller-controlled and may itself contain
	// placeholder-shaped tokens; those must pass through verbatim.
	out := Render("Role: {{ROLE}}\nContext: {{RESUME_CONTEXT}}", map[string]string{
		"ROLE":           "software engineer",
		"RESUME_CONTEXT": "candidate wrote {{ROLE}} and {{UNKNOWN}} in their resume",
	})

	assert.Equal(t, "Role: software engineer\nContext: candidate wrote {{ROLE}} and {{UNKNOWN}} in their resume", out)
}

func TestRender_TokenBearingValueDeterministic(t *testing.T) {
	template := MustGet("interview.json", "interviewer-system")
	subs := map[string]string{
		"ROLE":           "software engineer",
		"RESUME_CONTEXT": "Profile summary: loves {{ROLE}} work",
	}

	first := Render(template, subs)
	for i := 0; i < 200; i++ {
		assert.Equal(t, first, Render(template, subs))
	}
	assert.Contains(t, first, "loves {{ROLE}} work")
}
