package interview

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jonathan/interview-platform/internal/llm"
	"github.com/jonathan/interview-platform/internal/prompts"
	"github.com/jonathan/interview-platform/internal/schemas"
)

// Analyzer synthesizes a CandidateProfile from raw resume text.
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer creates an analyzer backed by the given LLM client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze invokes the reasoning service with the fixed analyzer instructions
// and the resume text. It returns either a *CandidateProfile or, when the
// reply cannot be decoded, a *llm.Fallback carrying the raw reply for
// diagnostic use. Decode failure is not an error; only an upstream failure is.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string) (any, error) {
	template := prompts.MustGet("interview.json", "resume-analyzer")
	prompt := prompts.Render(template, map[string]string{
		"RESUME_TEXT": resumeText,
	})

	reply, err := a.client.GenerateContent(ctx, prompt, llm.TierAdvanced, llm.Options{
		Temperature: 0.2,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, err
	}

	jsonText, ok := llm.ExtractJSON(reply)
	if !ok {
		return &llm.Fallback{Error: llm.FallbackMessage, Raw: reply}, nil
	}

	var profile CandidateProfile
	if err := json.Unmarshal([]byte(jsonText), &profile); err != nil {
		return &llm.Fallback{Error: llm.FallbackMessage, Raw: reply}, nil
	}

	// Advisory only: a profile that fails its schema is still returned.
	if err := schemas.ValidateProfile(jsonText); err != nil {
		log.Printf("[analyze] profile failed schema validation: %v", err)
	}

	return &profile, nil
}
