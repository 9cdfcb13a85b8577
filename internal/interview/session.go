package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/interview-platform/internal/llm"
	"github.com/jonathan/interview-platform/internal/prompts"
)

// SessionManager produces the next assistant turn of an interview. It is
// stateless: each call is a pure function of (history, role, profile), and
// conversation continuity is entirely the caller's responsibility.
type SessionManager struct {
	client llm.Client
	roles  *RoleTable
}

// NewSessionManager creates a session manager over the fixed role table.
func NewSessionManager(client llm.Client, roles *RoleTable) *SessionManager {
	return &SessionManager{client: client, roles: roles}
}

// Instructions renders the full interviewer instruction document for a role
// and optional profile. The one-question-per-turn and stage-progression
// rules live only in this rendered text; the model's compliance is not
// verified server-side.
func (m *SessionManager) Instructions(roleID string, profile *CandidateProfile) string {
	role := m.roles.Get(roleID)

	subs := map[string]string{
		"ROLE": roleLabel(role.ID),
	}
	if profile != nil {
		subs["RESUME_CONTEXT"] = ResumeContext(profile)
	}

	template := prompts.MustGet("interview.json", "interviewer-system")
	return prompts.Render(template, subs)
}

// NextTurn returns the next assistant utterance. With an empty history it
// returns an opening line without invoking the model; otherwise it renders
// the instructions as the leading system turn, appends the caller's history,
// and requests exactly one assistant turn.
func (m *SessionManager) NextTurn(ctx context.Context, history []DialogueTurn, roleID string, profile *CandidateProfile) (string, error) {
	role := m.roles.Get(roleID)

	if len(history) == 0 {
		return m.openingLine(role, profile), nil
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: m.Instructions(roleID, profile),
	})
	for _, turn := range history {
		messages = append(messages, llm.Message{
			Role:    chatRole(turn.Speaker),
			Content: turn.Text,
		})
	}

	// Temperature tuned for conversational consistency, not creativity.
	reply, err := m.client.Chat(ctx, messages, llm.TierStandard, llm.Options{
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(reply), nil
}

// openingLine picks the first assistant utterance of a session. A profile
// with a resolvable name gets a personalized greeting referencing up to the
// first three listed skills; otherwise the role's canned greeting is used.
func (m *SessionManager) openingLine(role RoleConfig, profile *CandidateProfile) string {
	if profile == nil || strings.TrimSpace(profile.Name) == "" {
		return role.Greeting
	}

	name := strings.TrimSpace(profile.Name)
	skills := profile.Skills
	if len(skills) > 3 {
		skills = skills[:3]
	}

	if len(skills) == 0 {
		return fmt.Sprintf("Hi %s, thanks for joining today! I've read through your resume and I'm looking forward to our conversation. To get us started, tell me a bit about yourself and your recent work.", name)
	}

	return fmt.Sprintf("Hi %s, thanks for joining today! I've read through your resume and I see you've worked with %s. To get us started, tell me a bit about yourself and your recent work.", name, humanJoin(skills))
}

// chatRole maps a dialogue speaker onto a chat-completions role.
func chatRole(speaker Speaker) string {
	switch speaker {
	case SpeakerSystem:
		return llm.RoleSystem
	case SpeakerAssistant:
		return llm.RoleAssistant
	default:
		return llm.RoleUser
	}
}

// humanJoin joins items with commas and a final "and".
func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
