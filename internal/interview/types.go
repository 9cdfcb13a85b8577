// Package interview implements the three-stage agent pipeline: resume
// analysis, contextual interview dialogue, and transcript evaluation.
package interview

// Speaker identifies who produced a dialogue turn.
type Speaker string

// Speakers recognized in a conversation history.
const (
	SpeakerSystem    Speaker = "system"
	SpeakerAssistant Speaker = "assistant"
	SpeakerCandidate Speaker = "candidate"
)

// DialogueTurn is one utterance in an interview conversation. The ordered
// sequence of turns is owned by the caller: the server is stateless across
// calls and never mutates a history in place.
type DialogueTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Project is one resume project surfaced by the analyzer.
type Project struct {
	Name         string   `json:"name,omitempty"`
	TechStack    []string `json:"tech_stack,omitempty"`
	Contribution string   `json:"contribution,omitempty"`
	ProbeAngle   string   `json:"probe_angle,omitempty"`
}

// CandidateProfile is the structured extraction of a resume. Every field is
// optional: downstream consumers must tolerate partial profiles, since the
// analyzer's reply is best-effort. The profile is never persisted; callers
// round-trip it back on subsequent requests.
type CandidateProfile struct {
	Name              string    `json:"name,omitempty"`
	ExperienceYears   string    `json:"experience_years,omitempty"`
	Skills            []string  `json:"skills,omitempty"`
	Projects          []Project `json:"projects,omitempty"`
	Summary           string    `json:"summary,omitempty"`
	Strengths         []string  `json:"strengths,omitempty"`
	ProbeAreas        []string  `json:"probe_areas,omitempty"`
	TargetedQuestions []string  `json:"targeted_questions,omitempty"`
}

// Recommendation is the evaluator's overall hiring verdict.
type Recommendation string

// Recommendation values, strongest to weakest.
const (
	StrongRecommend Recommendation = "strong_recommend"
	Recommend       Recommendation = "recommend"
	Maybe           Recommendation = "maybe"
	NotRecommend    Recommendation = "not_recommend"
)

// EvaluationReport is the structured scorecard for a completed interview.
// Scorecard values are 1-5; a nil entry means the criterion could not be
// assessed (resume_consistency is null when no resume was supplied).
type EvaluationReport struct {
	Scorecard          map[string]*int `json:"scorecard"`
	Summary            string          `json:"summary"`
	Recommendation     Recommendation  `json:"recommendation"`
	ResumeVerification string          `json:"resume_verification,omitempty"`
}
