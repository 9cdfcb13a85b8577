package interview

import (
	"fmt"
	"strings"
)

// Placeholder strings used when a profile field is absent. Each labeled
// field defaults independently so a partial profile still renders a
// complete context block.
const (
	notAvailable   = "Not available"
	noneIdentified = "None identified"
)

// ResumeContext builds the labeled context block substituted into the
// interviewer instructions.
func ResumeContext(p *CandidateProfile) string {
	var sb strings.Builder

	sb.WriteString("Candidate name: " + valueOr(p.Name, notAvailable) + "\n")
	sb.WriteString("Years of experience: " + valueOr(p.ExperienceYears, notAvailable) + "\n")
	sb.WriteString("Key skills: " + joinOr(p.Skills, noneIdentified) + "\n")

	if len(p.Projects) == 0 {
		sb.WriteString("Projects: " + noneIdentified + "\n")
	} else {
		sb.WriteString("Projects:\n")
		for _, project := range p.Projects {
			sb.WriteString(fmt.Sprintf("  - %s (%s): %s\n",
				valueOr(project.Name, notAvailable),
				joinOr(project.TechStack, notAvailable),
				valueOr(project.Contribution, notAvailable)))
			if project.ProbeAngle != "" {
				sb.WriteString("    Probe angle: " + project.ProbeAngle + "\n")
			}
		}
	}

	sb.WriteString("Profile summary: " + valueOr(p.Summary, notAvailable) + "\n")
	sb.WriteString("Strengths: " + joinOr(p.Strengths, noneIdentified) + "\n")
	sb.WriteString("Areas to probe: " + joinOr(p.ProbeAreas, noneIdentified) + "\n")

	if len(p.TargetedQuestions) == 0 {
		sb.WriteString("Targeted questions: " + noneIdentified + "\n")
	} else {
		sb.WriteString("Targeted questions:\n")
		for _, question := range p.TargetedQuestions {
			sb.WriteString("  - " + question + "\n")
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// ResumeEvalContext builds the resume-verification section of the evaluator
// instructions. A nil profile yields an explicit no-resume notice that
// instructs the model to null out the resume-consistency score.
func ResumeEvalContext(p *CandidateProfile) string {
	if p == nil {
		return "RESUME VERIFICATION:\nNo resume data is available for this candidate. " +
			"Set resume_consistency to null and leave resume_verification as an empty string."
	}

	var sb strings.Builder
	sb.WriteString("RESUME VERIFICATION:\n")
	sb.WriteString("Compare the candidate's interview answers against the resume claims below. ")
	sb.WriteString("Note agreement or contradictions in resume_verification and score resume_consistency accordingly.\n")
	sb.WriteString("Claimed name: " + valueOr(p.Name, notAvailable) + "\n")
	sb.WriteString("Claimed experience: " + valueOr(p.ExperienceYears, notAvailable) + "\n")
	sb.WriteString("Claimed skills: " + joinOr(p.Skills, noneIdentified) + "\n")

	if len(p.Projects) > 0 {
		sb.WriteString("Claimed projects:\n")
		for _, project := range p.Projects {
			sb.WriteString(fmt.Sprintf("  - %s: %s\n",
				valueOr(project.Name, notAvailable),
				valueOr(project.Contribution, notAvailable)))
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
