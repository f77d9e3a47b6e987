package wizard

import (
	"fmt"

	"github.com/jonathan/student-profile/internal/clienterr"
	"github.com/jonathan/student-profile/internal/types"
)

// CheckStep reports whether d satisfies the gate for step. The error, when not nil, is a
// *clienterr.ValidationError listing the missing fields.
func CheckStep(step Step, d types.ProfileDraft) error {
	if verr := validateStep(step, d); verr != nil {
		return verr
	}
	return nil
}

// validateStep runs the gate for step against d. It returns nil when the step may be left
// forward, or a ValidationError naming the missing fields.
func validateStep(step Step, d types.ProfileDraft) *clienterr.ValidationError {
	var missing []string
	switch step {
	case StepPersonal:
		if d.Personal.FirstName == "" {
			missing = append(missing, "firstName")
		}
		if d.Personal.LastName == "" {
			missing = append(missing, "lastName")
		}
		if d.Personal.Email == "" {
			missing = append(missing, "email")
		}
	case StepEducation:
		if d.Education.CurrentLevel == "" {
			missing = append(missing, "currentLevel")
		}
		if d.Education.Institution == "" {
			missing = append(missing, "institution")
		}
	case StepSkills:
		if !hasNamedSkill(d.Skills) {
			missing = append(missing, "skills")
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &clienterr.ValidationError{
		Field:   string(stepSection(step)),
		Message: fmt.Sprintf("please fill in all required %s fields", step),
		Missing: missing,
	}
}

// hasNamedSkill reports whether any of the three lists holds an entry with a name.
func hasNamedSkill(s types.Skills) bool {
	for _, e := range s.Technical {
		if e.Skill != "" {
			return true
		}
	}
	for _, e := range s.Soft {
		if e.Skill != "" {
			return true
		}
	}
	for _, e := range s.Languages {
		if e.Language != "" {
			return true
		}
	}
	return false
}

func stepSection(step Step) Section {
	switch step {
	case StepEducation:
		return SectionEducation
	case StepSkills:
		return SectionSkills
	default:
		return SectionPersonal
	}
}
