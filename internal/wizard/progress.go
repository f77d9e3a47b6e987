package wizard

import (
	"strings"

	"github.com/jonathan/student-profile/internal/types"
)

// ComputeProgress returns the completion percentage of d in [0, 100]: the mean of the
// three section fill ratios. A list only counts as filled when it is non-empty and every
// element is filled, so a freshly appended empty entry lowers progress.
func ComputeProgress(d types.ProfileDraft) float64 {
	personal := ratio(personalFill(d.Personal))
	education := ratio(educationFill(d.Education))
	skills := ratio(skillsFill(d.Skills))
	return (personal + education + skills) / 3 * 100
}

func ratio(fills []bool) float64 {
	if len(fills) == 0 {
		return 0
	}
	n := 0
	for _, f := range fills {
		if f {
			n++
		}
	}
	return float64(n) / float64(len(fills))
}

func personalFill(p types.PersonalInfo) []bool {
	return []bool{
		p.FirstName != "",
		p.LastName != "",
		p.Email != "",
		p.Phone != "",
		p.DateOfBirth != "",
		p.Gender != "",
		p.Location != "",
		p.ProfilePicture != "",
		p.Bio != "",
		p.LinkedinURL != "",
		p.GithubURL != "",
		p.PortfolioURL != "",
	}
}

func educationFill(e types.Education) []bool {
	return []bool{
		e.CurrentLevel != "",
		e.Institution != "",
		e.Field != "",
		e.GraduationYear != "",
		e.CGPA != nil,
		listFilled(e.Achievements, func(s string) bool { return !blank(s) }),
	}
}

func skillsFill(s types.Skills) []bool {
	return []bool{
		listFilled(s.Technical, skillEntryFilled),
		listFilled(s.Soft, skillEntryFilled),
		listFilled(s.Languages, languageEntryFilled),
	}
}

// listFilled reports whether list is non-empty and every element is filled.
func listFilled[T any](list []T, filled func(T) bool) bool {
	if len(list) == 0 {
		return false
	}
	for _, item := range list {
		if !filled(item) {
			return false
		}
	}
	return true
}

// An object element is filled when at least one sub-property is non-blank.
func skillEntryFilled(e types.SkillEntry) bool {
	return !blank(e.Skill) || !blank(string(e.Level))
}

func languageEntryFilled(e types.LanguageEntry) bool {
	return !blank(e.Language) || !blank(string(e.Proficiency))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
