package wizard

import (
	"fmt"

	"github.com/jonathan/student-profile/internal/types"
)

// Section names a top-level block of the draft. Values match the JSON block names.
type Section string

// Draft sections.
const (
	SectionPersonal  Section = "personalInfo"
	SectionEducation Section = "education"
	SectionSkills    Section = "skills"
)

// SkillList selects one of the three skill lists.
type SkillList string

// Skill lists.
const (
	TechnicalSkills SkillList = "technical"
	SoftSkills      SkillList = "soft"
	Languages       SkillList = "languages"
)

// setter writes v into one field of d and reports whether v had an acceptable type.
type setter func(d *types.ProfileDraft, v any) bool

func stringField(get func(d *types.ProfileDraft) *string) setter {
	return func(d *types.ProfileDraft, v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		*get(d) = s
		return true
	}
}

// fieldSetters is the field table behind UpdateField. Keys are the JSON field names.
var fieldSetters = map[Section]map[string]setter{
	SectionPersonal: {
		"firstName":      stringField(func(d *types.ProfileDraft) *string { return &d.Personal.FirstName }),
		"lastName":       stringField(func(d *types.ProfileDraft) *string { return &d.Personal.LastName }),
		"email":          stringField(func(d *types.ProfileDraft) *string { return &d.Personal.Email }),
		"phone":          stringField(func(d *types.ProfileDraft) *string { return &d.Personal.Phone }),
		"dateOfBirth":    stringField(func(d *types.ProfileDraft) *string { return &d.Personal.DateOfBirth }),
		"gender":         stringField(func(d *types.ProfileDraft) *string { return &d.Personal.Gender }),
		"location":       stringField(func(d *types.ProfileDraft) *string { return &d.Personal.Location }),
		"profilePicture": stringField(func(d *types.ProfileDraft) *string { return &d.Personal.ProfilePicture }),
		"bio":            stringField(func(d *types.ProfileDraft) *string { return &d.Personal.Bio }),
		"linkedinUrl":    stringField(func(d *types.ProfileDraft) *string { return &d.Personal.LinkedinURL }),
		"githubUrl":      stringField(func(d *types.ProfileDraft) *string { return &d.Personal.GithubURL }),
		"portfolioUrl":   stringField(func(d *types.ProfileDraft) *string { return &d.Personal.PortfolioURL }),
	},
	SectionEducation: {
		"currentLevel": func(d *types.ProfileDraft, v any) bool {
			switch lv := v.(type) {
			case types.EducationLevel:
				d.Education.CurrentLevel = lv
			case string:
				d.Education.CurrentLevel = types.EducationLevel(lv)
			default:
				return false
			}
			return true
		},
		"institution":    stringField(func(d *types.ProfileDraft) *string { return &d.Education.Institution }),
		"field":          stringField(func(d *types.ProfileDraft) *string { return &d.Education.Field }),
		"graduationYear": stringField(func(d *types.ProfileDraft) *string { return &d.Education.GraduationYear }),
		"cgpa": func(d *types.ProfileDraft, v any) bool {
			switch g := v.(type) {
			case nil:
				d.Education.CGPA = nil
			case float64:
				d.Education.CGPA = types.Float64(g)
			case *float64:
				if g == nil {
					d.Education.CGPA = nil
				} else {
					d.Education.CGPA = types.Float64(*g)
				}
			default:
				return false
			}
			return true
		},
		"achievements": func(d *types.ProfileDraft, v any) bool {
			list, ok := v.([]string)
			if !ok {
				return false
			}
			d.Education.Achievements = copyList(list)
			return true
		},
	},
	SectionSkills: {
		"technical": func(d *types.ProfileDraft, v any) bool {
			list, ok := v.([]types.SkillEntry)
			if !ok {
				return false
			}
			d.Skills.Technical = copyList(list)
			return true
		},
		"soft": func(d *types.ProfileDraft, v any) bool {
			list, ok := v.([]types.SkillEntry)
			if !ok {
				return false
			}
			d.Skills.Soft = copyList(list)
			return true
		},
		"languages": func(d *types.ProfileDraft, v any) bool {
			list, ok := v.([]types.LanguageEntry)
			if !ok {
				return false
			}
			d.Skills.Languages = copyList(list)
			return true
		},
	},
}

// applyField writes one field into a copy of d. d itself is never modified.
func applyField(d types.ProfileDraft, section Section, field string, value any) (types.ProfileDraft, error) {
	fields, ok := fieldSetters[section]
	if !ok {
		return d, &FieldError{Section: section, Field: field, Reason: "unknown section"}
	}
	set, ok := fields[field]
	if !ok {
		return d, &FieldError{Section: section, Field: field, Reason: "unknown field"}
	}
	next := d
	if !set(&next, value) {
		return d, &FieldError{Section: section, Field: field, Reason: fmt.Sprintf("unsupported value type %T", value)}
	}
	return next, nil
}

// copyList returns a fresh slice so the caller's list and the draft never alias.
func copyList[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func appendItem[T any](s []T, item T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, item)
}

// replaceAt returns a copy of s with s[i] = item, or s unchanged when i is out of range.
func replaceAt[T any](s []T, i int, item T) ([]T, bool) {
	if i < 0 || i >= len(s) {
		return s, false
	}
	out := copyList(s)
	out[i] = item
	return out, true
}

// removeAt returns a copy of s without s[i], or s unchanged when i is out of range.
func removeAt[T any](s []T, i int) ([]T, bool) {
	if i < 0 || i >= len(s) {
		return s, false
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), true
}

// skillListField maps a SkillList to its field name in the skills section.
func skillListField(list SkillList) (string, error) {
	switch list {
	case TechnicalSkills, SoftSkills, Languages:
		return string(list), nil
	default:
		return "", &FieldError{Section: SectionSkills, Field: string(list), Reason: "unknown skill list"}
	}
}

// appendSkillEntry appends a fully empty entry to list.
func appendSkillEntry(d types.ProfileDraft, list SkillList) types.ProfileDraft {
	switch list {
	case TechnicalSkills:
		d.Skills.Technical = appendItem(d.Skills.Technical, types.SkillEntry{})
	case SoftSkills:
		d.Skills.Soft = appendItem(d.Skills.Soft, types.SkillEntry{})
	case Languages:
		d.Skills.Languages = appendItem(d.Skills.Languages, types.LanguageEntry{})
	}
	return d
}

func setSkillEntry(d types.ProfileDraft, list SkillList, i int, name, level string) (types.ProfileDraft, bool) {
	var changed bool
	switch list {
	case TechnicalSkills:
		d.Skills.Technical, changed = replaceAt(d.Skills.Technical, i, types.SkillEntry{Skill: name, Level: types.SkillLevel(level)})
	case SoftSkills:
		d.Skills.Soft, changed = replaceAt(d.Skills.Soft, i, types.SkillEntry{Skill: name, Level: types.SkillLevel(level)})
	case Languages:
		d.Skills.Languages, changed = replaceAt(d.Skills.Languages, i, types.LanguageEntry{Language: name, Proficiency: types.Proficiency(level)})
	}
	return d, changed
}

func removeSkillEntry(d types.ProfileDraft, list SkillList, i int) (types.ProfileDraft, bool) {
	var changed bool
	switch list {
	case TechnicalSkills:
		d.Skills.Technical, changed = removeAt(d.Skills.Technical, i)
	case SoftSkills:
		d.Skills.Soft, changed = removeAt(d.Skills.Soft, i)
	case Languages:
		d.Skills.Languages, changed = removeAt(d.Skills.Languages, i)
	}
	return d, changed
}
