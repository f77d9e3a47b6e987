package autofill

import (
	"strconv"
	"strings"

	"github.com/jonathan/student-profile/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Merge applies parsed onto a copy of d with overwrite-on-present semantics: every field
// present in parsed replaces the draft value, whether or not the user already typed one;
// absent fields leave the draft untouched. d is never modified.
func Merge(d types.ProfileDraft, parsed *ParsedProfile) types.ProfileDraft {
	out := d.Clone()
	if parsed == nil {
		return out
	}

	if p := parsed.Personal; p != nil {
		if first, last := splitName(p.Name.String()); first != "" {
			out.Personal.FirstName = first
			if last != "" {
				out.Personal.LastName = last
			}
		}
		overwrite(&out.Personal.Email, p.Email)
		overwrite(&out.Personal.Phone, p.Phone)
		overwrite(&out.Personal.Location, p.Location)
	}

	if e := parsed.Education; e != nil {
		if level := NormalizeEducationLevel(e.CurrentLevel.String()); level != "" {
			out.Education.CurrentLevel = level
		}
		overwrite(&out.Education.Institution, e.Institution)
		overwrite(&out.Education.Field, e.Field)
		overwrite(&out.Education.GraduationYear, e.GraduationYear)
		if gpa, ok := parseGPA(e.CGPA.String()); ok {
			out.Education.CGPA = types.Float64(gpa)
		}
		if achievements := presentTexts(e.Achievements); len(achievements) > 0 {
			out.Education.Achievements = achievements
		}
	}

	if technical := mapSkillEntries(parsed.TechnicalSkills); len(technical) > 0 {
		out.Skills.Technical = technical
	}
	if soft := mapSkillEntries(parsed.SoftSkills); len(soft) > 0 {
		out.Skills.Soft = soft
	}
	if langs := mapLanguageEntries(parsed.Languages); len(langs) > 0 {
		out.Skills.Languages = langs
	}

	return out
}

func overwrite(dst *string, v types.Text) {
	if v.Present() {
		*dst = v.String()
	}
}

// splitName splits a full name into the first token and the remainder.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// parseGPA accepts "8.5", "8.5/10" and "3.7 GPA" style values.
func parseGPA(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i := strings.IndexAny(s, "/ "); i > 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func presentTexts(in []types.Text) []string {
	var out []string
	for _, t := range in {
		if t.Present() {
			out = append(out, t.String())
		}
	}
	return out
}

func mapSkillEntries(in []ParsedSkill) []types.SkillEntry {
	var out []types.SkillEntry
	for _, s := range in {
		if !s.Name.Present() {
			continue
		}
		out = append(out, types.SkillEntry{
			Skill: s.Name.String(),
			Level: NormalizeSkillLevel(s.Level.String()),
		})
	}
	return out
}

func mapLanguageEntries(in []ParsedLanguage) []types.LanguageEntry {
	var out []types.LanguageEntry
	for _, l := range in {
		if !l.Name.Present() {
			continue
		}
		out = append(out, types.LanguageEntry{
			Language:    l.Name.String(),
			Proficiency: NormalizeProficiency(l.Proficiency.String()),
		})
	}
	return out
}

func titleCase(s string) string {
	// A Caser is stateful, so one is built per call.
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
}

var skillLevelAliases = map[string]types.SkillLevel{
	"Basic":       types.SkillBeginner,
	"Novice":      types.SkillBeginner,
	"Elementary":  types.SkillBeginner,
	"Proficient":  types.SkillAdvanced,
	"Experienced": types.SkillAdvanced,
	"Master":      types.SkillExpert,
}

// NormalizeSkillLevel maps a free-text level onto the SkillLevel enum. Unknown values map to
// the empty level so the user picks one.
func NormalizeSkillLevel(s string) types.SkillLevel {
	t := titleCase(s)
	switch lv := types.SkillLevel(t); lv {
	case types.SkillBeginner, types.SkillIntermediate, types.SkillAdvanced, types.SkillExpert:
		return lv
	}
	return skillLevelAliases[t]
}

var proficiencyAliases = map[string]types.Proficiency{
	"Beginner":       types.ProficiencyBasic,
	"Elementary":     types.ProficiencyBasic,
	"Conversational": types.ProficiencyIntermediate,
	"Fluent":         types.ProficiencyAdvanced,
	"Professional":   types.ProficiencyAdvanced,
	"Native Speaker": types.ProficiencyNative,
	"Mother Tongue":  types.ProficiencyNative,
	"Bilingual":      types.ProficiencyNative,
}

// NormalizeProficiency maps a free-text proficiency onto the Proficiency enum.
func NormalizeProficiency(s string) types.Proficiency {
	t := titleCase(s)
	switch p := types.Proficiency(t); p {
	case types.ProficiencyBasic, types.ProficiencyIntermediate, types.ProficiencyAdvanced, types.ProficiencyNative:
		return p
	}
	return proficiencyAliases[t]
}

// NormalizeEducationLevel maps free-text degree names onto the EducationLevel enum. Blank input
// returns "" (absent); anything unrecognized returns LevelOther.
func NormalizeEducationLevel(s string) types.EducationLevel {
	l := strings.ToLower(strings.TrimSpace(s))
	if l == "" {
		return ""
	}
	switch types.EducationLevel(l) {
	case types.LevelHighSchool, types.LevelBachelors, types.LevelMasters, types.LevelPhD, types.LevelOther:
		return types.EducationLevel(l)
	}
	compact := strings.NewReplacer(".", "", "'", "", "’", "").Replace(l)
	switch {
	case strings.Contains(compact, "phd"), strings.Contains(compact, "doctor"):
		return types.LevelPhD
	case strings.Contains(compact, "master"), strings.HasPrefix(compact, "ms"), strings.HasPrefix(compact, "mtech"),
		strings.HasPrefix(compact, "mba"):
		return types.LevelMasters
	case strings.Contains(compact, "bachelor"), strings.HasPrefix(compact, "bs"), strings.HasPrefix(compact, "btech"),
		strings.HasPrefix(compact, "be "), compact == "be", strings.HasPrefix(compact, "ba"):
		return types.LevelBachelors
	case strings.Contains(compact, "high school"), strings.Contains(compact, "secondary"):
		return types.LevelHighSchool
	default:
		return types.LevelOther
	}
}
