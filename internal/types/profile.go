// Package types provides type definitions for structured data used throughout the student profile system.
package types

// EducationLevel is the current level of study selected in the education step.
type EducationLevel string

// Supported education levels.
const (
	LevelHighSchool EducationLevel = "high-school"
	LevelBachelors  EducationLevel = "bachelors"
	LevelMasters    EducationLevel = "masters"
	LevelPhD        EducationLevel = "phd"
	LevelOther      EducationLevel = "other"
)

// SkillLevel rates a technical or soft skill.
type SkillLevel string

// Supported skill levels.
const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// Proficiency rates a spoken language.
type Proficiency string

// Supported language proficiencies.
const (
	ProficiencyBasic        Proficiency = "Basic"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyNative       Proficiency = "Native"
)

// ProfileDraft is the in-progress, unsaved profile record being edited in the wizard.
// Its three sections are serialized independently when the profile is submitted.
type ProfileDraft struct {
	Personal  PersonalInfo `json:"personalInfo"`
	Education Education    `json:"education"`
	Skills    Skills       `json:"skills"`
}

// PersonalInfo holds contact and biographical fields. All fields are optional until submission.
type PersonalInfo struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female other prefer-not-to-say"`
	Location       string `json:"location"`
	ProfilePicture string `json:"profilePicture"` // filename of the attached image, empty when none
	Bio            string `json:"bio"`
	LinkedinURL    string `json:"linkedinUrl" validate:"omitempty,weburl"`
	GithubURL      string `json:"githubUrl" validate:"omitempty,weburl"`
	PortfolioURL   string `json:"portfolioUrl" validate:"omitempty,weburl"`
}

// Education describes the student's current studies.
type Education struct {
	CurrentLevel   EducationLevel `json:"currentLevel" validate:"omitempty,oneof=high-school bachelors masters phd other"`
	Institution    string         `json:"institution"`
	Field          string         `json:"field"`
	GraduationYear string         `json:"graduationYear"`
	CGPA           *float64       `json:"cgpa" validate:"omitempty,gte=0"`
	Achievements   []string       `json:"achievements"`
}

// Skills holds the three independently sized skill lists.
type Skills struct {
	Technical []SkillEntry    `json:"technical" validate:"dive"`
	Soft      []SkillEntry    `json:"soft" validate:"dive"`
	Languages []LanguageEntry `json:"languages" validate:"dive"`
}

// SkillEntry is one technical or soft skill.
type SkillEntry struct {
	Skill string     `json:"skill"`
	Level SkillLevel `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

// LanguageEntry is one spoken language.
type LanguageEntry struct {
	Language    string      `json:"language"`
	Proficiency Proficiency `json:"proficiency" validate:"omitempty,oneof=Basic Intermediate Advanced Native"`
}

// Clone returns a deep copy of the draft. Slices and the GPA pointer are never shared.
func (d ProfileDraft) Clone() ProfileDraft {
	out := d
	if d.Education.CGPA != nil {
		v := *d.Education.CGPA
		out.Education.CGPA = &v
	}
	out.Education.Achievements = cloneSlice(d.Education.Achievements)
	out.Skills.Technical = cloneSlice(d.Skills.Technical)
	out.Skills.Soft = cloneSlice(d.Skills.Soft)
	out.Skills.Languages = cloneSlice(d.Skills.Languages)
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Float64 returns a pointer to v. Handy for building drafts with a GPA.
func Float64(v float64) *float64 {
	return &v
}
