package autofill

import (
	"encoding/json"

	"github.com/jonathan/student-profile/internal/types"
)

// ParsedProfile is the structured output of the resume parsing service. Every section and
// every field is optional; a nil section or empty field means "absent".
type ParsedProfile struct {
	Personal        *ParsedPersonal  `json:"personal_information,omitempty"`
	Education       *ParsedEducation `json:"education,omitempty"`
	TechnicalSkills []ParsedSkill    `json:"technical_skills,omitempty"`
	SoftSkills      []ParsedSkill    `json:"soft_skills,omitempty"`
	Languages       []ParsedLanguage `json:"languages,omitempty"`
}

// ParsedPersonal holds contact details extracted from the resume.
type ParsedPersonal struct {
	Name     types.Text `json:"name"`
	Email    types.Text `json:"email"`
	Phone    types.Text `json:"phone"`
	Location types.Text `json:"location"`
}

// ParsedEducation holds the most recent education entry extracted from the resume.
type ParsedEducation struct {
	CurrentLevel   types.Text   `json:"current_level"`
	Institution    types.Text   `json:"institution"`
	Field          types.Text   `json:"field"`
	GraduationYear types.Text   `json:"graduation_year"`
	CGPA           types.Text   `json:"cgpa"`
	Achievements   []types.Text `json:"achievements,omitempty"`
}

// ParsedSkill is one technical or soft skill.
type ParsedSkill struct {
	Name  types.Text `json:"name"`
	Level types.Text `json:"level"`
}

// ParsedLanguage is one spoken language.
type ParsedLanguage struct {
	Name        types.Text `json:"name"`
	Proficiency types.Text `json:"proficiency"`
}

// DecodeParsedProfile reads a parsing-service response body. The profile may sit at the top
// level or inside a {"data": {...}} envelope. Each section is decoded on its own: a missing or
// malformed section is treated as absent instead of failing the whole response.
func DecodeParsedProfile(body []byte) (*ParsedProfile, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, err
	}
	if inner, ok := top["data"]; ok {
		var data map[string]json.RawMessage
		if err := json.Unmarshal(inner, &data); err == nil && data != nil {
			top = data
		}
	}

	return &ParsedProfile{
		Personal:        mapPersonal(top["personal_information"]),
		Education:       mapEducation(top["education"]),
		TechnicalSkills: mapSkills(top["technical_skills"]),
		SoftSkills:      mapSkills(top["soft_skills"]),
		Languages:       mapLanguages(top["languages"]),
	}, nil
}

func mapPersonal(raw json.RawMessage) *ParsedPersonal {
	var p ParsedPersonal
	if !decodeSection(raw, &p) {
		return nil
	}
	return &p
}

func mapEducation(raw json.RawMessage) *ParsedEducation {
	var e ParsedEducation
	if !decodeSection(raw, &e) {
		// Tolerate a bad achievements list while keeping the scalar fields.
		var scalars struct {
			CurrentLevel   types.Text `json:"current_level"`
			Institution    types.Text `json:"institution"`
			Field          types.Text `json:"field"`
			GraduationYear types.Text `json:"graduation_year"`
			CGPA           types.Text `json:"cgpa"`
		}
		if !decodeSection(raw, &scalars) {
			return nil
		}
		e = ParsedEducation{
			CurrentLevel:   scalars.CurrentLevel,
			Institution:    scalars.Institution,
			Field:          scalars.Field,
			GraduationYear: scalars.GraduationYear,
			CGPA:           scalars.CGPA,
		}
	}
	return &e
}

func mapSkills(raw json.RawMessage) []ParsedSkill {
	var items []json.RawMessage
	if !decodeSection(raw, &items) {
		return nil
	}
	out := make([]ParsedSkill, 0, len(items))
	for _, item := range items {
		var s ParsedSkill
		if decodeSection(item, &s) {
			out = append(out, s)
			continue
		}
		// Some parsers return a bare list of names.
		var name types.Text
		if decodeSection(item, &name) {
			out = append(out, ParsedSkill{Name: name})
		}
	}
	return out
}

func mapLanguages(raw json.RawMessage) []ParsedLanguage {
	var items []json.RawMessage
	if !decodeSection(raw, &items) {
		return nil
	}
	out := make([]ParsedLanguage, 0, len(items))
	for _, item := range items {
		var l ParsedLanguage
		if decodeSection(item, &l) {
			out = append(out, l)
			continue
		}
		var name types.Text
		if decodeSection(item, &name) {
			out = append(out, ParsedLanguage{Name: name})
		}
	}
	return out
}

// decodeSection unmarshals raw into v and reports success. Absent and null sections fail.
func decodeSection(raw json.RawMessage, v any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}
