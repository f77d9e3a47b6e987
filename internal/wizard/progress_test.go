package wizard

import (
	"testing"

	"github.com/jonathan/student-profile/internal/types"
	"github.com/stretchr/testify/assert"
)

func fullDraft() types.ProfileDraft {
	return types.ProfileDraft{
		Personal: types.PersonalInfo{
			FirstName:      "Ada",
			LastName:       "Lovelace",
			Email:          "ada@example.com",
			Phone:          "555-0100",
			DateOfBirth:    "1815-12-10",
			Gender:         "female",
			Location:       "London",
			ProfilePicture: "ada.png",
			Bio:            "Analyst",
			LinkedinURL:    "https://linkedin.com/in/ada",
			GithubURL:      "https://github.com/ada",
			PortfolioURL:   "https://ada.dev",
		},
		Education: types.Education{
			CurrentLevel:   types.LevelMasters,
			Institution:    "University of London",
			Field:          "Mathematics",
			GraduationYear: "1835",
			CGPA:           types.Float64(4.0),
			Achievements:   []string{"Notes on the Analytical Engine"},
		},
		Skills: types.Skills{
			Technical: []types.SkillEntry{{Skill: "Algorithms", Level: types.SkillExpert}},
			Soft:      []types.SkillEntry{{Skill: "Writing", Level: types.SkillAdvanced}},
			Languages: []types.LanguageEntry{{Language: "English", Proficiency: types.ProficiencyNative}},
		},
	}
}

func TestComputeProgress_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, ComputeProgress(types.ProfileDraft{}))
	assert.InDelta(t, 100.0, ComputeProgress(fullDraft()), 1e-9)
}

func TestComputeProgress_SectionMean(t *testing.T) {
	d := types.ProfileDraft{
		Personal:  types.PersonalInfo{FirstName: "A", LastName: "B", Email: "a@b.com"},   // 3/12
		Education: types.Education{CurrentLevel: types.LevelBachelors, Institution: "X"}, // 2/6
		Skills:    types.Skills{Technical: []types.SkillEntry{{Skill: "Go"}}},            // 1/3
	}
	want := (3.0/12 + 2.0/6 + 1.0/3) / 3 * 100
	assert.InDelta(t, want, ComputeProgress(d), 1e-9)
}

func TestComputeProgress_EmptyEntryLowersProgress(t *testing.T) {
	d := fullDraft()
	before := ComputeProgress(d)

	d = appendSkillEntry(d, TechnicalSkills)
	after := ComputeProgress(d)

	assert.Less(t, after, before)
	assert.InDelta(t, (1.0+1.0+2.0/3)/3*100, after, 1e-9)
}

func TestComputeProgress_ListElementRules(t *testing.T) {
	tests := []struct {
		name   string
		skills types.Skills
		want   float64 // skills section ratio
	}{
		{"empty lists", types.Skills{}, 0},
		{"level only counts", types.Skills{Soft: []types.SkillEntry{{Level: types.SkillBeginner}}}, 1.0 / 3},
		{"whitespace name is blank", types.Skills{Soft: []types.SkillEntry{{Skill: "  "}}}, 0},
		{"one blank element spoils the list", types.Skills{Technical: []types.SkillEntry{{Skill: "Go"}, {}}}, 0},
		{"proficiency only counts", types.Skills{Languages: []types.LanguageEntry{{Proficiency: types.ProficiencyBasic}}}, 1.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProgress(types.ProfileDraft{Skills: tt.skills})
			assert.InDelta(t, tt.want/3*100, got, 1e-9)
		})
	}
}

func TestComputeProgress_Achievements(t *testing.T) {
	d := types.ProfileDraft{Education: types.Education{Achievements: []string{"Prize", " "}}}
	assert.Equal(t, 0.0, ComputeProgress(d))

	d.Education.Achievements = []string{"Prize"}
	assert.InDelta(t, (1.0/6)/3*100, ComputeProgress(d), 1e-9)
}

func TestComputeProgress_ZeroGPAIsFilled(t *testing.T) {
	d := types.ProfileDraft{Education: types.Education{CGPA: types.Float64(0)}}
	assert.InDelta(t, (1.0/6)/3*100, ComputeProgress(d), 1e-9)
}

func TestComputeProgress_IndependentOfListOrder(t *testing.T) {
	a := fullDraft()
	a.Skills.Technical = []types.SkillEntry{{Skill: "Go"}, {Skill: "SQL"}}
	b := fullDraft()
	b.Skills.Technical = []types.SkillEntry{{Skill: "SQL"}, {Skill: "Go"}}
	assert.Equal(t, ComputeProgress(a), ComputeProgress(b))
}
