package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/student-profile/internal/types"
	"github.com/jonathan/student-profile/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, name := range schemas.Names {
		t.Run(name, func(t *testing.T) {
			data, err := schemas.Load(name)
			require.NoError(t, err, "should be able to read schema file")

			var v any
			assert.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON: %s", name)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, name := range schemas.Names {
		t.Run(name, func(t *testing.T) {
			data, err := schemas.Load(name)
			require.NoError(t, err)

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema should compile: %s", name)
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := schemas.Load("missing.schema.json")
	assert.Error(t, err)
}

func TestSchemas_AcceptSerializedDraft(t *testing.T) {
	draft := types.ProfileDraft{
		Personal: types.PersonalInfo{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"},
		Education: types.Education{
			CurrentLevel: types.LevelBachelors,
			Institution:  "IIT Madras",
			CGPA:         types.Float64(8.7),
		},
		Skills: types.Skills{Technical: []types.SkillEntry{{Skill: "Go", Level: types.SkillAdvanced}}},
	}

	blocks := map[string]any{
		schemas.PersonalInfo: draft.Personal,
		schemas.Education:    draft.Education,
		schemas.Skills:       draft.Skills,
	}
	for name, block := range blocks {
		t.Run(name, func(t *testing.T) {
			schemaData, err := schemas.Load(name)
			require.NoError(t, err)
			doc, err := json.Marshal(block)
			require.NoError(t, err)

			result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaData), gojsonschema.NewBytesLoader(doc))
			require.NoError(t, err)
			assert.True(t, result.Valid(), "%v", result.Errors())
		})
	}
}
