package schemas

import (
	"errors"
	"testing"

	"github.com/jonathan/student-profile/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBlock_PersonalInfo(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
		wantField string
	}{
		{
			name: "complete",
			doc:  `{"firstName":"Asha","lastName":"Rao","email":"asha@example.com","phone":""}`,
		},
		{
			name:      "missing last name",
			doc:       `{"firstName":"Asha","email":"asha@example.com"}`,
			wantError: true,
			wantField: "lastName",
		},
		{
			name:      "empty first name",
			doc:       `{"firstName":"","lastName":"Rao","email":"asha@example.com"}`,
			wantError: true,
			wantField: "firstName",
		},
		{
			name:      "wrong type",
			doc:       `{"firstName":"Asha","lastName":"Rao","email":"a@b.c","phone":5551234}`,
			wantError: true,
			wantField: "phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBlock(schemas.PersonalInfo, "personalInfo", []byte(tt.doc))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "error should be ValidationError type")
			assert.Equal(t, "personalInfo", ve.Block)
			assert.NotEmpty(t, ve.Errors)
			assert.Contains(t, ve.Error(), tt.wantField)
		})
	}
}

func TestValidateBlock_Education(t *testing.T) {
	assert.NoError(t, ValidateBlock(schemas.Education, "education",
		[]byte(`{"currentLevel":"masters","institution":"MIT","cgpa":null,"achievements":null}`)))
	assert.NoError(t, ValidateBlock(schemas.Education, "education",
		[]byte(`{"currentLevel":"phd","institution":"MIT","cgpa":3.9,"achievements":["Dean's list"]}`)))

	assert.Error(t, ValidateBlock(schemas.Education, "education",
		[]byte(`{"currentLevel":"postdoc","institution":"MIT"}`)), "unknown level")
	assert.Error(t, ValidateBlock(schemas.Education, "education",
		[]byte(`{"currentLevel":"phd","institution":"MIT","cgpa":"3.9"}`)), "gpa must be numeric")
	assert.Error(t, ValidateBlock(schemas.Education, "education",
		[]byte(`{"currentLevel":"phd","institution":"MIT","achievements":[1]}`)), "achievements are strings")
}

func TestValidateBlock_Skills(t *testing.T) {
	assert.NoError(t, ValidateBlock(schemas.Skills, "skills",
		[]byte(`{"technical":[{"skill":"Go","level":"Expert"}],"soft":null,"languages":[{"language":"Hindi","proficiency":"Native"}]}`)))
	assert.NoError(t, ValidateBlock(schemas.Skills, "skills", []byte(`{}`)))

	assert.Error(t, ValidateBlock(schemas.Skills, "skills", []byte(`{"technical":[{"level":"Expert"}]}`)))
	assert.Error(t, ValidateBlock(schemas.Skills, "skills", []byte(`{"languages":"Hindi"}`)))
}

func TestValidateBlock_MalformedJSON(t *testing.T) {
	err := ValidateBlock(schemas.Skills, "skills", []byte(`{ invalid json }`))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "(root)", ve.Errors[0].Field)
}

func TestValidateBlock_UnknownSchema(t *testing.T) {
	err := ValidateBlock("nonexistent.schema.json", "x", []byte(`{}`))
	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, err.Error(), "nonexistent.schema.json")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`
	assert.NoError(t, ValidateJSONString(schemaContent, `{"name":"Asha"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	err := ValidateJSONString(schemaContent, `{"name":42}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Block: "education",
		Errors: []FieldError{
			{Field: "institution", Message: "is required"},
			{Field: "cgpa", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "education validation failed")
	assert.Contains(t, errorMsg, "institution")
	assert.Contains(t, errorMsg, "cgpa")

	assert.Equal(t, "invalid education: institution: is required; cgpa: must be a number", err.Summary())
}
