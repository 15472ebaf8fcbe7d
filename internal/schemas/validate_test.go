package schemas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScholarship_Valid(t *testing.T) {
	doc := `{
		"title": "STEM Futures Scholarship",
		"provider": "Futures Foundation",
		"description": "Supports first-year engineering students.",
		"benefits": ["Full tuition", "Mentorship"],
		"opening_date": "2026-01-01T00:00:00Z",
		"closing_date": "2026-03-31T23:59:59Z",
		"citizenship": ["New Zealand"],
		"income_cap": 2,
		"min_grades": {"Mathematics": 80},
		"essay_question": "Why engineering?",
		"group_task_description": "Design a recycling program.",
		"interview_focus_areas": ["leadership"]
	}`
	require.NoError(t, ValidateScholarship(doc))
}

func TestValidateScholarship_MinimalValid(t *testing.T) {
	doc := `{"title": "A Scholarship", "provider": "Someone"}`
	require.NoError(t, ValidateScholarship(doc))
}

func TestValidateScholarship_NullIncomeCap(t *testing.T) {
	doc := `{"title": "A Scholarship", "provider": "Someone", "income_cap": null}`
	require.NoError(t, ValidateScholarship(doc))
}

func TestValidateScholarship_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing title",
			doc:   `{"provider": "Someone"}`,
			field: "(root)",
		},
		{
			name:  "empty title",
			doc:   `{"title": "", "provider": "Someone"}`,
			field: "title",
		},
		{
			name:  "income cap out of range",
			doc:   `{"title": "A", "provider": "B", "income_cap": 7}`,
			field: "income_cap",
		},
		{
			name:  "grade above 100",
			doc:   `{"title": "A", "provider": "B", "min_grades": {"Mathematics": 150}}`,
			field: "Mathematics",
		},
		{
			name:  "benefits not strings",
			doc:   `{"title": "A", "provider": "B", "benefits": [42]}`,
			field: "benefits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScholarship(tt.doc)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Errors)

			found := false
			for _, fe := range ve.Errors {
				if strings.Contains(fe.Field, tt.field) {
					found = true
				}
			}
			assert.True(t, found, "expected an error on field %q, got %v", tt.field, ve.Errors)
		})
	}
}

func TestValidateScholarship_MalformedJSON(t *testing.T) {
	err := ValidateScholarship(`{not json`)
	require.Error(t, err)
}
