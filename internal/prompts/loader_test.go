package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AssistancePromptsExist(t *testing.T) {
	keys := []string{
		"essay_system", "essay_feedback",
		"group_system", "group_preparation",
		"interview_system", "interview_preparation",
	}
	for _, key := range keys {
		prompt, err := Get("assistance.json", key)
		require.NoError(t, err, "key %s", key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGet_ScrapingPromptExists(t *testing.T) {
	prompt, err := Get("scraping.json", "extract_scholarship")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Content}}")
	assert.Contains(t, prompt, "closing_date")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("assistance.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "key")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, apply for {{.Title}}", map[string]string{
		"Name":  "Ada",
		"Title": "STEM Futures",
	})
	assert.Equal(t, "Hello Ada, apply for STEM Futures", result)
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	result := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})
	assert.True(t, strings.Contains(result, "{{.Unknown}}"))
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("assistance.json", "does_not_exist") })
}
