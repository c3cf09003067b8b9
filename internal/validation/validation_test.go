package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duovocab/internal/models"
)

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name      string
		word      models.Word
		wantField string
	}{
		{
			name: "valid word",
			word: models.Word{SourceText: "hola", TargetText: "ahoj"},
		},
		{
			name:      "missing source",
			word:      models.Word{TargetText: "ahoj"},
			wantField: "spanish",
		},
		{
			name:      "blank target",
			word:      models.Word{SourceText: "hola", TargetText: "   "},
			wantField: "czech",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.word)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateLessonName(t *testing.T) {
	assert.NoError(t, ValidateLessonName("Greetings: basics"))
	assert.Error(t, ValidateLessonName(""))
	assert.Error(t, ValidateLessonName(" \t"))
}

func TestValidateDatasetClean(t *testing.T) {
	ds := models.Dataset{{Name: "Greetings", Words: []models.Word{
		{SourceText: "hola", TargetText: "ahoj"},
		{SourceText: "gato", TargetText: "kočka"},
	}}}

	report := ValidateDataset(ds)
	assert.Empty(t, report.Issues)
	assert.False(t, report.HasErrors())
	assert.Equal(t, 1, report.Lessons)
	assert.Equal(t, 2, report.Words)
}

func TestValidateDatasetIssues(t *testing.T) {
	ds := models.Dataset{
		{Name: "", Words: []models.Word{
			{SourceText: "hola", TargetText: "ahoj"},
			{SourceText: "", TargetText: "pes"},
			{SourceText: "hola", TargetText: "ahoj"},
			{SourceText: "gato ", TargetText: "kočka"},
		}},
		{Name: "Empty"},
	}

	report := ValidateDataset(ds)
	require.True(t, report.HasErrors())
	assert.Equal(t, 2, report.Count(SeverityError))
	assert.Equal(t, 3, report.Count(SeverityWarning))

	want := []string{
		"error: lesson 0: lesson_name: lesson name is required",
		"error: lesson 0 word 1: spanish: text is required",
		"warning: lesson 0 word 2: words: duplicate of word 0",
		`warning: lesson 0 word 3: spanish: "gato " has surrounding whitespace`,
		"warning: lesson 1: words: lesson has no words and cannot be practiced",
	}
	got := make([]string, len(report.Issues))
	for i, issue := range report.Issues {
		got[i] = issue.Error()
	}
	assert.Equal(t, want, got)
}
