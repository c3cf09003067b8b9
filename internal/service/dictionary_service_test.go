package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duovocab/internal/models"
)

func TestBuildDictionary(t *testing.T) {
	dict := BuildDictionary(twoLessons(), "")

	require.Len(t, dict.Entries, 5)
	assert.Equal(t, 5, dict.Total)
	assert.Equal(t, "hola", dict.Entries[0].SourceText)
	assert.Equal(t, 0, dict.Entries[0].LessonID)
	assert.Equal(t, 1, dict.Entries[2].LessonID)
	assert.Equal(t, "Animals", dict.Entries[2].LessonName)

	assert.Equal(t, 1, dict.Count(models.CategoryPhrase))
	assert.Equal(t, 3, dict.Count(models.CategoryNoun))
	assert.Equal(t, 1, dict.Count(models.CategoryVerb))
	assert.Equal(t, 0, dict.Count(models.CategoryAdjective))
	assert.Len(t, dict.Counts, len(models.Categories))
}

func TestBuildDictionaryFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"source text", "gat", []string{"gato", "gato"}},
		{"target text ignoring case", "KOČ", []string{"gato", "gato"}},
		{"notes", "regular", []string{"comer"}},
		{"trimmed", "  pes ", []string{"perro"}},
		{"no match", "xyz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := BuildDictionary(twoLessons(), tt.query)

			got := []string{}
			for _, e := range dict.Entries {
				got = append(got, e.SourceText)
			}
			assert.Equal(t, tt.want, got)
			// Totals describe the whole dataset regardless of the filter
			assert.Equal(t, 5, dict.Total)
		})
	}
}

func TestDictionaryServiceEmptyDataset(t *testing.T) {
	svc := NewDictionaryService(staticLoader(nil))

	dict := svc.Lookup(context.Background(), "")
	assert.Empty(t, dict.Entries)
	assert.Zero(t, dict.Total)
	assert.Zero(t, dict.Count(models.CategoryNoun))
}
