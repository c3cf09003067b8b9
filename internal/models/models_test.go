package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Category
	}{
		{name: "exact", raw: "Noun", want: CategoryNoun},
		{name: "lower case", raw: "verb", want: CategoryVerb},
		{name: "padded", raw: " Phrase ", want: CategoryPhrase},
		{name: "adjective", raw: "ADJECTIVE", want: CategoryAdjective},
		{name: "unknown", raw: "Adverb", want: CategoryOther},
		{name: "empty", raw: "", want: CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.raw))
		})
	}
}

func TestDatasetDecodeJSON(t *testing.T) {
	raw := `[
		{"lesson_name": "Greetings: basics", "words": [
			{"spanish": "hola", "czech": "ahoj", "type": "phrase", "notes": "informal"},
			{"spanish": "gato", "czech": "kočka"}
		]},
		{"lesson_name": "Empty"}
	]`

	var ds Dataset
	require.NoError(t, json.Unmarshal([]byte(raw), &ds))
	ds = ds.Normalize()

	require.Len(t, ds, 2)
	assert.Equal(t, "Greetings", ds[0].ShortName())
	assert.Equal(t, CategoryPhrase, ds[0].Words[0].Category)
	assert.Equal(t, CategoryOther, ds[0].Words[1].Category)
	assert.Equal(t, "kočka", ds[0].Words[1].TargetText)
	assert.Empty(t, ds[1].Words)
	assert.Equal(t, 2, ds.WordCount())
}

func TestDatasetDecodeYAML(t *testing.T) {
	raw := `
- lesson_name: Animals
  words:
    - spanish: perro
      czech: pes
      type: noun
`
	var ds Dataset
	require.NoError(t, yaml.Unmarshal([]byte(raw), &ds))

	require.Len(t, ds, 1)
	assert.Equal(t, CategoryNoun, ds[0].Words[0].Category)
	assert.Equal(t, "Animals", ds[0].ShortName())
}

func TestDatasetLesson(t *testing.T) {
	ds := Dataset{{Name: "A"}, {Name: "B"}}

	tests := []struct {
		name   string
		id     int
		wantOK bool
	}{
		{name: "first", id: 0, wantOK: true},
		{name: "last", id: 1, wantOK: true},
		{name: "negative", id: -1, wantOK: false},
		{name: "past end", id: 2, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ds.Lesson(tt.id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSelection(t *testing.T) {
	assert.True(t, SingleLesson(3).IsSingle())
	assert.Equal(t, 3, *SingleLesson(3).Single)
	assert.False(t, MultiLesson(1, 2).IsSingle())
	assert.Equal(t, []int{1, 2}, MultiLesson(1, 2).Multi)
}
