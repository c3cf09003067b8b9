package models

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the grammatical category of a Word
type Category string

const (
	CategoryNoun      Category = "Noun"
	CategoryVerb      Category = "Verb"
	CategoryAdjective Category = "Adjective"
	CategoryPhrase    Category = "Phrase"
	CategoryOther     Category = "Other"
)

// Categories lists every category in display order
var Categories = []Category{CategoryPhrase, CategoryNoun, CategoryVerb, CategoryAdjective, CategoryOther}

// ParseCategory maps a raw type string onto a Category.
// Matching is case-insensitive; anything unknown becomes CategoryOther.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c
		}
	}
	return CategoryOther
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	*c = ParseCategory(value.Value)
	return nil
}

// Word is a single translation pair
type Word struct {
	SourceText string   `json:"spanish" yaml:"spanish"`
	TargetText string   `json:"czech" yaml:"czech"`
	Category   Category `json:"type" yaml:"type"`
	Notes      string   `json:"notes" yaml:"notes"`
}

// Lesson is a named, ordered group of words. Its ID is its position in the Dataset.
type Lesson struct {
	Name  string `json:"lesson_name" yaml:"lesson_name"`
	Words []Word `json:"words" yaml:"words"`
}

// ShortName returns the lesson name up to the first colon
func (l Lesson) ShortName() string {
	name, _, _ := strings.Cut(l.Name, ":")
	return strings.TrimSpace(name)
}

// Dataset is the ordered list of lessons read from the vocabulary file
type Dataset []Lesson

// Lesson returns the lesson at position id
func (d Dataset) Lesson(id int) (Lesson, bool) {
	if id < 0 || id >= len(d) {
		return Lesson{}, false
	}
	return d[id], true
}

// WordCount returns the number of words across all lessons
func (d Dataset) WordCount() int {
	total := 0
	for _, lesson := range d {
		total += len(lesson.Words)
	}
	return total
}

// Normalize fills in defaults the source file may omit and returns the dataset
func (d Dataset) Normalize() Dataset {
	for i := range d {
		for j := range d[i].Words {
			if d[i].Words[j].Category == "" {
				d[i].Words[j].Category = CategoryOther
			}
		}
	}
	return d
}
