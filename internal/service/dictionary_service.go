package service

import (
	"context"
	"strings"

	"duovocab/internal/models"
)

// DictionaryEntry is one word in the flat listing, with the lesson it belongs to
type DictionaryEntry struct {
	models.Word
	LessonID   int    `json:"lesson_id"`
	LessonName string `json:"lesson_name"`
}

// CategoryCount is the number of words in one category
type CategoryCount struct {
	Category models.Category `json:"category"`
	Count    int             `json:"count"`
}

// Dictionary is the flat word listing shown on the dictionary page
type Dictionary struct {
	Entries []DictionaryEntry `json:"entries"`
	Total   int               `json:"total"`
	Counts  []CategoryCount   `json:"counts"`
	Query   string            `json:"query,omitempty"`
}

// Count returns the number of words in category c
func (d Dictionary) Count(c models.Category) int {
	for _, cc := range d.Counts {
		if cc.Category == c {
			return cc.Count
		}
	}
	return 0
}

// DictionaryService builds the dictionary listing
type DictionaryService struct {
	vocab DatasetLoader
}

// NewDictionaryService creates a new dictionary service
func NewDictionaryService(vocab DatasetLoader) *DictionaryService {
	return &DictionaryService{vocab: vocab}
}

// Lookup loads the dataset and lists it, filtered by query
func (s *DictionaryService) Lookup(ctx context.Context, query string) Dictionary {
	return BuildDictionary(s.vocab.Load(ctx), query)
}

// BuildDictionary flattens the dataset in lesson order.
// Total and Counts always describe the whole dataset. Entries are narrowed to
// words whose source, target or notes contain query, ignoring case.
func BuildDictionary(ds models.Dataset, query string) Dictionary {
	query = strings.TrimSpace(query)
	needle := strings.ToLower(query)

	counts := make(map[models.Category]int, len(models.Categories))
	dict := Dictionary{
		Entries: []DictionaryEntry{},
		Query:   query,
	}

	for id, lesson := range ds {
		for _, word := range lesson.Words {
			dict.Total++
			counts[word.Category]++

			if needle != "" && !matches(word, needle) {
				continue
			}
			dict.Entries = append(dict.Entries, DictionaryEntry{
				Word:       word,
				LessonID:   id,
				LessonName: lesson.Name,
			})
		}
	}

	for _, c := range models.Categories {
		dict.Counts = append(dict.Counts, CategoryCount{Category: c, Count: counts[c]})
	}
	return dict
}

func matches(w models.Word, needle string) bool {
	return strings.Contains(strings.ToLower(w.SourceText), needle) ||
		strings.Contains(strings.ToLower(w.TargetText), needle) ||
		strings.Contains(strings.ToLower(w.Notes), needle)
}
