// Package validation lints vocabulary datasets before they are served.
package validation

import (
	"fmt"
	"strings"

	"duovocab/internal/models"
)

// ValidationError represents a problem with a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Severity of an Issue
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is a ValidationError located in the dataset. Word is -1 for lesson-level issues.
type Issue struct {
	ValidationError
	Severity Severity
	Lesson   int
	Word     int
}

func (i Issue) Error() string {
	if i.Word < 0 {
		return fmt.Sprintf("%s: lesson %d: %s", i.Severity, i.Lesson, i.ValidationError.Error())
	}
	return fmt.Sprintf("%s: lesson %d word %d: %s", i.Severity, i.Lesson, i.Word, i.ValidationError.Error())
}

// Report collects every issue found in a dataset
type Report struct {
	Lessons int
	Words   int
	Issues  []Issue
}

// HasErrors reports whether any issue is an error rather than a warning
func (r Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of issues with the given severity
func (r Report) Count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// ValidateLessonName checks that a lesson has a displayable name
func ValidateLessonName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: "lesson_name", Message: "lesson name is required"}
	}
	return nil
}

// ValidateWord checks that both quiz directions have text
func ValidateWord(w models.Word) error {
	if strings.TrimSpace(w.SourceText) == "" {
		return ValidationError{Field: "spanish", Message: "text is required"}
	}
	if strings.TrimSpace(w.TargetText) == "" {
		return ValidationError{Field: "czech", Message: "text is required"}
	}
	return nil
}

// ValidateDataset lints every lesson and word.
//
// Errors make a word unusable in a quiz. Warnings flag data that works but
// probably is not what the author meant: empty lessons, repeated pairs, and
// surrounding whitespace, which answers are compared against exactly.
func ValidateDataset(ds models.Dataset) Report {
	report := Report{Lessons: len(ds), Words: ds.WordCount()}

	add := func(sev Severity, lesson, word int, err error) {
		verr, ok := err.(ValidationError)
		if !ok {
			verr = ValidationError{Message: err.Error()}
		}
		report.Issues = append(report.Issues, Issue{ValidationError: verr, Severity: sev, Lesson: lesson, Word: word})
	}

	for li, lesson := range ds {
		if err := ValidateLessonName(lesson.Name); err != nil {
			add(SeverityError, li, -1, err)
		}
		if len(lesson.Words) == 0 {
			add(SeverityWarning, li, -1, ValidationError{Field: "words", Message: "lesson has no words and cannot be practiced"})
		}

		pairs := make(map[[2]string]int, len(lesson.Words))
		for wi, word := range lesson.Words {
			if err := ValidateWord(word); err != nil {
				add(SeverityError, li, wi, err)
				continue
			}
			if word.SourceText != strings.TrimSpace(word.SourceText) {
				add(SeverityWarning, li, wi, whitespaceError("spanish", word.SourceText))
			}
			if word.TargetText != strings.TrimSpace(word.TargetText) {
				add(SeverityWarning, li, wi, whitespaceError("czech", word.TargetText))
			}

			key := [2]string{word.SourceText, word.TargetText}
			if first, dup := pairs[key]; dup {
				add(SeverityWarning, li, wi, ValidationError{Field: "words", Message: fmt.Sprintf("duplicate of word %d", first)})
				continue
			}
			pairs[key] = wi
		}
	}
	return report
}

func whitespaceError(field, text string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("%q has surrounding whitespace", text)}
}
