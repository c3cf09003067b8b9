package handlers

import (
	"duovocab/internal/models"
	"duovocab/internal/service"
)

// Page carries the fields every layout needs
type Page struct {
	Title     string
	Active    string
	CSRFToken string
}

// LessonView is one row of the lesson list or the custom-training form
type LessonView struct {
	ID        int
	Name      string
	ShortName string
	WordCount int
	Completed bool
}

type IndexViewData struct {
	Page
	Lessons        []LessonView
	CompletedCount int
	VocabPath      string
}

type DictionaryViewData struct {
	Page
	Dictionary service.Dictionary
}

type CustomViewData struct {
	Page
	Lessons []LessonView
}

type PracticeViewData struct {
	Page
	Session *models.PracticeSession
	Pools   models.DistractorPools
	Query   string
}

func lessonViews(ds models.Dataset, completed map[int]bool) []LessonView {
	views := make([]LessonView, len(ds))
	for i, lesson := range ds {
		views[i] = LessonView{
			ID:        i,
			Name:      lesson.Name,
			ShortName: lesson.ShortName(),
			WordCount: len(lesson.Words),
			Completed: completed[i],
		}
	}
	return views
}
