package models

// PracticeSession is the word pool handed to a quiz runner.
// It lives only for the request (or websocket connection) that built it.
type PracticeSession struct {
	Words          []Word `json:"words"`
	IsSingleLesson bool   `json:"is_single_lesson"`
	LessonID       *int   `json:"lesson_id,omitempty"`
}

// DistractorPools holds every distinct source and target string in the dataset,
// in first-seen order
type DistractorPools struct {
	SourceStrings []string `json:"spanish"`
	TargetStrings []string `json:"czech"`
}

// Selection says which lessons to practice: either one lesson or a subset
type Selection struct {
	Single *int
	Multi  []int
}

// SingleLesson selects exactly one lesson
func SingleLesson(id int) Selection {
	return Selection{Single: &id}
}

// MultiLesson selects a set of lessons to be practiced together
func MultiLesson(ids ...int) Selection {
	return Selection{Multi: ids}
}

// IsSingle reports whether the selection targets a single lesson
func (s Selection) IsSingle() bool {
	return s.Single != nil
}
