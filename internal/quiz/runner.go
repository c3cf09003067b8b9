// Package quiz runs a multiple-choice practice session one question at a time.
//
// A Runner owns the word pool of one PracticeSession. Each call to Next pops a
// word, picks a translation direction and samples up to three distractors.
// A wrong answer sends the word back to the end of the pool, so the session
// finishes only once every word has been answered correctly.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"duovocab/internal/models"
)

// MaxDistractors is the number of wrong options offered when the pool allows it
const MaxDistractors = 3

var (
	// ErrFinished is returned when answering after the pool has been exhausted
	ErrFinished = errors.New("quiz is finished")
	// ErrNoQuestion is returned when answering without a pending question
	ErrNoQuestion = errors.New("no question pending")
)

// State of a Runner
type State int

const (
	Running State = iota
	Finished
)

func (s State) String() string {
	if s == Finished {
		return "finished"
	}
	return "running"
}

// Direction says which side of a word is shown and which must be answered
type Direction int

const (
	SourceToTarget Direction = iota
	TargetToSource
)

func (d Direction) String() string {
	if d == TargetToSource {
		return "czech-spanish"
	}
	return "spanish-czech"
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "spanish-czech":
		*d = SourceToTarget
	case "czech-spanish":
		*d = TargetToSource
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}

// TargetLanguage names the language the answer is written in
func (d Direction) TargetLanguage() string {
	if d == TargetToSource {
		return "Spanish"
	}
	return "Czech"
}

// Question is a prompt with its shuffled options
type Question struct {
	Number    int             `json:"number"`
	Prompt    string          `json:"prompt"`
	Direction Direction       `json:"direction"`
	Category  models.Category `json:"category"`
	Notes     string          `json:"notes,omitempty"`
	Options   []string        `json:"options"`
	word      models.Word
	answer    string
}

// Result is the outcome of one answer
type Result struct {
	Correct bool   `json:"correct"`
	Given   string `json:"given"`
	Answer  string `json:"answer"`
	Stats   Stats  `json:"stats"`
}

// Stats summarises progress through the session
type Stats struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// CompletionFunc is told when a single-lesson session runs to the end
type CompletionFunc func(ctx context.Context, lessonID int) error

// Option configures a Runner
type Option func(*Runner)

// WithRand sets the random source, mainly so tests can seed it
func WithRand(rng *rand.Rand) Option {
	return func(r *Runner) {
		r.rng = rng
	}
}

// WithCompletion registers fn to be called when a single-lesson session finishes
func WithCompletion(fn CompletionFunc) Option {
	return func(r *Runner) {
		r.onComplete = fn
	}
}

// Runner is the quiz state machine. It is not safe for concurrent use.
type Runner struct {
	pool       []models.Word
	distract   models.DistractorPools
	single     bool
	lessonID   int
	rng        *rand.Rand
	onComplete CompletionFunc

	state   State
	current *Question
	asked   int
	stats   Stats
}

// NewRunner takes a copy of the session's words and shuffles it
func NewRunner(session *models.PracticeSession, pools models.DistractorPools, opts ...Option) *Runner {
	r := &Runner{
		pool:     slices.Clone(session.Words),
		distract: pools,
		single:   session.IsSingleLesson && session.LessonID != nil,
	}
	if r.single {
		r.lessonID = *session.LessonID
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	r.rng.Shuffle(len(r.pool), func(i, j int) {
		r.pool[i], r.pool[j] = r.pool[j], r.pool[i]
	})
	r.stats.Total = len(r.pool)
	return r
}

// State returns the current state
func (r *Runner) State() State {
	return r.state
}

// Stats returns progress so far
func (r *Runner) Stats() Stats {
	s := r.stats
	s.Remaining = len(r.pool)
	if r.current != nil {
		s.Remaining++
	}
	return s
}

// Next returns the pending question, or asks a new one. Once the pool is empty
// the runner moves to Finished and Next returns nil. The completion callback
// runs on that transition only, and only for single-lesson sessions.
func (r *Runner) Next(ctx context.Context) (*Question, error) {
	if r.state == Finished {
		return nil, nil
	}
	if r.current != nil {
		return r.current, nil
	}

	if len(r.pool) == 0 {
		r.state = Finished
		if r.single && r.onComplete != nil {
			if err := r.onComplete(ctx, r.lessonID); err != nil {
				return nil, fmt.Errorf("mark lesson %d complete: %w", r.lessonID, err)
			}
		}
		return nil, nil
	}

	word := r.pool[0]
	r.pool = r.pool[1:]
	r.asked++

	dir := Direction(r.rng.IntN(2))
	prompt, answer, candidates := word.SourceText, word.TargetText, r.distract.TargetStrings
	if dir == TargetToSource {
		prompt, answer, candidates = word.TargetText, word.SourceText, r.distract.SourceStrings
	}

	r.current = &Question{
		Number:    r.asked,
		Prompt:    prompt,
		Direction: dir,
		Category:  word.Category,
		Notes:     word.Notes,
		Options:   r.options(answer, candidates),
		word:      word,
		answer:    answer,
	}
	return r.current, nil
}

// Answer scores value against the pending question. A wrong answer puts the
// word back at the end of the pool.
func (r *Runner) Answer(_ context.Context, value string) (Result, error) {
	if r.state == Finished {
		return Result{}, ErrFinished
	}
	if r.current == nil {
		return Result{}, ErrNoQuestion
	}

	q := r.current
	r.current = nil

	res := Result{
		Correct: value == q.answer,
		Given:   value,
		Answer:  q.answer,
	}
	if res.Correct {
		r.stats.Correct++
	} else {
		r.stats.Incorrect++
		r.pool = append(r.pool, q.word)
	}
	res.Stats = r.Stats()
	return res, nil
}

// options returns the answer plus up to MaxDistractors other candidates, shuffled
func (r *Runner) options(answer string, candidates []string) []string {
	seen := map[string]struct{}{answer: {}}
	eligible := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		eligible = append(eligible, c)
	}
	r.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	opts := append([]string{answer}, eligible[:min(MaxDistractors, len(eligible))]...)
	r.rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}
