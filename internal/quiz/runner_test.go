package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duovocab/internal/models"
)

var (
	hola = models.Word{SourceText: "hola", TargetText: "ahoj", Category: models.CategoryPhrase}
	gato = models.Word{SourceText: "gato", TargetText: "kočka", Category: models.CategoryNoun}
)

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func singleSession(id int, words ...models.Word) *models.PracticeSession {
	return &models.PracticeSession{Words: words, IsSingleLesson: true, LessonID: &id}
}

func poolsFor(words ...models.Word) models.DistractorPools {
	var p models.DistractorPools
	for _, w := range words {
		p.SourceStrings = append(p.SourceStrings, w.SourceText)
		p.TargetStrings = append(p.TargetStrings, w.TargetText)
	}
	return p
}

type completionRecorder struct {
	calls []int
	err   error
}

func (c *completionRecorder) record(_ context.Context, id int) error {
	c.calls = append(c.calls, id)
	return c.err
}

func TestRunnerAllCorrectFinishesAndSignalsOnce(t *testing.T) {
	ctx := context.Background()
	rec := &completionRecorder{}
	r := NewRunner(singleSession(0, hola, gato), poolsFor(hola, gato), seeded(1), WithCompletion(rec.record))

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		q, err := r.Next(ctx)
		require.NoError(t, err)
		require.NotNil(t, q)
		seen[q.word.SourceText] = true

		res, err := r.Answer(ctx, q.answer)
		require.NoError(t, err)
		assert.True(t, res.Correct)
		assert.Empty(t, rec.calls, "completion must wait for the Finished transition")
	}
	assert.Equal(t, map[string]bool{"hola": true, "gato": true}, seen)
	assert.Equal(t, Running, r.State())

	q, err := r.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, q)
	assert.Equal(t, Finished, r.State())
	assert.Equal(t, []int{0}, rec.calls)

	// Finished is terminal and never signals again
	q, err = r.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, q)
	assert.Equal(t, []int{0}, rec.calls)

	_, err = r.Answer(ctx, "ahoj")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestRunnerMissRequeuesWord(t *testing.T) {
	ctx := context.Background()
	rec := &completionRecorder{}
	r := NewRunner(singleSession(0, hola, gato), poolsFor(hola, gato), seeded(2), WithCompletion(rec.record))

	var events []string
	missed := false
	for {
		q, err := r.Next(ctx)
		require.NoError(t, err)
		if q == nil {
			break
		}
		events = append(events, q.word.SourceText)

		answer := q.answer
		if q.word.SourceText == "hola" && !missed {
			answer = "wrong"
			missed = true
		}
		res, err := r.Answer(ctx, answer)
		require.NoError(t, err)
		if answer == "wrong" {
			assert.False(t, res.Correct)
			assert.Equal(t, q.answer, res.Answer)
		}
	}

	require.Len(t, events, 3)
	assert.Equal(t, "hola", events[len(events)-1], "missed word goes to the back of the pool")
	count := 0
	for _, e := range events {
		if e == "hola" {
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, []int{0}, rec.calls)
	assert.Equal(t, Stats{Correct: 2, Incorrect: 1, Remaining: 0, Total: 2}, r.Stats())
}

func TestRunnerTerminatesAfterExactlyNCorrect(t *testing.T) {
	ctx := context.Background()
	words := []models.Word{hola, gato,
		{SourceText: "perro", TargetText: "pes"},
		{SourceText: "casa", TargetText: "dům"},
		{SourceText: "agua", TargetText: "voda"},
	}
	session := &models.PracticeSession{Words: words}
	r := NewRunner(session, poolsFor(words...), seeded(3))

	correct, step := 0, 0
	for {
		q, err := r.Next(ctx)
		require.NoError(t, err)
		if q == nil {
			break
		}
		step++
		answer := q.answer
		if step%3 == 0 {
			answer = "nope"
		}
		res, err := r.Answer(ctx, answer)
		require.NoError(t, err)
		if res.Correct {
			correct++
		}
		require.Less(t, step, 100)
	}

	assert.Equal(t, len(words), correct)
	assert.Equal(t, Finished, r.State())
	assert.Equal(t, len(words), r.Stats().Correct)
}

func TestRunnerMultiLessonNeverSignals(t *testing.T) {
	ctx := context.Background()
	rec := &completionRecorder{}
	session := &models.PracticeSession{Words: []models.Word{hola}}
	r := NewRunner(session, poolsFor(hola), seeded(4), WithCompletion(rec.record))

	q, err := r.Next(ctx)
	require.NoError(t, err)
	_, err = r.Answer(ctx, q.answer)
	require.NoError(t, err)

	q, err = r.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, q)
	assert.Empty(t, rec.calls)
}

func TestRunnerAbandonedSessionNeverSignals(t *testing.T) {
	rec := &completionRecorder{}
	r := NewRunner(singleSession(1, hola, gato), poolsFor(hola, gato), seeded(5), WithCompletion(rec.record))

	_, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.calls)
	assert.Equal(t, Running, r.State())
}

func TestRunnerCompletionError(t *testing.T) {
	rec := &completionRecorder{err: errors.New("store down")}
	r := NewRunner(singleSession(3), models.DistractorPools{}, seeded(6), WithCompletion(rec.record))

	q, err := r.Next(context.Background())
	assert.Nil(t, q)
	assert.ErrorIs(t, err, rec.err)
	assert.Equal(t, Finished, r.State())

	_, err = r.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3}, rec.calls)
}

func TestRunnerPendingQuestion(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(singleSession(0, hola, gato), poolsFor(hola, gato), seeded(7))

	_, err := r.Answer(ctx, "ahoj")
	assert.ErrorIs(t, err, ErrNoQuestion)

	first, err := r.Next(ctx)
	require.NoError(t, err)
	again, err := r.Next(ctx)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 2, r.Stats().Remaining)
}

func TestRunnerOptions(t *testing.T) {
	many := []models.Word{hola, gato,
		{SourceText: "perro", TargetText: "pes"},
		{SourceText: "casa", TargetText: "dům"},
		{SourceText: "agua", TargetText: "voda"},
		{SourceText: "sol", TargetText: "slunce"},
	}

	tests := []struct {
		name        string
		pools       models.DistractorPools
		wantOptions int
	}{
		{"plenty of distractors", poolsFor(many...), 4},
		{"two distractors", poolsFor(hola, gato, many[2]), 3},
		{"only the answer", poolsFor(hola), 1},
		{"empty pools", models.DistractorPools{}, 1},
		{"duplicates in pools", models.DistractorPools{
			SourceStrings: []string{"hola", "x", "x", "hola"},
			TargetStrings: []string{"ahoj", "y", "y", "ahoj"},
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(0); seed < 20; seed++ {
				r := NewRunner(singleSession(0, hola), tt.pools, seeded(seed))
				q, err := r.Next(context.Background())
				require.NoError(t, err)

				assert.Len(t, q.Options, tt.wantOptions)
				assert.Contains(t, q.Options, q.answer)
				distinct := map[string]bool{}
				for _, o := range q.Options {
					distinct[o] = true
				}
				assert.Len(t, distinct, len(q.Options))

				if q.Direction == SourceToTarget {
					assert.Equal(t, "hola", q.Prompt)
					assert.Equal(t, "ahoj", q.answer)
				} else {
					assert.Equal(t, "ahoj", q.Prompt)
					assert.Equal(t, "hola", q.answer)
				}
			}
		})
	}
}

func TestRunnerUsesBothDirections(t *testing.T) {
	seen := map[Direction]bool{}
	for seed := uint64(0); seed < 50; seed++ {
		r := NewRunner(singleSession(0, hola), poolsFor(hola, gato), seeded(seed))
		q, err := r.Next(context.Background())
		require.NoError(t, err)
		seen[q.Direction] = true
	}
	assert.True(t, seen[SourceToTarget])
	assert.True(t, seen[TargetToSource])
}

func TestRunnerSeededRunsAreDeterministic(t *testing.T) {
	words := []models.Word{hola, gato, {SourceText: "perro", TargetText: "pes"}}
	session := &models.PracticeSession{Words: words}

	play := func() []Question {
		r := NewRunner(session, poolsFor(words...), seeded(42))
		var out []Question
		for {
			q, err := r.Next(context.Background())
			require.NoError(t, err)
			if q == nil {
				return out
			}
			out = append(out, *q)
			_, err = r.Answer(context.Background(), q.answer)
			require.NoError(t, err)
		}
	}

	assert.Equal(t, play(), play())
	assert.Equal(t, words, session.Words, "runner must not reorder the caller's session")
}

func TestDirectionText(t *testing.T) {
	for _, d := range []Direction{SourceToTarget, TargetToSource} {
		text, err := d.MarshalText()
		require.NoError(t, err)
		var back Direction
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}
	assert.Equal(t, "Czech", SourceToTarget.TargetLanguage())
	assert.Equal(t, "Spanish", TargetToSource.TargetLanguage())

	var d Direction
	assert.Error(t, d.UnmarshalText([]byte("sideways")))
}
