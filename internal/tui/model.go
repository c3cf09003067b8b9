// Package tui plays a quiz.Runner in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"duovocab/internal/quiz"
)

const barWidth = 30

// Model is the bubbletea model for one quiz session
type Model struct {
	ctx      context.Context
	runner   *quiz.Runner
	title    string
	question *quiz.Question
	cursor   int
	result   *quiz.Result
	err      error
}

// New creates a model and asks the first question
func New(ctx context.Context, runner *quiz.Runner, title string) Model {
	m := Model{ctx: ctx, runner: runner, title: title}
	m.advance()
	return m
}

// Err is the error that stopped the quiz, if any
func (m Model) Err() error {
	return m.err
}

// Finished reports whether every word was answered correctly
func (m Model) Finished() bool {
	return m.runner.State() == quiz.Finished
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}

	if m.err != nil || m.question == nil {
		return m, tea.Quit
	}

	if m.result != nil {
		switch key.String() {
		case "enter", " ":
			m.advance()
		}
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.question.Options)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.answer(m.cursor)
	case "1", "2", "3", "4":
		if i := int(s[0] - '1'); i < len(m.question.Options) {
			m.cursor = i
			m.answer(i)
		}
	}
	return m, nil
}

func (m *Model) answer(i int) {
	res, err := m.runner.Answer(m.ctx, m.question.Options[i])
	if err != nil {
		m.err = err
		return
	}
	m.result = &res
}

func (m *Model) advance() {
	m.result = nil
	m.cursor = 0
	q, err := m.runner.Next(m.ctx)
	if err != nil {
		m.err = err
	}
	m.question = q
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(progressBar(m.runner.Stats()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(wrongStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.question == nil:
		stats := m.runner.Stats()
		b.WriteString(correctStyle.Render("Lesson complete!"))
		b.WriteString(fmt.Sprintf("\n%d correct, %d mistakes\n", stats.Correct, stats.Incorrect))
		b.WriteString(mutedStyle.Render("press any key to exit"))
	default:
		b.WriteString(m.questionView())
	}
	return appStyle.Render(b.String())
}

func (m Model) questionView() string {
	var b strings.Builder
	q := m.question

	b.WriteString(mutedStyle.Render("TRANSLATE TO " + strings.ToUpper(q.Direction.TargetLanguage())))
	b.WriteString("\n")
	b.WriteString(promptStyle.Render(q.Prompt))
	b.WriteString("\n")

	for i, opt := range q.Options {
		style := optionStyle
		switch {
		case m.result != nil && opt == m.result.Answer:
			style = style.BorderForeground(green).Foreground(green)
		case m.result != nil && opt == m.result.Given:
			style = style.BorderForeground(red).Foreground(red)
		case m.result == nil && i == m.cursor:
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d  %s", i+1, opt)))
		b.WriteString("\n")
	}

	switch {
	case m.result == nil:
		b.WriteString(mutedStyle.Render("↑/↓ choose · enter answer · q quit"))
	case m.result.Correct:
		b.WriteString(correctStyle.Render("Excellent!"))
		b.WriteString(mutedStyle.Render("  enter to continue"))
	default:
		b.WriteString(wrongStyle.Render("Correct answer: " + m.result.Answer))
		b.WriteString(mutedStyle.Render("  enter to continue"))
	}
	return b.String()
}

func progressBar(s quiz.Stats) string {
	filled := 0
	if s.Total > 0 {
		filled = s.Correct * barWidth / s.Total
	}
	return barFull.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", barWidth-filled)) +
		mutedStyle.Render(fmt.Sprintf(" %d/%d", s.Correct, s.Total))
}

// Run plays runner in the terminal until it finishes or the user quits
func Run(ctx context.Context, runner *quiz.Runner, title string) (Model, error) {
	program := tea.NewProgram(New(ctx, runner, title), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return Model{}, err
	}
	m := final.(Model)
	return m, m.Err()
}
