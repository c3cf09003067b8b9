package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"duovocab/internal/config"
	"duovocab/internal/database"
	"duovocab/internal/logging"
	"duovocab/internal/models"
	"duovocab/internal/quiz"
	"duovocab/internal/repository"
	"duovocab/internal/service"
	"duovocab/internal/tui"
	"duovocab/internal/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every command needs. The database is opened on demand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	vocab  *repository.VocabRepository
}

func newRootCmd() *cobra.Command {
	var vocabPath string

	root := &cobra.Command{
		Use:           "vocab",
		Short:         "DuoVocab command line tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vocabPath, "vocab", "", "vocabulary file (overrides VOCAB_PATH)")

	root.AddCommand(newCheckCmd(&vocabPath))
	root.AddCommand(newDictionaryCmd(&vocabPath))
	root.AddCommand(newQuizCmd(&vocabPath))
	root.AddCommand(newProgressCmd(&vocabPath))
	root.AddCommand(newBackupCmd(&vocabPath))
	return root
}

func loadApp(vocabPath string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if vocabPath != "" {
		cfg.Vocab.Path = vocabPath
	}

	logger := logging.New(cfg.Log)
	return &app{
		cfg:    cfg,
		logger: logger,
		vocab:  repository.NewVocabRepository(cfg.Vocab.Path, logger),
	}, nil
}

// openDB opens the configured database and brings its schema up to date
func (a *app) openDB(ctx context.Context) (*database.DB, error) {
	db, err := database.Open(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newCheckCmd(vocabPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the vocabulary file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(*vocabPath)
			if err != nil {
				return err
			}

			ds, err := a.vocab.Read(cmd.Context())
			if err != nil {
				return err
			}
			return printReport(cmd, a.vocab.Path(), validation.ValidateDataset(ds))
		},
	}
}

func printReport(cmd *cobra.Command, path string, report validation.Report) error {
	out := cmd.OutOrStdout()
	for _, issue := range report.Issues {
		_, _ = fmt.Fprintln(out, issue.Error())
	}
	_, _ = fmt.Fprintf(out, "%s: %d lessons, %d words, %d errors, %d warnings\n",
		path, report.Lessons, report.Words,
		report.Count(validation.SeverityError), report.Count(validation.SeverityWarning))

	if report.HasErrors() {
		return fmt.Errorf("%s has %d errors", path, report.Count(validation.SeverityError))
	}
	return nil
}

func newDictionaryCmd(vocabPath *string) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "List every word in the vocabulary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(*vocabPath)
			if err != nil {
				return err
			}
			printDictionary(cmd, service.NewDictionaryService(a.vocab).Lookup(cmd.Context(), query))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only show words containing this text")
	return cmd
}

func printDictionary(cmd *cobra.Command, dict service.Dictionary) {
	out := cmd.OutOrStdout()

	counts := make([]string, 0, len(dict.Counts))
	for _, cc := range dict.Counts {
		if cc.Count > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", cc.Category, cc.Count))
		}
	}
	_, _ = fmt.Fprintf(out, "%d words", dict.Total)
	if len(counts) > 0 {
		_, _ = fmt.Fprintf(out, " (%s)", strings.Join(counts, ", "))
	}
	_, _ = fmt.Fprintln(out)

	if len(dict.Entries) == 0 {
		_, _ = fmt.Fprintln(out, "no words")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SPANISH\tCZECH\tTYPE\tLESSON\tNOTES")
	for _, e := range dict.Entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.SourceText, e.TargetText, e.Category, e.LessonID, e.Notes)
	}
	_ = tw.Flush()
}

func newQuizCmd(vocabPath *string) *cobra.Command {
	var (
		lesson    int
		lessons   []int
		sessionID string
	)

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Practice a lesson in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := quizSelection(cmd, lesson, lessons)
			if err != nil {
				return err
			}

			a, err := loadApp(*vocabPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			session, pools, err := service.NewPracticeService(a.vocab, a.logger).Prepare(ctx, sel)
			if err != nil {
				return err
			}

			var opts []quiz.Option
			if sessionID != "" {
				db, err := a.openDB(ctx)
				if err != nil {
					return err
				}
				defer db.Close()

				progress := service.NewProgressService(repository.NewCompletionRepository(db), a.logger)
				opts = append(opts, quiz.WithCompletion(func(ctx context.Context, lessonID int) error {
					return progress.MarkComplete(ctx, sessionID, lessonID)
				}))
			}

			m, err := tui.Run(ctx, quiz.NewRunner(session, pools, opts...), quizTitle(a.vocab.Load(ctx), sel))
			if err != nil {
				return err
			}
			if m.Finished() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all words answered")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&lesson, "lesson", 0, "lesson id to practice")
	cmd.Flags().IntSliceVar(&lessons, "lessons", nil, "lesson ids to practice together")
	cmd.Flags().StringVar(&sessionID, "session", "", "record completion for this session id in the database")
	cmd.MarkFlagsMutuallyExclusive("lesson", "lessons")
	cmd.MarkFlagsOneRequired("lesson", "lessons")
	return cmd
}

func quizSelection(cmd *cobra.Command, lesson int, lessons []int) (models.Selection, error) {
	if cmd.Flags().Changed("lesson") {
		return models.SingleLesson(lesson), nil
	}
	if len(lessons) == 0 {
		return models.Selection{}, fmt.Errorf("no lessons selected")
	}
	return models.MultiLesson(lessons...), nil
}

func quizTitle(ds models.Dataset, sel models.Selection) string {
	if sel.IsSingle() {
		if l, ok := ds.Lesson(*sel.Single); ok {
			return l.Name
		}
	}
	return "Custom training"
}
