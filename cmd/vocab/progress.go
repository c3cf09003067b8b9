package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"duovocab/internal/repository"
	"duovocab/internal/service"
)

func newProgressCmd(vocabPath *string) *cobra.Command {
	var sessionID string

	progress := &cobra.Command{Use: "progress", Short: "Inspect and edit completed lessons in the database"}
	progress.PersistentFlags().StringVar(&sessionID, "session", "", "session id")
	_ = progress.MarkPersistentFlagRequired("session")

	// withProgress runs fn against the database-backed tracker
	withProgress := func(cmd *cobra.Command, fn func(ctx context.Context, a *app, p *service.ProgressService) error) error {
		a, err := loadApp(*vocabPath)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		db, err := a.openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		return fn(ctx, a, service.NewProgressService(repository.NewCompletionRepository(db), a.logger))
	}

	progress.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List completed lessons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProgress(cmd, func(ctx context.Context, a *app, p *service.ProgressService) error {
				completed, err := p.Completed(ctx, sessionID)
				if err != nil {
					return err
				}
				if len(completed) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no completed lessons")
					return nil
				}

				ids := make([]int, 0, len(completed))
				for id := range completed {
					ids = append(ids, id)
				}
				slices.Sort(ids)

				ds := a.vocab.Load(ctx)
				for _, id := range ids {
					name := "(not in vocabulary)"
					if l, ok := ds.Lesson(id); ok {
						name = l.Name
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, name)
				}
				return nil
			})
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "mark <lesson-id>",
		Short: "Mark a lesson complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProgress(cmd, func(ctx context.Context, a *app, p *service.ProgressService) error {
				id, err := lessonArg(ctx, a, args[0])
				if err != nil {
					return err
				}
				if err := p.MarkComplete(ctx, sessionID, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lesson %d marked complete\n", id)
				return nil
			})
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "unmark <lesson-id>",
		Short: "Clear a lesson's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProgress(cmd, func(ctx context.Context, a *app, p *service.ProgressService) error {
				id, err := lessonArg(ctx, a, args[0])
				if err != nil {
					return err
				}
				if err := p.Unmark(ctx, sessionID, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lesson %d unmarked\n", id)
				return nil
			})
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear every completed lesson",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProgress(cmd, func(ctx context.Context, _ *app, p *service.ProgressService) error {
				if err := p.Reset(ctx, sessionID); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
				return nil
			})
		},
	})

	return progress
}

// lessonArg parses a lesson id and checks it exists in the vocabulary
func lessonArg(ctx context.Context, a *app, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid lesson id %q", raw)
	}
	if _, ok := a.vocab.Load(ctx).Lesson(id); !ok {
		return 0, fmt.Errorf("lesson %d not found", id)
	}
	return id, nil
}
