package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"duovocab/internal/repository"
	"duovocab/internal/service"
)

func newBackupCmd(vocabPath *string) *cobra.Command {
	backup := &cobra.Command{Use: "backup", Short: "Export or import completed lessons"}

	var output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export completions to a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			if output == "" {
				output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}
			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}

			svc := service.NewBackupService(repository.NewCompletionRepository(db), a.cfg.Database.Type, a.logger)
			if err := svc.Export(ctx, output); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			info, err := os.Stat(output)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s (%.1f KB)\n", output, float64(info.Size())/1024)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default backup_YYYYMMDD_HHMMSS.json)")

	var replace, yes bool
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import completions from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input file: %w", err)
			}

			if replace && !yes && !confirm(cmd, "This will delete all existing completions. Type 'yes' to confirm: ") {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "import cancelled")
				return nil
			}

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

			svc := service.NewBackupService(repository.NewCompletionRepository(db), a.cfg.Database.Type, a.logger)
			n, err := svc.Import(ctx, input, replace)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d completions\n", n)
			return nil
		},
	}
	importCmd.Flags().BoolVar(&replace, "replace", false, "delete existing completions before importing")
	importCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	backup.AddCommand(exportCmd, importCmd)
	return backup
}

// confirm asks prompt and reports whether the answer was "yes"
func confirm(cmd *cobra.Command, prompt string) bool {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}
