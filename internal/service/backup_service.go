package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"duovocab/internal/repository"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// CompletionArchive is the storage side of a backup
type CompletionArchive interface {
	All(ctx context.Context) ([]repository.CompletionRecord, error)
	Import(ctx context.Context, records []repository.CompletionRecord) (int, error)
	Clear(ctx context.Context) error
}

// BackupData represents the complete completion table export
type BackupData struct {
	Version      string                        `json:"version"`
	ExportedAt   time.Time                     `json:"exported_at"`
	DatabaseType string                        `json:"database_type"`
	Completions  []repository.CompletionRecord `json:"completions"`
}

// BackupService handles completion export and import
type BackupService struct {
	archive      CompletionArchive
	databaseType string
	logger       *slog.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(archive CompletionArchive, databaseType string, logger *slog.Logger) *BackupService {
	return &BackupService{
		archive:      archive,
		databaseType: databaseType,
		logger:       logger,
	}
}

// Export writes every completion record to outputPath
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}
	return file.Close()
}

// ExportToWriter writes every completion record to w as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	records, err := s.archive.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to export completions: %w", err)
	}
	if records == nil {
		records = []repository.CompletionRecord{}
	}

	backup := BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.databaseType,
		Completions:  records,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.InfoContext(ctx, "completions exported", slog.Int("records", len(records)))
	return nil
}

// Import restores completion records from inputPath
func (s *BackupService) Import(ctx context.Context, inputPath string, replace bool) (int, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file, replace)
}

// ImportFromReader restores completion records from r. When replace is set the
// existing table is emptied first; otherwise records already present are kept.
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, replace bool) (int, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.logger.InfoContext(ctx, "importing completions",
		slog.String("version", backup.Version),
		slog.Time("exported_at", backup.ExportedAt),
		slog.String("source_database", backup.DatabaseType),
		slog.Int("records", len(backup.Completions)))

	if replace {
		if err := s.archive.Clear(ctx); err != nil {
			return 0, fmt.Errorf("failed to clear completions: %w", err)
		}
	}

	n, err := s.archive.Import(ctx, backup.Completions)
	if err != nil {
		return 0, fmt.Errorf("failed to import completions: %w", err)
	}
	return n, nil
}
