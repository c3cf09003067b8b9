package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"duovocab/internal/models"
)

// VocabRepository reads the lesson dataset from a file on every call.
// There is no cache: each load reflects the file at the time of the read.
type VocabRepository struct {
	path   string
	logger *slog.Logger
}

// NewVocabRepository creates a repository backed by the file at path
func NewVocabRepository(path string, logger *slog.Logger) *VocabRepository {
	return &VocabRepository{path: path, logger: logger}
}

// Path returns the backing file path
func (r *VocabRepository) Path() string {
	return r.path
}

// Load returns the dataset, or an empty dataset if the file is missing or malformed
func (r *VocabRepository) Load(ctx context.Context) models.Dataset {
	ds, err := r.Read(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.WarnContext(ctx, "vocab file not found", slog.String("path", r.path))
		} else {
			r.logger.WarnContext(ctx, "vocab file unreadable", slog.String("path", r.path), slog.Any("error", err))
		}
		return models.Dataset{}
	}
	return ds
}

// Read returns the dataset or the reason it could not be read
func (r *VocabRepository) Read(ctx context.Context) (models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read vocab file: %w", err)
	}

	var ds models.Dataset
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &ds)
	default:
		err = json.Unmarshal(content, &ds)
	}
	if err != nil {
		return nil, fmt.Errorf("parse vocab file %s: %w", filepath.Base(r.path), err)
	}

	if ds == nil {
		ds = models.Dataset{}
	}
	return ds.Normalize(), nil
}
