package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duovocab/internal/logging"
	"duovocab/internal/models"
)

const greetingsJSON = `[
	{"lesson_name": "Greetings", "words": [
		{"spanish": "hola", "czech": "ahoj", "type": "Phrase", "notes": ""},
		{"spanish": "gato", "czech": "kočka", "type": "Noun", "notes": ""}
	]}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVocabRepositoryLoad(t *testing.T) {
	tests := []struct {
		name        string
		path        func(t *testing.T) string
		wantLessons int
		wantErr     bool
	}{
		{
			name:        "json text file",
			path:        func(t *testing.T) string { return writeFile(t, "vocabs.txt", greetingsJSON) },
			wantLessons: 1,
		},
		{
			name: "yaml file",
			path: func(t *testing.T) string {
				return writeFile(t, "vocabs.yaml", "- lesson_name: A\n  words: []\n- lesson_name: B\n")
			},
			wantLessons: 2,
		},
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.txt") },
			wantErr: true,
		},
		{
			name:    "malformed json",
			path:    func(t *testing.T) string { return writeFile(t, "vocabs.txt", `[{"lesson_name": `) },
			wantErr: true,
		},
		{
			name:    "wrong shape",
			path:    func(t *testing.T) string { return writeFile(t, "vocabs.txt", `{"lesson_name": "x"}`) },
			wantErr: true,
		},
		{
			name: "null document",
			path: func(t *testing.T) string { return writeFile(t, "vocabs.txt", `null`) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewVocabRepository(tt.path(t), logging.Discard())

			ds, err := repo.Read(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, ds, tt.wantLessons)
			}

			// Load never fails; errors degrade to an empty dataset
			loaded := repo.Load(context.Background())
			require.NotNil(t, loaded)
			assert.Len(t, loaded, tt.wantLessons)
		})
	}
}

func TestVocabRepositoryReflectsFileChanges(t *testing.T) {
	path := writeFile(t, "vocabs.txt", greetingsJSON)
	repo := NewVocabRepository(path, logging.Discard())
	ctx := context.Background()

	first := repo.Load(ctx)
	require.Len(t, first, 1)
	assert.Equal(t, models.Word{SourceText: "hola", TargetText: "ahoj", Category: models.CategoryPhrase}, first[0].Words[0])

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	assert.Empty(t, repo.Load(ctx))
}
