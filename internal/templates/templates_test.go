package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duovocab/internal/models"
)

func TestLoadEmbedded(t *testing.T) {
	tmpl, err := Load("")
	require.NoError(t, err)

	for _, name := range []string{"base.tmpl", "index.tmpl", "dictionary.tmpl", "custom.tmpl", "practice.tmpl"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
	assert.NotNil(t, tmpl.Lookup("header"))
	assert.NotNil(t, tmpl.Lookup("footer"))
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.tmpl"), []byte(`{{percent 1 4}}%`), 0o644))

	tmpl, err := Load(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index.tmpl", nil))
	assert.Equal(t, "25%", buf.String())

	_, err = Load(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFuncMap(t *testing.T) {
	funcs := FuncMap()

	percent := funcs["percent"].(func(int, int) int)
	assert.Equal(t, 50, percent(1, 2))
	assert.Equal(t, 0, percent(1, 0))

	label := funcs["categoryLabel"].(func(models.Category) string)
	assert.Equal(t, "Nouns", label(models.CategoryNoun))
	assert.Equal(t, "Other", label(models.Category("")))
}
