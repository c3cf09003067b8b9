// Package templates holds the HTML pages. They are embedded in the binary and
// can be replaced at runtime by pointing TEMPLATES_PATH at a directory of
// files with the same names.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"

	"duovocab/internal/models"
)

//go:embed *.tmpl
var embedded embed.FS

// FuncMap returns the helpers available to every page
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"percent": func(part, total int) int {
			if total <= 0 {
				return 0
			}
			return part * 100 / total
		},
		"lower": strings.ToLower,
		"categoryLabel": func(c models.Category) string {
			switch c {
			case models.CategoryPhrase:
				return "Phrases"
			case models.CategoryNoun:
				return "Nouns"
			case models.CategoryVerb:
				return "Verbs"
			case models.CategoryAdjective:
				return "Adjectives"
			default:
				return "Other"
			}
		},
	}
}

// Load parses every *.tmpl page. An empty dir uses the embedded copies.
func Load(dir string) (*template.Template, error) {
	var fsys fs.FS = embedded
	if dir != "" {
		fsys = os.DirFS(dir)
	}

	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(fsys, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
