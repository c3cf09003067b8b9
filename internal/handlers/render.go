package handlers

import (
	"bytes"
	"html/template"
	"net/http"
)

// render executes a page into a buffer so a template error never leaves a half-written response
func render(w http.ResponseWriter, templates *template.Template, name string, data interface{}) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering "+name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
