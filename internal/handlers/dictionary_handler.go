package handlers

import (
	"html/template"
	"net/http"

	"duovocab/internal/service"
)

// DictionaryHandler serves the flat word listing
type DictionaryHandler struct {
	dictionary *service.DictionaryService
	middleware *Middleware
	templates  *template.Template
}

// NewDictionaryHandler creates a new dictionary handler
func NewDictionaryHandler(dictionary *service.DictionaryService, middleware *Middleware, templates *template.Template) *DictionaryHandler {
	return &DictionaryHandler{
		dictionary: dictionary,
		middleware: middleware,
		templates:  templates,
	}
}

// ShowDictionary lists every word, optionally filtered by ?q=
func (h *DictionaryHandler) ShowDictionary(w http.ResponseWriter, r *http.Request) {
	dict := h.dictionary.Lookup(r.Context(), r.URL.Query().Get("q"))

	render(w, h.templates, "dictionary.tmpl", DictionaryViewData{
		Page: Page{
			Title:     "Dictionary - DuoVocab",
			Active:    "dictionary",
			CSRFToken: h.middleware.CSRFToken(r),
		},
		Dictionary: dict,
	})
}
