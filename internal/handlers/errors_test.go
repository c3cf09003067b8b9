package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	assert.Equal(t, 418, recorder.Code)
	assert.Equal(t, "Teapot", strings.TrimSpace(recorder.Body.String()))
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(original)

	recorder := httptest.NewRecorder()
	respondWithError(recorder, http.StatusInternalServerError, ErrInternalServerError, "", errors.New("boom"))

	logOutput := buf.String()
	assert.Contains(t, logOutput, ErrInternalServerError)
	assert.Contains(t, logOutput, "boom")
}

func TestRespondWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithJSON(recorder, http.StatusCreated, map[string]string{"status": "success"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success"}`, recorder.Body.String())
}
