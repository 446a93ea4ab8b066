package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/extraction"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/parsing"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"field error", &types.FieldError{Field: "job_url", Message: "bad"}, http.StatusBadRequest},
		{"invalid mode", &session.InvalidModeError{Mode: "split"}, http.StatusBadRequest},
		{"session not found", &session.NotFoundError{ID: uuid.New()}, http.StatusNotFound},
		{"unsupported format", &extraction.UnsupportedFormatError{Extension: ".rtf"}, http.StatusUnsupportedMediaType},
		{"decode failure", &extraction.DecodeError{Format: "pdf", Message: "corrupt"}, http.StatusUnprocessableEntity},
		{"empty document", &layout.EmptyDocumentError{}, http.StatusBadRequest},
		{"api call failure", &parsing.APICallError{Message: "quota"}, http.StatusBadGateway},
		{"response shape failure", &parsing.ResponseShapeError{Message: "missing field"}, http.StatusBadGateway},
		{"fetch failure", &fetch.Error{URL: "http://x", Message: "timeout"}, http.StatusBadGateway},
		{"export failure", &export.Error{Message: "render"}, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_UnwrapsEmptyDocumentInsideExportError(t *testing.T) {
	err := &export.Error{Message: "layout failed", Cause: &layout.EmptyDocumentError{}}
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
