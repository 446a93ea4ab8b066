package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/extraction"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/parsing"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/types"
)

// HTTPStatus maps domain errors to HTTP status codes. Inline user-correctable
// errors map to 4xx; upstream AI failures surface as 502 so clients can tell
// them apart from bugs in this server.
func HTTPStatus(err error) int {
	var (
		fieldErr       *types.FieldError
		validationErrs validator.ValidationErrors
		invalidMode    *session.InvalidModeError
		notFound       *session.NotFoundError
		unsupported    *extraction.UnsupportedFormatError
		decodeErr      *extraction.DecodeError
		emptyDoc       *layout.EmptyDocumentError
		apiErr         *parsing.APICallError
		shapeErr       *parsing.ResponseShapeError
		fetchErr       *fetch.Error
		exportErr      *export.Error
	)

	switch {
	case errors.As(err, &fieldErr), errors.As(err, &validationErrs), errors.As(err, &invalidMode):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &emptyDoc):
		return http.StatusBadRequest
	case errors.As(err, &apiErr), errors.As(err, &shapeErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
