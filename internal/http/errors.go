package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/jobdeck/jobdeck/internal/errors"
)

// genericErrorMessage is returned for internal and unclassified errors
// so no storage or stack detail leaks to clients.
const genericErrorMessage = "An error occurred. Please try again."

// StatusForError maps an application error onto an HTTP status code.
// Everything that is not a not-found or an auth failure is reported as
// a 400: validation, forbidden, conflict, and internal failures alike.
func StatusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// WriteServiceError renders a service-layer error as a JSON message
// body with the mapped status code.
func WriteServiceError(w http.ResponseWriter, err error) {
	message := genericErrorMessage

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != apperrors.ErrCodeInternal {
		message = appErr.Message
	}

	WriteMessage(w, StatusForError(err), message)
}
