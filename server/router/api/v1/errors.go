package v1

import (
	"net/http"

	"github.com/pkg/errors"

	apperrors "github.com/hrygo/agendabot/internal/errors"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// httpStatus maps an error code to its HTTP status.
func httpStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNoDateRecognized:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeInvalidArgument, apperrors.ErrCodeInvalidTimezone:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the coded message without its cause, so driver
// errors never reach clients.
func publicMessage(err error) string {
	var e *apperrors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
