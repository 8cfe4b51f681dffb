package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/habits-server/internal/errors"
	"github.com/listenupapp/habits-server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to render every error, including its
// own request validation failures, as an APIError.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler(logger *slog.Logger) {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		details := make(map[string]string)

		for _, err := range errs {
			if err == nil {
				continue
			}

			if apiErr := classify(err); apiErr != nil {
				logServerError(logger, apiErr, err)
				return apiErr
			}

			// Schema validation failures carry a location such as "body.title".
			var detailer huma.ErrorDetailer
			if errors.As(err, &detailer) {
				if d := detailer.ErrorDetail(); d != nil {
					key := d.Location
					if key == "" {
						key = "request"
					}
					details[key] = d.Message
				}
			}
		}

		apiErr := &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
		if len(details) > 0 {
			apiErr.Details = details
		}
		return apiErr
	}
}

// toAPIError converts an error returned by a service into the StatusError
// huma writes. Errors it cannot classify become a 500.
func (s *Server) toAPIError(err error) error {
	apiErr := classify(err)
	if apiErr == nil {
		apiErr = &APIError{
			status:  http.StatusInternalServerError,
			Code:    string(domainerrors.CodeInternal),
			Message: "internal server error",
		}
	}
	logServerError(s.logger, apiErr, err)
	return apiErr
}

// classify maps domain and store errors. It returns nil for anything else.
func classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return &APIError{
			status:  domainErr.HTTPStatus(),
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Details: domainErr.Details,
		}
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		code := statusToCode(storeErr.HTTPCode())
		if errors.Is(err, store.ErrConstraint) {
			code = string(domainerrors.CodeConstraint)
		}
		return &APIError{
			status:  storeErr.HTTPCode(),
			Code:    code,
			Message: storeErr.Message,
		}
	}

	return nil
}

// logServerError records the underlying cause of 5xx responses, which the
// response body does not expose.
func logServerError(logger *slog.Logger, apiErr *APIError, cause error) {
	if logger == nil || apiErr.status < http.StatusInternalServerError {
		return
	}
	logger.Error("request failed",
		"status", apiErr.status,
		"code", apiErr.Code,
		"error", cause,
	)
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case status == http.StatusConflict:
		return string(domainerrors.CodeConflict)
	case status == http.StatusTooManyRequests:
		return string(domainerrors.CodeRateLimited)
	case status >= 400 && status < 500:
		return string(domainerrors.CodeValidation)
	default:
		return string(domainerrors.CodeInternal)
	}
}
