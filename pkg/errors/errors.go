package errors

import "errors"

// Codes reported by the search pipelines.
const (
	CodeEmptyQuery           = "EMPTY_QUERY"
	CodeNoCoordinates        = "NO_COORDINATES"
	CodeGeocodeFailed        = "GEOCODE_FAILED"
	CodeReverseGeocodeFailed = "REVERSE_GEOCODE_FAILED"
	CodeForecastFailed       = "FORECAST_FAILED"
	CodeGeoPermissionDenied  = "GEO_PERMISSION_DENIED"
	CodeGeoUnavailable       = "GEO_UNAVAILABLE"
	CodeSuperseded           = "SUPERSEDED"
)

// AppError carries a machine readable code and the message shown to the user.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps callers differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code returns the code of the first AppError in err's chain, or "" when
// there is none.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// UserMessage returns the text meant for the user, or "" when err carries none.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
