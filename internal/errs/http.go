package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "phone", "message": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "phone").
	// Problems with the request body as a whole use "body".
	Field string `json:"field"`

	// Message is the human-readable error message.
	Message string `json:"message"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Code: machine-friendly error code (e.g. "CONTACT_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: flag to let middleware decide whether to override the message.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors. When it is non-empty the
	// global error handler renders only this list as the response body.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError.
//
// This does NOT compare Code/Status/etc.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// HasFieldErrors reports whether the error carries validation details.
func (e *HTTPError) HasFieldErrors() bool {
	return len(e.Errors) > 0
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
