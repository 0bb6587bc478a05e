package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services return these (wrapped with context via fmt.Errorf("%w")) and the API
// layer maps them to HTTP responses with errors.Is().

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation could not be completed because
	// it conflicts with the current state of a resource.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller is not authorized to perform
	// the requested action.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected error on the server.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")

	// ErrServiceUnavailable signifies that a required upstream (Ollama) is down.
	// This is typically mapped to a 503 Service Unavailable HTTP status.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrUnsupportedFileType is returned for uploads whose extension has no parser.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrInvalidTransition is an illegal processing job status change.
	ErrInvalidTransition = errors.New("invalid job status transition")
)

// Visualization pipeline failures.
var (
	// ErrMalformedDocument is a structural or cross-field violation in a
	// generated chart document. It is recoverable through the repair pass.
	ErrMalformedDocument = errors.New("malformed visualization document")

	// ErrUnrecoverableDocument means the document still fails validation after
	// repair (including the case where repair left no charts). Terminal.
	ErrUnrecoverableDocument = errors.New("unrecoverable visualization document")

	// ErrGenerationUnavailable means the model returned no usable text. Terminal.
	ErrGenerationUnavailable = errors.New("visualization generation unavailable")

	// ErrJSONDecode means the generated text was not JSON even after stripping
	// code fences. Callers treat it exactly like ErrGenerationUnavailable.
	ErrJSONDecode = errors.New("generated text is not valid JSON")
)
