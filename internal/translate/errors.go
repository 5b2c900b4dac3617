package translate

import "fmt"

// Stable error codes surfaced in per-product outcomes. A config problem
// (missing_creds) must stay distinguishable from a data problem.
const (
	CodeMissingCreds   = "missing_creds"
	CodeEmptyResponse  = "empty_response"
	CodeTransportError = "transport_error"
	CodeUnparseable    = "unparseable_response"
)

// BackendError is a typed failure from the generation backend
type BackendError struct {
	Code string
	Err  error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the stable code from a backend error, falling back to
// transport_error for anything untyped.
func ErrorCode(err error) string {
	if be, ok := err.(*BackendError); ok {
		return be.Code
	}
	return CodeTransportError
}
