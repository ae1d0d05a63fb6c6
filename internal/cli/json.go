package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound     = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid      = "CONFIG_INVALID"
	ErrCodeBackendUnreachable = "BACKEND_UNREACHABLE"
	ErrCodeBackendRejected    = "BACKEND_REJECTED"
	ErrCodeSetupFailed        = "SETUP_FAILED"
	ErrCodeDeviceInvalid      = "DEVICE_INVALID"
	ErrCodeUnknown            = "UNKNOWN"
)

// reportedError marks an error that was already written to the output as
// JSON, so Execute only sets the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// reportJSONError writes err as a JSON envelope and returns it marked as
// reported.
func reportJSONError(w io.Writer, err error) error {
	if writeErr := WriteJSONFromError(w, err); writeErr != nil {
		return writeErr
	}
	return &reportedError{err: err}
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var lhErr *errors.Error
	if !stderrors.As(err, &lhErr) {
		return &JSONError{
			Code:    ErrCodeUnknown,
			Message: err.Error(),
		}
	}

	jsonErr := &JSONError{
		Code:       mapErrorCode(lhErr),
		Message:    lhErr.Message,
		Suggestion: lhErr.Suggestion,
	}

	var httpErr *backend.HTTPError
	if stderrors.As(err, &httpErr) {
		jsonErr.Details = map[string]interface{}{
			"status_code": httpErr.StatusCode,
			"status":      httpErr.Status,
			"detail":      httpErr.Detail,
		}
	}

	return jsonErr
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(e *errors.Error) string {
	switch e.Code {
	case errors.ErrConfig:
		// Distinguish between not found and invalid
		msgLower := strings.ToLower(e.Message)
		if strings.Contains(msgLower, "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrBackend:
		var httpErr *backend.HTTPError
		if stderrors.As(e, &httpErr) {
			return ErrCodeBackendRejected
		}
		return ErrCodeBackendUnreachable
	case errors.ErrSetup:
		return ErrCodeSetupFailed
	case errors.ErrDevice:
		return ErrCodeDeviceInvalid
	}

	return ErrCodeUnknown
}
