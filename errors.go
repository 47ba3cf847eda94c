package promptsig

import (
	"errors"
	"fmt"
)

// Sentinel errors for signature construction, rendering, and parsing.
// All use prefix "promptsig:" for identification. Callers should use
// errors.Is/errors.As.
var (
	ErrSchemaMismatch        = errors.New("promptsig: declaration or example does not match the field schema")
	ErrMissingInput          = errors.New("promptsig: required input value not provided")
	ErrInvalidInput          = errors.New("promptsig: input value rejected by field validator")
	ErrUnsupportedConvention = errors.New("promptsig: unsupported wire convention")
	ErrJSONDecode            = errors.New("promptsig: model output is not a valid JSON object")
	ErrInvalidOutput         = errors.New("promptsig: raw output must be a string or expose content")
	ErrInvalidManifest       = errors.New("promptsig: manifest file is malformed")
	ErrSignatureNotFound     = errors.New("promptsig: signature not found in registry")
	ErrInvalidName           = errors.New("promptsig: invalid signature name")
)

// FieldError wraps a sentinel error with field and signature context.
// Use errors.Is(err, ErrMissingInput) and errors.As(err, &fieldErr) to
// inspect.
type FieldError struct {
	Field     string
	Signature string
	Err       error
}

// Error implements error.
func (e *FieldError) Error() string {
	return fmt.Sprintf("promptsig: field %q in signature %q: %v", e.Field, e.Signature, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *FieldError) Unwrap() error { return e.Err }

// Compile-time check that FieldError implements error.
var _ error = (*FieldError)(nil)
