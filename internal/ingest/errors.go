package ingest

import (
	"errors"
	"fmt"
)

// ErrUnsupportedShape is wrapped by InputError when the JSON is valid but
// none of the accepted input shapes match
var ErrUnsupportedShape = errors.New("unsupported input shape")

// InputError reports structurally corrupt input. It is raised before any
// analysis runs.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid input: %v", e.Err)
	}
	return fmt.Sprintf("invalid input from %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is or wraps an InputError
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func inputErrorf(source, format string, args ...interface{}) error {
	return &InputError{Source: source, Err: fmt.Errorf(format, args...)}
}
