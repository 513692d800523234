package pdfsource

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed reports a file that is not a readable PDF
	ErrMalformed = errors.New("malformed pdf")
	// ErrUnsupported reports PDF features the reader cannot decode, such as
	// unknown stream filters
	ErrUnsupported = errors.New("unsupported pdf feature")
)

// OpenError is returned when a document cannot be opened
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("open pdf: %v", e.Err)
	}
	return fmt.Sprintf("open pdf %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// guard runs fn and turns a panic raised by the underlying reader into an
// error wrapping ErrUnsupported.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %w: %v", op, ErrUnsupported, r)
		}
	}()
	return fn()
}
