package loader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileNotFound is returned when the input path does not exist.
	// Errors wrapping it also match os.ErrNotExist.
	ErrFileNotFound = errors.New("file not found")
	// ErrDecode is returned when no configured encoding can decode the file.
	ErrDecode = errors.New("no supported encoding could decode the file")
	// ErrMalformedFile is returned when the file has no usable header/row structure.
	ErrMalformedFile = errors.New("malformed delimited file")
)

// DecodeError lists the encodings that were tried on a file.
type DecodeError struct {
	Path     string
	Attempts []string
	Causes   []error
}

func (e *DecodeError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, name := range e.Attempts {
		parts[i] = name
		if i < len(e.Causes) && e.Causes[i] != nil {
			parts[i] = fmt.Sprintf("%s (%v)", name, e.Causes[i])
		}
	}
	return fmt.Sprintf("%s: %v, tried %s", e.Path, ErrDecode, strings.Join(parts, ", "))
}

// Is makes errors.Is(err, ErrDecode) hold for a *DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func malformed(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedFile, path, fmt.Sprintf(format, args...))
}
