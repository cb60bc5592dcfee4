package tiler

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrDecode means the input could not be decoded as an image.
	ErrDecode = errors.New("decode error")

	// ErrIO means a file or directory could not be read, created or written.
	ErrIO = errors.New("i/o error")

	// ErrInvalid means the arguments cannot produce a valid grid.
	ErrInvalid = errors.New("invalid argument")
)

// Error describes a failed tiling step.
type Error struct {
	Op   string // step that failed: "open", "mkdir", "write", "plan", ...
	Path string // file or directory involved, if any
	Kind error  // one of ErrDecode, ErrIO, ErrInvalid
	Err  error  // underlying cause
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func ioError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: ErrIO, Err: err}
}

func invalidError(op string, format string, args ...any) *Error {
	return &Error{Op: op, Kind: ErrInvalid, Err: fmt.Errorf(format, args...)}
}
