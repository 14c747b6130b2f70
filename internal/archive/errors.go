package archive

import (
	"errors"
	"fmt"
)

var (
	ErrFormat          = errors.New("not a valid archive")
	ErrUnsupportedType = errors.New("unrecognized file extension")
	ErrInvalidPath     = errors.New("path is neither a file nor a directory")
	ErrContextSet      = errors.New("game context is already set")
	ErrUnknownIWad     = errors.New("could not identify iwad")
	ErrBadHandle       = errors.New("handle does not belong to this archive")
	ErrClosed          = errors.New("archive is closed")
)

// OpenError reports a failure to open an archive.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("opening %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
