package basedir

import (
	"errors"
	"fmt"
)

// ErrHomeUndetermined is returned when neither an override nor the operating
// system can supply a home directory.
var ErrHomeUndetermined = errors.New("failed to determine user home directory")

// DirError reports a directory that could not be created.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("failed to create config directory %s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}
