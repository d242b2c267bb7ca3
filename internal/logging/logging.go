// Package logging builds the tinyserve logger.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

const prefix = "tinyserve"

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: prefix,
		Level:  lvl,
	}), nil
}
