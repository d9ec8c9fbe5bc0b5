package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks errors caused by bad caller input.
var ErrValidation = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
