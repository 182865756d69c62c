package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrIDMismatch   = fmt.Errorf("%w: path id does not match body id", ErrInvalidInput)
)
