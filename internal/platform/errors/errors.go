package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNothingToArchive = errors.New("nothing to archive")
	ErrNoSnapshot       = errors.New("no snapshot published")
)
