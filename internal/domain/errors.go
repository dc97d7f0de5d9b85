package domain

import "errors"

var (
	ErrPrecondition = errors.New("preconditions not met")
	ErrAnalysis     = errors.New("style analysis failed")
	ErrGeneration   = errors.New("poster generation failed")
	ErrEdit         = errors.New("poster edit failed")
	ErrBusy         = errors.New("another operation is in flight")
	ErrNotFound     = errors.New("not found")
)
