package entity

import "errors"

// Standard domain errors
var (
	ErrInvalidRequest  = errors.New("invalid request parameters")
	ErrUpstreamFailure = errors.New("upstream generation failed")
	ErrEmptyCompletion = errors.New("upstream returned no candidates")
)
