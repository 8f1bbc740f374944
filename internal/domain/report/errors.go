package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrUnknownView  = errors.New("unknown view")
	ErrInvalidQuery = errors.New("invalid dashboard query")
)
