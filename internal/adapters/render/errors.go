package render

import "errors"

// Sentinel kinds for rendering errors.
var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrUnknownTheme  = errors.New("unknown theme")
	ErrNilDashboard  = errors.New("nil dashboard")
)
