package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrNoDatasetFile = errors.New("no dataset file to watch")
)
