package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNoSnapshot         = errors.New("no dataset loaded")
	ErrUnsupportedFormat  = errors.New("unsupported dataset format")
	ErrDecode             = errors.New("cannot decode dataset")
	ErrDecodeRecord       = errors.New("cannot decode record")
	ErrDuplicateRecord    = errors.New("duplicate employee record")
	ErrInvalidWatchTarget = errors.New("invalid watch target")
)
