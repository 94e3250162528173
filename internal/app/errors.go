package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted         = errors.New("service not started")
	ErrNoStore            = errors.New("no dataset store configured")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
)
