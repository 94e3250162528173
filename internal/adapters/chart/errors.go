package chart

import "errors"

// Sentinel kinds for chart painting errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported chart format")
	ErrInvalidSize       = errors.New("invalid chart size")
	ErrFont              = errors.New("chart font unavailable")
	ErrRender            = errors.New("chart render failed")
)
