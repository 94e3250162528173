package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrMalformedDataset = errors.New("malformed dataset")
	ErrMissingColumn    = errors.New("missing required column")
	ErrEmptyPath        = errors.New("dataset path is empty")
	ErrOpenDataset      = errors.New("open dataset failed")
	ErrNonFiniteValue   = errors.New("value is not finite")
)
