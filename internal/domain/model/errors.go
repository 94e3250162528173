package model

import "errors"

// Sentinel kinds for domain errors.
var (
	ErrUnknownPopulation = errors.New("unknown player population")
	ErrPlayerNotFound    = errors.New("player not found")
)
