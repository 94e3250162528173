package config

import (
	"errors"
)

// Sentinel error kinds; Load wraps every failure in one of them.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
