package smoke

import "errors"

var (
	ErrUnhealthy        = errors.New("server unhealthy")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrCheckFailed      = errors.New("smoke check failed")
)
