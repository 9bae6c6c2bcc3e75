package health

import "errors"

// ErrCheckTimeout is returned when a health check exceeds its timeout.
var ErrCheckTimeout = errors.New("health: check timeout")
