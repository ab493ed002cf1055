package config

import (
	"errors"
)

// Sentinel error kinds for derslik configuration. Load wraps these so
// callers can errors.Is against a bad field versus a failed source read.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
