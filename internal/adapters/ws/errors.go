package ws

import "errors"

// Sentinel kinds for gateway errors.
var (
	ErrMissingDependency = errors.New("missing gateway dependency")
	ErrUnauthorized      = errors.New("connection unauthorized")
	ErrConnClosed        = errors.New("connection closed")
	ErrSendBufferFull    = errors.New("send buffer full")
)
