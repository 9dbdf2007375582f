package httpserver

import "errors"

var (
	// ErrStart is returned by Run when the listener cannot be bound or Serve fails.
	ErrStart = errors.New("probe server failed to start")
	// ErrShutdown is returned by Shutdown when draining does not finish in time.
	ErrShutdown = errors.New("probe server shutdown failed")
)
