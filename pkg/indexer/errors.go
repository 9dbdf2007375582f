package indexer

import "errors"

// CodeUnreachable is the error code the surrounding system reports for ErrUnreachable.
const CodeUnreachable = 2200

var (
	// ErrUnreachable indicates the liveness probe failed: the indexer is down,
	// the network is broken or the credentials were rejected. It is the only
	// error Connect retries. Use errors.Is() to check.
	ErrUnreachable = errors.New("indexer is not reachable")

	// ErrConnectionFailed indicates the client could not be created from the config.
	ErrConnectionFailed = errors.New("indexer connection failed")

	// ErrHealthcheckFailed indicates a runtime probe failed on a connected handle.
	// Returned by Healthcheck().
	ErrHealthcheckFailed = errors.New("indexer healthcheck failed")

	// ErrClosed is returned by operations on a handle that was already closed.
	ErrClosed = errors.New("indexer handle is closed")
)

// Code returns CodeUnreachable when err is, or wraps, ErrUnreachable and 0 otherwise.
func Code(err error) int {
	if errors.Is(err, ErrUnreachable) {
		return CodeUnreachable
	}
	return 0
}
