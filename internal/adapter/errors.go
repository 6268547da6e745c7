package adapter

import "errors"

var (
	// ErrTransport marks network-level failures: unreachable host,
	// timeout, connection reset. Retryable with backoff.
	ErrTransport = errors.New("cloud transport error")

	// ErrRejected marks application-level rejections: the remote store
	// understood the request and refused it. Never retried.
	ErrRejected = errors.New("cloud store rejected request")

	ErrUnauthorized = errors.New("cloud client unauthorized")
	ErrInvalidToken = errors.New("invalid bearer token")
)

// IsTransport reports whether err is a retryable transport failure as
// opposed to an application rejection.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
