package zarinpal

import (
	"context"
	"errors"
	"net"
)

const (
	TransportTimeout    = "timeout"
	TransportConnection = "connection error"
)

// TransportError means the gateway could not be reached or did not answer in
// time. Code is TransportTimeout or TransportConnection.
type TransportError struct {
	Code string
	Err  error
}

func (e *TransportError) Error() string {
	return "zarinpal: " + e.Code + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func classifyTransport(err error) *TransportError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TransportError{Code: TransportTimeout, Err: err}
	}
	return &TransportError{Code: TransportConnection, Err: err}
}
