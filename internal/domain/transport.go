package domain

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// TransportErrorKind is a high-level classification of network failures.
type TransportErrorKind string

const (
	TransportUnknown TransportErrorKind = "unknown"
	TransportTimeout TransportErrorKind = "timeout"
	TransportDNS     TransportErrorKind = "dns"
	TransportConn    TransportErrorKind = "connection"
	TransportAborted TransportErrorKind = "aborted"
)

// ClassifyTransportError maps a client error to a TransportErrorKind.
func ClassifyTransportError(err error) TransportErrorKind {
	if err == nil {
		return TransportUnknown
	}
	if errors.Is(err, context.Canceled) {
		return TransportAborted
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TransportTimeout
	}

	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return TransportTimeout
		}
		return TransportDNS
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return TransportTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return TransportConn
	}

	return TransportUnknown
}
