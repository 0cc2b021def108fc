package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIdentityUnavailable means the platform identity provider cannot
	// produce a ticket. Not retriable without external action (e.g. the
	// player signing in to the platform again).
	ErrIdentityUnavailable = errors.New("identity provider unavailable")

	// ErrAuthExchangeFailed means a ticket was obtained but the server
	// rejected it or was unreachable during the token exchange, after all
	// exchange attempts were spent.
	ErrAuthExchangeFailed = errors.New("ticket exchange with trade server failed")

	// ErrSessionRestartRequired is the terminal outcome of the bounded
	// re-auth-and-retry protocol: the server rejected the token, a fresh
	// login did not help, and the session must be restarted manually.
	ErrSessionRestartRequired = errors.New("authentication failed after re-login, restart the session")

	// ErrNoCachedToken is returned by a token cache when no entry exists.
	ErrNoCachedToken = errors.New("no cached token")
)

// TransportError is any non-auth failure from the trade server. Detail
// carries the server-supplied error text verbatim so presentation layers can
// show a specific message; callers branch on the type and status code, never
// on the prose.
type TransportError struct {
	StatusCode int
	Detail     string
}

func (e *TransportError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("trade server error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("trade server error: status %d: %s", e.StatusCode, e.Detail)
}

// ValidationError is a client-side pre-submission check failure. It is never
// sent to the server.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "trade validation failed: " + e.Reason
}
