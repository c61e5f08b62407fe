package client

import (
	"net/http"

	"github.com/courtly-dev/courtly/internal/session"
)

// AuthTransport attaches the stored bearer token to every outgoing
// request and clears the session when the server answers 401 or 403.
// The response (or error) is still returned to the caller; ending the
// session is a side effect, not a replacement for error handling.
type AuthTransport struct {
	Store session.Store
	Base  http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if s, ok := t.Store.Read(); ok && req.Header.Get("Authorization") == "" {
		// Clone before mutating: RoundTrippers must not modify the
		// caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// The stored token no longer opens doors. Drop it so the next
		// guard evaluation treats the visitor as anonymous.
		_ = t.Store.Clear()
	}

	return resp, nil
}
