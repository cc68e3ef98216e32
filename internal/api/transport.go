package api

import (
	"net/http"

	"launchpad/internal/tokenstore"
)

// AttachBearer returns a copy of req with the bearer credential set on the
// authorization header. An empty token leaves the request unauthenticated.
// The function is pure given (request, token); it never mutates its input.
func AttachBearer(req *http.Request, token string) *http.Request {
	if token == "" {
		return req
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return out
}

// authTransport is the interceptor composed once at client construction.
// Every outbound request passes through it; if the token store holds a
// credential it is attached, otherwise the request is sent unauthenticated
// and the server decides rejection.
type authTransport struct {
	next   http.RoundTripper
	tokens tokenstore.Store
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok, err := t.tokens.Load(req.Context())
	if err != nil || !ok {
		// A store read failure degrades to an unauthenticated request
		// rather than blocking the call.
		return t.next.RoundTrip(req)
	}
	return t.next.RoundTrip(AttachBearer(req, token))
}
