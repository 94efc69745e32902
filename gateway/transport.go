package gateway

import "net/http"

// authTransport applies the gateway's per-call behaviour at the
// http.RoundTripper level: bearer injection when a token is stored, and
// global teardown when the server rejects the credential. Putting it in the
// transport lets other HTTP-based surfaces (the tenant GraphQL client) share
// the exact same guarantees.
type authTransport struct {
	base http.RoundTripper
	gw   *Client
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	clone := req.Clone(req.Context())

	if clone.Header.Get(headerAuthorization) == "" {
		if token := t.gw.creds.GetToken(); token != "" {
			clone.Header.Set(headerAuthorization, bearerPrefix+token)
		}
	}

	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.gw.teardown()
	}
	return resp, nil
}

// NewHTTPClient returns an *http.Client carrying the gateway's bearer
// injection and unauthorized teardown. Calls made through it bypass the
// gateway's error normalization but keep its session guarantees.
func (c *Client) NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   c.http.Timeout,
		Transport: c.http.Transport,
	}
}
