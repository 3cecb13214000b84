package github

import (
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
)

const acceptHeader = "application/vnd.github.v3+json"

// authTransport attaches the API version header and, when a token is
// available, the bearer Authorization header to every request.
type authTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(t.authorize(req))
}

// authorize returns a copy of req carrying the auth headers. It never fails.
func (t *authTransport) authorize(req *http.Request) *http.Request {
	out := req.Clone(req.Context())
	out.Header.Set("Accept", acceptHeader)

	tok := t.token()
	if tok == nil {
		t.logger.Warn("GitHub token is not configured, requests may fail",
			"method", req.Method, "url", req.URL.String())
		return out
	}
	tok.SetAuthHeader(out)
	return out
}

func (t *authTransport) token() *oauth2.Token {
	if t.source == nil {
		return nil
	}
	tok, err := t.source.Token()
	if err != nil {
		t.logger.Warn("Failed to obtain GitHub token", "error", err)
		return nil
	}
	if tok == nil || tok.AccessToken == "" {
		return nil
	}
	return tok
}

// StaticTokenSource returns a token source for token, or nil when token is
// empty so the client runs unauthenticated.
func StaticTokenSource(token string) oauth2.TokenSource {
	if token == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}
