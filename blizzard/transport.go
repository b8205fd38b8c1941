package blizzard

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// authTransport is an http.RoundTripper that attaches a Battle.net bearer
// token to every request. A 401 response invalidates the token and the
// request is replayed exactly once with a freshly acquired one.
type authTransport struct {
	base    http.RoundTripper
	tokens  *tokenManager
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, token, err := t.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Drain so the connection can be reused for the replay.
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	t.logger.Debug().
		Str("path", req.URL.Path).
		Msg("Access token rejected, refreshing and retrying once")

	t.tokens.invalidate(token)

	resp, _, err = t.send(req)
	return resp, err
}

func (t *authTransport) send(req *http.Request) (*http.Response, string, error) {
	ctx := req.Context()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	token, err := t.tokens.Token(ctx)
	if err != nil {
		return nil, "", err
	}

	// Clone the request to avoid modifying the original
	out := req.Clone(ctx)
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, "", fmt.Errorf("failed to rewind request body: %w", err)
		}
		out.Body = body
	}
	token.SetAuthHeader(out)

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, "", err
	}
	return resp, token.AccessToken, nil
}
