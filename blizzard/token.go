package blizzard

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// DefaultTokenLeeway is how long before expiry a token is considered stale.
const DefaultTokenLeeway = time.Minute

// fallbackTokenLifetime is assumed when the identity service omits expires_in.
const fallbackTokenLifetime = 5 * time.Minute

// tokenManager acquires and caches client-credentials access tokens for a
// single client. Concurrent refreshes are collapsed into one identity request.
type tokenManager struct {
	config     *clientcredentials.Config
	httpClient *http.Client
	logger     zerolog.Logger

	mu       sync.RWMutex
	token    *oauth2.Token
	lifetime time.Duration
	group    singleflight.Group
	leeway   time.Duration
	now      func() time.Time
}

func newTokenManager(clientID, clientSecret, tokenURL string, scopes []string, httpClient *http.Client, leeway time.Duration, logger zerolog.Logger) *tokenManager {
	return &tokenManager{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
			// Auto-detection would resend rejected credentials in the form body.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
		logger:     logger,
		leeway:     leeway,
		now:        time.Now,
	}
}

// Token returns a non-expired access token, requesting a new one from the
// identity service when none is held or the held one is stale.
func (tm *tokenManager) Token(ctx context.Context) (*oauth2.Token, error) {
	tm.mu.RLock()
	if tm.validLocked() {
		token := tm.token
		tm.mu.RUnlock()
		return token, nil
	}
	tm.mu.RUnlock()

	// The shared fetch must not be cancelled by whichever caller happened to start it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := tm.group.DoChan("token", func() (any, error) {
		tm.mu.RLock()
		if tm.validLocked() {
			token := tm.token
			tm.mu.RUnlock()
			return token, nil
		}
		tm.mu.RUnlock()

		token, lifetime, err := tm.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		tm.mu.Lock()
		tm.token = token
		tm.lifetime = lifetime
		tm.mu.Unlock()
		return token, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*oauth2.Token), nil
	case <-ctx.Done():
		return nil, &ConnectivityError{Op: "token", URL: tm.config.TokenURL, Err: ctx.Err()}
	}
}

// invalidate drops the held token if it is still the rejected one, so that a
// burst of 401s for the same token results in a single refresh.
func (tm *tokenManager) invalidate(rejected string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.token != nil && tm.token.AccessToken == rejected {
		tm.token = nil
		tm.lifetime = 0
	}
}

// expiry returns the expiry of the held token, or the zero time.
func (tm *tokenManager) expiry() time.Time {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	if tm.token == nil {
		return time.Time{}
	}
	return tm.token.Expiry
}

// validLocked must be called with mu held. The leeway never exceeds half of
// the token's lifetime, so short-lived tokens are still reused.
func (tm *tokenManager) validLocked() bool {
	if tm.token == nil || tm.token.AccessToken == "" {
		return false
	}

	leeway := tm.leeway
	if half := tm.lifetime / 2; tm.lifetime > 0 && leeway > half {
		leeway = half
	}
	return tm.now().Add(leeway).Before(tm.token.Expiry)
}

// fetch requests a new token and returns it with its lifetime.
func (tm *tokenManager) fetch(ctx context.Context) (*oauth2.Token, time.Duration, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, tm.httpClient)

	token, err := tm.config.Token(ctx)
	if err != nil {
		return nil, 0, tm.classify(err)
	}

	// x/oauth2 computes Expiry from the wall clock at receipt.
	lifetime := time.Until(token.Expiry)
	if token.Expiry.IsZero() {
		tm.logger.Warn().
			Dur("assumed_lifetime", fallbackTokenLifetime).
			Msg("Token response has no expires_in")
		token.Expiry = tm.now().Add(fallbackTokenLifetime)
		lifetime = fallbackTokenLifetime
	}

	scope, _ := token.Extra("scope").(string)
	tm.logger.Debug().
		Str("token_url", tm.config.TokenURL).
		Time("expires", token.Expiry).
		Str("scope", scope).
		Msg("Obtained Battle.net access token")

	return token, lifetime, nil
}

func (tm *tokenManager) classify(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		authErr := &AuthError{Body: snippet(retrieveErr.Body), Err: err}
		if retrieveErr.Response != nil {
			authErr.StatusCode = retrieveErr.Response.StatusCode
		}
		return authErr
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ConnectivityError{Op: "token", URL: tm.config.TokenURL, Err: err}
	}

	// x/oauth2 reports a body read failure with this prefix; everything else is a decoding problem.
	if strings.Contains(err.Error(), "cannot fetch token") {
		return &ConnectivityError{Op: "token", URL: tm.config.TokenURL, Err: err}
	}
	return &ParseError{Target: "token response", Err: err}
}
