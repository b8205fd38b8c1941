package blizzard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/s0up4200/bubblehearth/internal/testutil"
)

func testToken(access string, expiry time.Time) *oauth2.Token {
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer", Expiry: expiry}
}

func getIndex(t *testing.T, client *Client) error {
	t.Helper()
	var out map[string]any
	return client.Get(context.Background(), "/data/wow/realm/index", Request{}, &out)
}

func TestToken_ReusedWhileValid(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.HandleJSON("/data/wow/realm/index", `{}`)
	client := newTestClient(t, fake)

	for i := 0; i < 3; i++ {
		require.NoError(t, getIndex(t, client))
	}

	assert.Equal(t, 1, fake.TokenRequests())
	assert.Equal(t, 3, fake.DataRequests())
	assert.Equal(t, "Bearer token-1", fake.LastRequest().Header.Get("Authorization"))
}

func TestToken_ExpiredTokenRefreshedOnce(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.ExpiresIn = 3600
	fake.HandleJSON("/data/wow/realm/index", `{}`)
	client := newTestClient(t, fake)

	require.NoError(t, getIndex(t, client))
	require.Equal(t, 1, fake.TokenRequests())

	// Move the clock past the first token's expiry.
	client.tokens.now = func() time.Time { return time.Now().Add(90 * time.Minute) }

	require.NoError(t, getIndex(t, client))
	assert.Equal(t, 2, fake.TokenRequests())
	assert.Equal(t, 2, fake.DataRequests())
	assert.Equal(t, "Bearer token-2", fake.LastRequest().Header.Get("Authorization"))
}

func TestToken_RefreshedWithinLeeway(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.ExpiresIn = 3600
	fake.HandleJSON("/data/wow/realm/index", `{}`)

	client := newTestClient(t, fake, WithTokenLeeway(10*time.Minute))

	require.NoError(t, getIndex(t, client))
	require.NoError(t, getIndex(t, client))
	require.Equal(t, 1, fake.TokenRequests())

	// Five minutes before expiry is inside the ten minute leeway.
	client.tokens.now = func() time.Time { return time.Now().Add(55 * time.Minute) }

	require.NoError(t, getIndex(t, client))
	assert.Equal(t, 2, fake.TokenRequests(), "a token inside the leeway window is stale")
}

func TestToken_ShortLivedTokenReused(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.ExpiresIn = 30
	fake.HandleJSON("/data/wow/realm/index", `{}`)
	client := newTestClient(t, fake)

	for i := 0; i < 3; i++ {
		require.NoError(t, getIndex(t, client))
	}

	assert.Equal(t, 1, fake.TokenRequests(), "the default leeway must not exceed a 30s token lifetime")
	assert.Equal(t, 3, fake.DataRequests())
}

func TestToken_MissingExpiryGetsFallbackLifetime(t *testing.T) {
	var mu sync.Mutex
	requests := 0

	fake := testutil.NewFakeBattleNet(t)
	fake.HandleToken(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"no-expiry","token_type":"bearer"}`)
	})
	client := newTestClient(t, fake)

	require.NoError(t, client.TestConnection(context.Background()))
	require.NoError(t, client.TestConnection(context.Background()))

	expiry := client.TokenExpiry()
	require.False(t, expiry.IsZero())
	assert.WithinDuration(t, time.Now().Add(fallbackTokenLifetime), expiry, 5*time.Second)

	mu.Lock()
	assert.Equal(t, 1, requests)
	mu.Unlock()

	// Once the assumed lifetime has passed the token is refreshed.
	client.tokens.now = func() time.Time { return time.Now().Add(fallbackTokenLifetime + time.Second) }
	require.NoError(t, client.TestConnection(context.Background()))

	mu.Lock()
	assert.Equal(t, 2, requests)
	mu.Unlock()
}

func TestToken_ConcurrentCallersShareRefresh(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.HandleJSON("/data/wow/realm/index", `{}`)

	release := make(chan struct{})
	fake.HandleToken(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, testutil.TokenJSON("shared", 3600))
	})
	client := newTestClient(t, fake)

	const callers = 20
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.tokens.Token(context.Background())
			errs <- err
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, fake.TokenRequests())
}

func TestToken_RetryOnceAfter401(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.HandleJSON("/data/wow/realm/index", `{}`)
	client := newTestClient(t, fake)

	require.NoError(t, client.TestConnection(context.Background()))
	fake.RejectNext(1)

	require.NoError(t, getIndex(t, client))
	assert.Equal(t, 2, fake.TokenRequests())
	assert.Equal(t, 2, fake.DataRequests())
	assert.Equal(t, "Bearer token-2", fake.LastRequest().Header.Get("Authorization"))
}

func TestToken_Second401IsAuthError(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.HandleJSON("/data/wow/realm/index", `{}`)
	client := newTestClient(t, fake)

	fake.RejectNext(2)

	err := getIndex(t, client)
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 2, fake.TokenRequests())
	assert.Equal(t, 2, fake.DataRequests())
}

func TestToken_RejectedCredentials(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.HandleToken(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"invalid_client","error_description":"Invalid client or Invalid client credentials"}`)
	})
	client := newTestClient(t, fake)

	err := client.TestConnection(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid_client")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = getIndex(t, client)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, fake.DataRequests(), "no data request without a token")
}

func TestToken_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "truncated json", body: `{"access_token": "abc", "expires_in":`},
		{name: "missing access token", body: `{"token_type":"bearer","expires_in":3600}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeBattleNet(t)
			fake.HandleToken(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.body)
			})
			client := newTestClient(t, fake)

			err := client.TestConnection(context.Background())
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.ErrorIs(t, err, ErrParse)

			assert.ErrorIs(t, getIndex(t, client), ErrParse)
		})
	}
}

func TestToken_Unreachable(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	fake := testutil.NewFakeBattleNet(t)
	client := newTestClient(t, fake, WithTokenURL(closed.URL+"/token"))

	err := client.TestConnection(context.Background())
	require.Error(t, err)

	var connErr *ConnectivityError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "token", connErr.Op)
	assert.ErrorIs(t, err, ErrConnectivity)

	assert.ErrorIs(t, getIndex(t, client), ErrConnectivity)
}

func TestToken_InvalidateOnlyDropsRejectedToken(t *testing.T) {
	tm := &tokenManager{now: time.Now, leeway: time.Minute}
	tm.token = testToken("current", time.Now().Add(time.Hour))

	tm.invalidate("stale")
	assert.NotNil(t, tm.token)

	tm.invalidate("current")
	assert.Nil(t, tm.token)
	assert.True(t, tm.expiry().IsZero())
}

func TestToken_Validity(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   time.Time
		lifetime time.Duration
		access   string
		valid    bool
	}{
		{name: "future", expiry: now.Add(time.Hour), access: "a", valid: true},
		{name: "inside leeway", expiry: now.Add(30 * time.Second), access: "a", valid: false},
		{name: "inside leeway of long lived token", expiry: now.Add(30 * time.Second), lifetime: time.Hour, access: "a", valid: false},
		{name: "short lived token keeps half its lifetime", expiry: now.Add(30 * time.Second), lifetime: 30 * time.Second, access: "a", valid: true},
		{name: "short lived token past half its lifetime", expiry: now.Add(10 * time.Second), lifetime: 30 * time.Second, access: "a", valid: false},
		{name: "expired", expiry: now.Add(-time.Second), access: "a", valid: false},
		{name: "no expiry", access: "a", valid: false},
		{name: "empty access token", expiry: now.Add(time.Hour), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := &tokenManager{
				now:      func() time.Time { return now },
				leeway:   time.Minute,
				token:    testToken(tt.access, tt.expiry),
				lifetime: tt.lifetime,
			}
			assert.Equal(t, tt.valid, tm.validLocked())
		})
	}
}
