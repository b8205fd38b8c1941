// Package testutil provides a fake Battle.net server and HTTP helpers shared by package tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// JSONResponse builds a response with the given status and JSON body.
func JSONResponse(req *http.Request, status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

// TokenJSON returns a token endpoint response body.
func TokenJSON(accessToken string, expiresIn int) string {
	return fmt.Sprintf(`{"access_token":%q,"token_type":"bearer","expires_in":%d,"sub":"test-client"}`, accessToken, expiresIn)
}

// FakeBattleNet serves both the OAuth2 token endpoint (at /token) and game
// data routes registered with Handle. Data routes require a bearer token
// previously issued by the fake.
type FakeBattleNet struct {
	*httptest.Server

	// ExpiresIn is the lifetime, in seconds, of issued tokens.
	ExpiresIn int

	mu            sync.Mutex
	tokenHandler  http.HandlerFunc
	routes        map[string]http.HandlerFunc
	issued        map[string]bool
	rejectNext    int
	tokenRequests int
	dataRequests  int
	lastRequest   *http.Request
}

// NewFakeBattleNet starts a fake server that is closed when the test ends.
func NewFakeBattleNet(tb testing.TB) *FakeBattleNet {
	tb.Helper()

	f := &FakeBattleNet{
		ExpiresIn: 86399,
		routes:    make(map[string]http.HandlerFunc),
		issued:    make(map[string]bool),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	tb.Cleanup(f.Server.Close)

	return f
}

// TokenURL returns the fake token endpoint.
func (f *FakeBattleNet) TokenURL() string {
	return f.URL + "/token"
}

// Handle registers a handler for a game data path.
func (f *FakeBattleNet) Handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = h
}

// HandleJSON registers a path that always answers 200 with body.
func (f *FakeBattleNet) HandleJSON(path, body string) {
	f.Handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	})
}

// HandleToken replaces the default token endpoint behaviour.
func (f *FakeBattleNet) HandleToken(h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenHandler = h
}

// RejectNext makes the next n data requests fail with 401 regardless of the token.
func (f *FakeBattleNet) RejectNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectNext = n
}

// TokenRequests returns how many token requests were received.
func (f *FakeBattleNet) TokenRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenRequests
}

// DataRequests returns how many game data requests were received.
func (f *FakeBattleNet) DataRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dataRequests
}

// LastRequest returns the most recent game data request.
func (f *FakeBattleNet) LastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRequest
}

func (f *FakeBattleNet) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/token" {
		f.serveToken(w, r)
		return
	}

	f.mu.Lock()
	f.dataRequests++
	f.lastRequest = r.Clone(r.Context())
	route, ok := f.routes[r.URL.Path]
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	authorized := f.issued[token]
	reject := f.rejectNext > 0
	if reject {
		f.rejectNext--
	}
	f.mu.Unlock()

	if reject || !authorized {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"code":401,"type":"BLZWEBAPI00000401","detail":"Unauthorized"}`)
		return
	}
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":404,"type":"BLZWEBAPI00000404","detail":"Not Found"}`)
		return
	}
	route(w, r)
}

func (f *FakeBattleNet) serveToken(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.tokenRequests++
	n := f.tokenRequests
	custom := f.tokenHandler
	expiresIn := f.ExpiresIn
	f.mu.Unlock()

	if custom != nil {
		custom(w, r)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, _, ok := r.BasicAuth(); !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"invalid_client","error_description":"missing client credentials"}`)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unsupported_grant_type"}`)
		return
	}

	token := fmt.Sprintf("token-%d", n)
	f.mu.Lock()
	f.issued[token] = true
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   expiresIn,
		"sub":          "test-client",
	})
}
