package blizzard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is a Battle.net game data client for one region and credential pair.
// It is safe for concurrent use.
type Client struct {
	region     Region
	locale     Locale
	baseURL    string
	userAgent  string
	httpClient *http.Client
	tokens     *tokenManager
	logger     zerolog.Logger
}

// Request describes a single game data call.
type Request struct {
	// Namespace is sent as the Battlenet-Namespace header when set.
	Namespace string
	// Params are added to the query string. The client adds the locale itself.
	Params url.Values
	// Locale overrides the client locale for this request. Use NoLocale to
	// receive every translation.
	Locale Locale
}

// NoLocale asks the API for all translations of localized fields.
const NoLocale Locale = "-"

// NewClient creates a new Battle.net client. No network calls are made until the
// first request; use TestConnection to verify the credentials up front.
func NewClient(clientID, clientSecret string, region Region, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client ID is required", ErrInvalidConfig)
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: client secret is required", ErrInvalidConfig)
	}
	if !region.Valid() {
		return nil, fmt.Errorf("%w: unknown region %q", ErrInvalidConfig, region)
	}

	options := defaultOptions(region)
	for _, opt := range opts {
		opt(&options)
	}

	if _, err := url.Parse(options.baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", ErrInvalidConfig, err)
	}

	tokenClient := options.httpClient
	if tokenClient == nil {
		tokenClient = &http.Client{Timeout: options.timeout}
	}
	base := tokenClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	tokens := newTokenManager(clientID, clientSecret, options.tokenURL, options.scopes, tokenClient, options.tokenLeeway, logger)

	return &Client{
		region:    region,
		locale:    options.locale,
		baseURL:   options.baseURL,
		userAgent: options.userAgent,
		httpClient: &http.Client{
			Transport: &authTransport{
				base:    base,
				tokens:  tokens,
				limiter: options.limiter,
				logger:  logger,
			},
			Timeout:       tokenClient.Timeout,
			CheckRedirect: tokenClient.CheckRedirect,
			Jar:           tokenClient.Jar,
		},
		tokens: tokens,
		logger: logger,
	}, nil
}

// Region returns the region the client targets.
func (c *Client) Region() Region {
	return c.region
}

// Locale returns the locale sent with data requests.
func (c *Client) Locale() Locale {
	return c.locale
}

// Logger returns the logger the client was created with.
func (c *Client) Logger() zerolog.Logger {
	return c.logger
}

// Namespace returns the client's region-specific namespace of the given kind.
func (c *Client) Namespace(kind NamespaceKind) string {
	return c.region.Namespace(kind)
}

// TestConnection verifies the credentials by acquiring an access token.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.tokens.Token(ctx)
	return err
}

// TokenExpiry returns when the currently held access token expires, or the
// zero time if no token has been acquired yet.
func (c *Client) TokenExpiry() time.Time {
	return c.tokens.expiry()
}

// Get performs an authenticated GET against path (relative to the regional
// gateway) and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, req Request, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Target: path, Body: snippet(body), Err: err}
	}
	return nil
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, req Request) ([]byte, error) {
	endpoint := c.buildURL(path, req)

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.Namespace != "" {
		httpReq.Header.Set("Battlenet-Namespace", req.Namespace)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("region", c.region.String()).
		Str("namespace", req.Namespace).
		Msg("Making Battle.net API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.requestError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectivityError{Op: "read", URL: endpoint, Err: err}
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Received Battle.net API response")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &AuthError{StatusCode: resp.StatusCode, Body: snippet(body)}
	default:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(resp.StatusCode, body),
			Body:       string(body),
			URL:        endpoint,
		}
	}
}

func (c *Client) buildURL(path string, req Request) string {
	params := url.Values{}
	for k, vs := range req.Params {
		params[k] = append([]string(nil), vs...)
	}

	switch req.Locale {
	case NoLocale:
	case "":
		params.Set("locale", c.locale.String())
	default:
		params.Set("locale", req.Locale.String())
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	return endpoint
}

// requestError keeps typed errors raised while acquiring a token and treats
// everything else from the transport as a connectivity failure.
func (c *Client) requestError(endpoint string, err error) error {
	var (
		authErr  *AuthError
		parseErr *ParseError
		connErr  *ConnectivityError
	)
	switch {
	case errors.As(err, &authErr):
		return authErr
	case errors.As(err, &parseErr):
		return parseErr
	case errors.As(err, &connErr):
		return connErr
	default:
		return &ConnectivityError{Op: "request", URL: endpoint, Err: err}
	}
}

// apiErrorMessage extracts the vendor's error detail, falling back to the status text.
func apiErrorMessage(status int, body []byte) string {
	var detail struct {
		Code   int    `json:"code"`
		Type   string `json:"type"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return detail.Detail
	}
	return http.StatusText(status)
}
