package blizzard

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the HTTP timeout used when WithTimeout is not given.
const DefaultTimeout = 5 * time.Second

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	locale      Locale
	timeout     time.Duration
	httpClient  *http.Client
	baseURL     string
	tokenURL    string
	scopes      []string
	tokenLeeway time.Duration
	limiter     *rate.Limiter
	userAgent   string
}

func defaultOptions(region Region) clientOptions {
	return clientOptions{
		locale:      region.DefaultLocale(),
		timeout:     DefaultTimeout,
		baseURL:     region.APIBaseURL(),
		tokenURL:    region.TokenURL(),
		tokenLeeway: DefaultTokenLeeway,
		userAgent:   "bubblehearth",
	}
}

// WithLocale sets the locale sent with every data request.
func WithLocale(locale Locale) Option {
	return func(o *clientOptions) {
		if locale != "" {
			o.locale = locale
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient sets the HTTP client used for both identity and data requests.
// Its Transport is wrapped, not replaced; the client itself is not modified.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithBaseURL overrides the regional API gateway, e.g. for a proxy.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTokenURL overrides the regional OAuth2 token endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(o *clientOptions) {
		if tokenURL != "" {
			o.tokenURL = tokenURL
		}
	}
}

// WithScopes requests the given OAuth2 scopes with each token.
func WithScopes(scopes ...string) Option {
	return func(o *clientOptions) {
		o.scopes = append(o.scopes, scopes...)
	}
}

// WithTokenLeeway sets how long before expiry a token is refreshed.
// Zero refreshes only once the expiry has passed.
func WithTokenLeeway(leeway time.Duration) Option {
	return func(o *clientOptions) {
		if leeway >= 0 {
			o.tokenLeeway = leeway
		}
	}
}

// WithRateLimit throttles data requests on the client side. Battle.net
// allows 100 requests per second per client; throttled responses are still
// surfaced as APIError with IsRateLimited.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(o *clientOptions) {
		if requestsPerSecond > 0 && burst > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}
