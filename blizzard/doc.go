// Package blizzard provides an authenticated client for the Battle.net game data APIs.
//
// The client handles the OAuth2 client-credentials flow against the regional
// identity service, region and locale based URL construction, and maps
// responses and failures into typed values. Game specific endpoints live in the
// classic, wow, hearthstone and diablo packages, which all build on this client.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := blizzard.NewClient(
//		os.Getenv("CLIENT_ID"),
//		os.Getenv("CLIENT_SECRET"),
//		blizzard.RegionEU,
//		logger,
//		blizzard.WithLocale(blizzard.LocaleGerman),
//		blizzard.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	realms, err := classic.New(client).GetRealms(ctx)
//
// # Tokens
//
// Access tokens are acquired lazily, cached per client and refreshed one minute
// before they expire (see WithTokenLeeway). Concurrent callers that find the
// token stale share a single refresh. If a data request is answered with 401
// the token is dropped and the request is replayed once; a second 401 is
// returned as an *AuthError.
//
// # Error Handling
//
// Every failure is one of:
//
//   - *ConnectivityError: no response was received (errors.Is ErrConnectivity)
//   - *AuthError: credentials or token rejected (errors.Is ErrUnauthorized)
//   - *APIError: any other non-2xx response, status and body passed through
//   - *ParseError: the response did not match the expected schema (errors.Is ErrParse)
//
//	var apiErr *blizzard.APIError
//	if errors.As(err, &apiErr) && apiErr.IsRateLimited() {
//		// back off
//	}
package blizzard
