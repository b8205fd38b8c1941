package blizzard

import (
	"fmt"
	"strings"
)

const (
	// GlobalAuthorizeURL is the Battle.net authorize endpoint shared by all non-China regions.
	GlobalAuthorizeURL = "https://oauth.battle.net/authorize"
	// GlobalTokenURL is the Battle.net token endpoint shared by all non-China regions.
	GlobalTokenURL = "https://oauth.battle.net/token"
	// CNAuthorizeURL is the authorize endpoint for the China region.
	CNAuthorizeURL = "https://oauth.battlenet.com.cn/authorize"
	// CNTokenURL is the token endpoint for the China region.
	CNTokenURL = "https://oauth.battlenet.com.cn/token"

	cnGatewayURL = "https://gateway.battlenet.com.cn"
)

// Region is a Battle.net account region. It selects the identity service,
// the API gateway and the default locale used by a client.
type Region string

const (
	// RegionUS targets the Americas gateway.
	RegionUS Region = "us"
	// RegionEU targets the European gateway.
	RegionEU Region = "eu"
	// RegionKR targets the Korean gateway.
	RegionKR Region = "kr"
	// RegionTW targets the Taiwanese gateway.
	RegionTW Region = "tw"
	// RegionCN targets the China gateway, which uses separate hosts.
	RegionCN Region = "cn"
)

// Regions lists every supported region.
var Regions = []Region{RegionUS, RegionEU, RegionKR, RegionTW, RegionCN}

// ParseRegion converts a region abbreviation such as "US" or "eu" into a Region.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown region %q", ErrInvalidConfig, s)
	}
	return r, nil
}

// Valid reports whether r is one of the supported regions.
func (r Region) Valid() bool {
	switch r {
	case RegionUS, RegionEU, RegionKR, RegionTW, RegionCN:
		return true
	default:
		return false
	}
}

// String returns the lower-case region abbreviation.
func (r Region) String() string {
	return string(r)
}

// TokenURL returns the OAuth2 token endpoint for the region.
func (r Region) TokenURL() string {
	if r == RegionCN {
		return CNTokenURL
	}
	return GlobalTokenURL
}

// AuthorizeURL returns the OAuth2 authorize endpoint for the region.
func (r Region) AuthorizeURL() string {
	if r == RegionCN {
		return CNAuthorizeURL
	}
	return GlobalAuthorizeURL
}

// APIBaseURL returns the game data gateway for the region, without a trailing slash.
func (r Region) APIBaseURL() string {
	if r == RegionCN {
		return cnGatewayURL
	}
	return fmt.Sprintf("https://%s.api.blizzard.com", r)
}

// DefaultLocale returns the locale used when a client is not configured with one.
func (r Region) DefaultLocale() Locale {
	switch r {
	case RegionEU:
		return LocaleEnglishGB
	case RegionKR:
		return LocaleKorean
	case RegionTW:
		return LocaleChineseTW
	case RegionCN:
		return LocaleChineseCN
	default:
		return LocaleEnglishUS
	}
}

// NamespaceKind is the category of game data a namespace refers to.
type NamespaceKind string

const (
	// NamespaceStatic holds data that only changes with game patches (items, spells).
	NamespaceStatic NamespaceKind = "static"
	// NamespaceDynamic holds data that changes over time (realms, auctions).
	NamespaceDynamic NamespaceKind = "dynamic"
	// NamespaceProfile holds character and account profile data.
	NamespaceProfile NamespaceKind = "profile"
	// NamespaceStaticClassic is the static namespace of WoW Classic.
	NamespaceStaticClassic NamespaceKind = "static-classic"
	// NamespaceDynamicClassic is the dynamic namespace of WoW Classic.
	NamespaceDynamicClassic NamespaceKind = "dynamic-classic"
)

// Namespace returns the Battlenet-Namespace value for the given kind, e.g. "dynamic-classic-us".
func (r Region) Namespace(kind NamespaceKind) string {
	return fmt.Sprintf("%s-%s", kind, r)
}
