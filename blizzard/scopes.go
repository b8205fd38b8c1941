package blizzard

// OAuth2 scopes for profile data. Client-credentials tokens do not need them
// for game data, but they can be requested with WithScopes.
const (
	ScopeWoWProfile     = "wow.profile"
	ScopeSC2Profile     = "sc2.profile"
	ScopeDiablo3Profile = "d3.profile"
	ScopeOpenID         = "openid"
)
