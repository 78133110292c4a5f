package common

const (
	// AuthorizationHeader carries the bearer access token on API requests.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// AccessTokenKey and RefreshTokenKey name the persisted session entries.
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"

	// AdminPrefix is the path prefix of every login-gated view.
	AdminPrefix = "/admin"
	// LoginPath is where an unauthenticated admin visitor is sent.
	LoginPath = "/admin/login"

	// DefaultAPIURL is used when no API base URL is configured.
	DefaultAPIURL = "http://localhost:3001"
)
