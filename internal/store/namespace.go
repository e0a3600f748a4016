package store

import "github.com/golang-jwt/jwt/v4"

// AnonymousNamespace is used when no session token is present or the token
// cannot be parsed.
const AnonymousNamespace = "anonymous"

// Namespace derives the per-user storage namespace from the session token's
// subject claim. The token is parsed without signature verification: the
// namespace only isolates locally-cached calendars on a shared device, it is
// not an authentication boundary.
func Namespace(token string) string {
	if token == "" {
		return AnonymousNamespace
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return AnonymousNamespace
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return AnonymousNamespace
	}
	return sub
}
