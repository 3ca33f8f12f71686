package client

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// Session is the authenticated context every view operation runs under.
// Generation changes on each sign-in and sign-out; responses issued under an
// older generation are discarded.
type Session struct {
	Token      string
	OwnerID    string
	Generation uint64
}

// OwnerFromToken reads the owner id out of a bearer token without verifying
// the signature. The result is for display only; the server is the authority.
func OwnerFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	for _, key := range []string{"id", "uid", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("decode token: no owner id claim")
}
