// Package auth resolves opaque connection tokens into role claims.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the capability class of a connection.
type Role string

// Role values.
const (
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	RoleUnity   Role = "unity"
	RoleDebug   Role = "debug"
	RoleStudent Role = "student"
)

// ValidRole reports whether r names a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleTeacher, RoleAdmin, RoleUnity, RoleDebug, RoleStudent:
		return true
	default:
		return false
	}
}

// Sentinel kinds for auth errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrUnknownRole  = errors.New("unknown role in token")
)

// Claims is the resolved identity of a connection.
type Claims struct {
	Subject string
	Role    Role
}

// tokenClaims is the JWT claim set we mint and accept.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// devTokens shortcut the JWT path in dev mode so local clients need no
// signing setup.
var devTokens = map[string]Claims{
	"dev-token":       {Subject: "dev-teacher", Role: RoleTeacher},
	"dev-debug-token": {Subject: "dev-debugger", Role: RoleDebug},
	"dev-unity-token": {Subject: "dev-unity", Role: RoleUnity},
}

// Decoder validates tokens and extracts claims.
type Decoder struct {
	secret  []byte
	devMode bool
}

// NewDecoder creates a token decoder. With devMode set, the fixed dev
// tokens are accepted before any JWT parsing.
func NewDecoder(secret string, devMode bool) *Decoder {
	return &Decoder{
		secret:  []byte(secret),
		devMode: devMode,
	}
}

// Decode resolves a token to claims. Any parse or claim failure is a
// reject; callers never learn why beyond the sentinel.
func (d *Decoder) Decode(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrInvalidToken
	}

	if d.devMode {
		if c, ok := devTokens[token]; ok {
			return c, nil
		}
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return d.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	role := Role(claims.Role)
	if !ValidRole(role) {
		return Claims{}, ErrUnknownRole
	}

	return Claims{Subject: claims.Subject, Role: role}, nil
}

// Mint signs a token for the subject and role, used by tooling and
// tests.
func (d *Decoder) Mint(subject string, role Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
		},
	})
	signed, err := token.SignedString(d.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
