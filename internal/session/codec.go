package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "sitedesk"

// ErrInvalidCookie is returned by Decode for cookies that were not issued by this Codec.
var ErrInvalidCookie = errors.New("invalid session cookie")

// Codec signs session ids for transport in a cookie. The cookie value is an
// HS256 token whose jti is the session id.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec signing with secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("missing session secret")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Encode returns the signed cookie value for session id.
func (c *Codec) Encode(id string) (string, error) {
	if id == "" {
		return "", errors.New("missing session id")
	}
	claims := jwt.RegisteredClaims{
		Issuer:   issuer,
		IssuedAt: jwt.NewNumericDate(time.Now()),
		ID:       id,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies value and returns the session id it carries.
func (c *Codec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}
