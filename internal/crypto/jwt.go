package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "toolbox"
	tokenAudience = "toolbox-api"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrSubjectMissing = errors.New("token subject is required")
)

// APIClaims identify the caller of the lookup API.
type APIClaims struct {
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 API token for subject, valid for ttl.
func IssueToken(subject, secret string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrSubjectMissing
	}

	now := time.Now()
	claims := APIClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates an API token and returns its claims.
func ParseToken(raw, secret string) (*APIClaims, error) {
	claims := &APIClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
