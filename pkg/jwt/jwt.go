package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer     = "gisteam-ops"
	adminScope = "admin"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNoSecret     = errors.New("operator token secret is not configured")
)

// Claims identify the operator a token was issued to
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// OperatorTokenService issues and validates short-lived operator tokens for
// the admin API, signed with HS256.
type OperatorTokenService struct {
	secret []byte
	now    func() time.Time
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// NewOperatorTokenService creates a token service
func NewOperatorTokenService(secret string) *OperatorTokenService {
	return &OperatorTokenService{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for operator valid for ttl.
func (s *OperatorTokenService) Issue(operator string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}
	now := s.now()
	claims := &Claims{
		Scope: adminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   operator,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return signJWTToken(jwt.NewWithClaims(jwt.SigningMethodHS256, claims), s.secret)
}

// Validate checks signature, expiry, issuer and scope.
func (s *OperatorTokenService) Validate(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Scope != adminScope {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
