package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for every token that cannot be trusted, whatever the cause.
var ErrUnauthorized = errors.New("unauthorized")

// UserClaim identifies the user a token was issued for.
type UserClaim struct {
	ID string `json:"id"`
}

// UserClaims is the payload of a user bearer token: {"user":{"id":...}} plus the registered claims.
type UserClaims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// JWTAuthenticator represents a JWT based authenticator.
type JWTAuthenticator struct {
	secret    []byte
	audience  string
	issuer    string
	expiresIn time.Duration
	now       func() time.Time
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(secret, audience, issuer string, expiresIn time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{
		secret:    []byte(secret),
		audience:  audience,
		issuer:    issuer,
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// ExpiresIn returns the lifetime of issued user tokens.
func (a *JWTAuthenticator) ExpiresIn() time.Duration {
	return a.expiresIn
}

// IssueUserToken signs a token for the given user that expires after the configured lifetime.
func (a *JWTAuthenticator) IssueUserToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}

	now := a.now()
	claims := UserClaims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiresIn)),
			Issuer:    a.issuer,
		},
	}
	if a.audience != "" {
		claims.Audience = jwt.ClaimStrings{a.audience}
	}

	return a.GenerateToken(claims)
}

// GenerateToken generates a JWT token with the given claims.
func (a *JWTAuthenticator) GenerateToken(claims jwt.Claims) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("signing secret is empty")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenStr, nil
}

// ValidateUserToken resolves a bearer token to the user id it was issued for.
// Any parse, signature, expiry, issuer or audience failure yields ErrUnauthorized.
func (a *JWTAuthenticator) ValidateUserToken(tokenString string) (string, error) {
	claims := &UserClaims{}
	if _, err := a.ValidateTokenWithClaims(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if claims.User.ID == "" {
		return "", fmt.Errorf("%w: missing user claim", ErrUnauthorized)
	}

	return claims.User.ID, nil
}

// ValidateTokenWithClaims validates a JWT token and parses it into the provided claims type.
// The claims parameter should be a pointer to a struct that implements jwt.Claims.
func (a *JWTAuthenticator) ValidateTokenWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return token, nil
}
