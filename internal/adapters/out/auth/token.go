// Package auth implements the credential collaborator: signed bearer tokens
// and password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "dispatch"

var ErrEmptySecret = errors.New("token secret must not be empty")

// Claims carry the identity the token was issued for. The role is fixed at
// issue time, so a promoted user has to log in again.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens.
// It implements ports.TokenIssuer and ports.CredentialVerifier.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *TokenService) Issue(identity user.Identity) (string, error) {
	if identity.IsZero() {
		return "", errs.NewValueIsRequiredError("identity")
	}

	now := s.now()
	claims := Claims{
		UserID: identity.UserID.String(),
		Role:   identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the identity carried by token, or *errs.UnauthenticatedError.
func (s *TokenService) Verify(token string) (user.Identity, error) {
	if token == "" {
		return user.Identity{}, errs.NewUnauthenticatedError("missing bearer token")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return user.Identity{}, errs.NewUnauthenticatedErrorWithCause("invalid token", err)
	}

	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return user.Identity{}, errs.NewUnauthenticatedErrorWithCause("invalid token subject", err)
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Identity{}, errs.NewUnauthenticatedErrorWithCause("invalid token role", err)
	}

	return user.NewIdentity(id, role), nil
}
