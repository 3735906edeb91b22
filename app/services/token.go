package services

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/app/models"
)

// MinSecretLength is the shortest accepted session-signing secret.
const MinSecretLength = 16

type sessionClaims struct {
	UserID int `json:"uid"`
	jwt.RegisteredClaims
}

// TokenSigner turns session records into the signed value kept in the cookie.
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner creates a signer for HS256 tokens
func NewTokenSigner(secret []byte) (*TokenSigner, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	return &TokenSigner{secret: secret}, nil
}

// Sign issues a token referring to the session
func (s *TokenSigner) Sign(session *models.Session) (string, error) {
	claims := sessionClaims{
		UserID: session.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the session id and user id it carries.
func (s *TokenSigner) Parse(raw string) (string, int, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.ID == "" || claims.UserID <= 0 {
		return "", 0, errors.Join(ErrInvalidSession, errors.New("token is missing claims"))
	}
	return claims.ID, claims.UserID, nil
}
