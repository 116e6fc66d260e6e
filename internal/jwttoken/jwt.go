// Package jwttoken issues and validates the HS256 bearer tokens that carry a
// reporter's identity. The registry itself never reads ambient identity; the
// HTTP layer validates a token here and passes the resulting identity into
// every operation explicitly.
package jwttoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the token claims for reporter identities.
type Claims struct {
	ReporterID string `json:"reporter_id"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
}

func NewService(signingKey, issuer string) *Service {
	return &Service{signingKey: []byte(signingKey), issuer: issuer}
}

// GenerateToken mints a signed token for the given reporter identity.
func (s *Service) GenerateToken(reporterID string, expiresIn time.Duration) (string, error) {
	if reporterID == "" {
		return "", errors.New("reporter id is required")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ReporterID: reporterID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, expiry, and issuer, and returns the
// reporter identity the token carries.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.ReporterID == "" {
		return "", errors.New("invalid token")
	}
	return claims.ReporterID, nil
}
