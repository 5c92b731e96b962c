package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const messageSubject = "flash"

// MessageClaims carries a one-shot status message between two requests.
type MessageClaims struct {
	jwt.RegisteredClaims
	Category string `json:"category"`
	Message  string `json:"message"`
}

// IssueMessage signs a status message with the session secret.
func (m *Manager) IssueMessage(category, message string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, MessageClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   messageSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Category: category,
		Message:  message,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign message token: %w", err)
	}
	return signed, nil
}

// ParseMessage verifies a token produced by IssueMessage.
func (m *Manager) ParseMessage(token string) (category, message string, err error) {
	if token == "" {
		return "", "", ErrInvalidToken
	}

	claims := &MessageClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, m.keyFunc,
		jwt.WithTimeFunc(m.now), jwt.WithSubject(messageSubject))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Message == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Category, claims.Message, nil
}
