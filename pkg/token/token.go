// Package token issues and verifies the signed link tokens used by
// guest-list management links and group/occasion share links. Tokens are
// opaque to clients; verification yields the booking id they were minted
// for or an error.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose scopes a token to one link type so a share link can never be
// replayed as a guest-list management credential.
type Purpose string

const (
	PurposeGuestList Purpose = "guest_list"
	PurposeShare     Purpose = "share"
)

var (
	ErrInvalidToken = errors.New("invalid link token")
	ErrExpiredToken = errors.New("expired link token")
)

type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs a token binding bookingID to the given purpose for ttl.
func (i *Issuer) Issue(bookingID uuid.UUID, purpose Purpose, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": bookingID.String(),
		"pur": string(purpose),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign link token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the booking id it grants access to.
// The purpose must match the one the token was issued with.
func (i *Issuer) Verify(tokenStr string, purpose Purpose) (uuid.UUID, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	if pur, _ := claims["pur"].(string); pur != string(purpose) {
		return uuid.Nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	bookingID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return bookingID, nil
}
