package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a verified JWT.
//
// UserID is the "sub" claim. Users are identified by opaque strings issued
// by the identity provider, so the subject is used as is.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	UserID string `json:"-"`
}

// GetUserID returns the subject claim, failing when it is missing or empty.
func (t *Token) GetUserID() (string, error) {
	userID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if userID == "" {
		return "", errors.New("error extracting UserID from token: empty subject")
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
