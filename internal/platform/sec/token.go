// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Identity Token Codec

// IdentityClaims represents the payload embedded inside a signed identity token.
//
// # Why custom claims?
//
// By embedding the UserID and Username directly inside the token that lives
// in the session record, the session middleware can reconstruct the active
// user context WITHOUT querying the database on every single API request.
type IdentityClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// TokenCodec serializes an [Identity] to an opaque signed token and back.
//
// Tokens are signed with HMAC-SHA256 using the SESSION_SECRET. They are never
// exposed to the client directly; they live inside the server-side session
// record and are verified on every deserialization.
type TokenCodec struct {
	secret []byte
	issuer string
}

// minSecretLength guards against weak HMAC keys slipping in via misconfiguration.
const minSecretLength = 16

// NewTokenCodec creates a codec bound to the given signing secret and issuer.
func NewTokenCodec(secret, issuer string) (*TokenCodec, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("sec: session secret must be at least %d bytes", minSecretLength)
	}

	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// Serialize produces a signed token for the given identity.
//
// The token's own expiry matches the absolute session lifetime; session
// eviction is what actually ends a login, the claim expiry is a backstop.
func (codec *TokenCodec) Serialize(identity Identity, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   identity.UserID,
		Username: identity.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign identity token: %w", err)
	}

	return signedToken, nil
}

// Deserialize verifies a token's signature and validity and restores the identity.
func (codec *TokenCodec) Deserialize(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return codec.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid identity token: %w", err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid identity token claims")
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// # Random Tokens

// GenerateSecureToken returns a URL-safe random string of the given byte length.
// It is used for session IDs, which must be unguessable.
func GenerateSecureToken(length int) (string, error) {
	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}
