// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package token issues and verifies signed, purpose-scoped, time-limited
// tokens carrying a user identifier. Tokens are self-contained: nothing is
// persisted, verification is a pure function of the token, the secret, and
// wall-clock time.
package token

import (
	"errors"
	"time"

	"github.com/gorilla/securecookie"
)

// Purpose labels. The purpose participates in the MAC, so a token issued
// for one purpose never verifies under another.
const (
	PurposeEmailVerification = "email-verification"
	PurposePasswordReset     = "password-reset"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, wrong purpose, expired, or malformed payload.
var ErrInvalidToken = errors.New("invalid token")

// Codec encodes and decodes tokens for a single purpose.
type Codec struct {
	purpose string
	strict  *securecookie.SecureCookie // enforces the TTL
	loose   *securecookie.SecureCookie // signature check only
}

// NewCodec creates a codec bound to a purpose, secret, and TTL.
func NewCodec(purpose string, secret []byte, ttl time.Duration) *Codec {
	strict := securecookie.New(secret, nil)
	strict.SetSerializer(securecookie.JSONEncoder{})
	strict.MaxAge(int(ttl.Seconds()))

	loose := securecookie.New(secret, nil)
	loose.SetSerializer(securecookie.JSONEncoder{})
	loose.MaxAge(0)

	return &Codec{
		purpose: purpose,
		strict:  strict,
		loose:   loose,
	}
}

type payload struct {
	UserID int64 `json:"user_id"`
}

// Issue produces a tamper-evident, base64-encoded token binding the user
// identifier and the current time under the codec's purpose.
func (c *Codec) Issue(userID int64) (string, error) {
	return c.strict.Encode(c.purpose, payload{UserID: userID})
}

// Verify checks signature, purpose, and TTL, and extracts the user
// identifier. All failure modes collapse to ErrInvalidToken.
func (c *Codec) Verify(tok string) (int64, error) {
	return decode(c.strict, c.purpose, tok)
}

// DecodeExpired performs the same signature and purpose check as Verify
// but skips the TTL check. It exists solely so the resend flow can recover
// an identity from an already-expired token; a tampered token is still
// rejected.
func (c *Codec) DecodeExpired(tok string) (int64, error) {
	return decode(c.loose, c.purpose, tok)
}

func decode(sc *securecookie.SecureCookie, purpose, tok string) (int64, error) {
	var p payload
	if err := sc.Decode(purpose, tok, &p); err != nil {
		return 0, ErrInvalidToken
	}
	if p.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return p.UserID, nil
}
