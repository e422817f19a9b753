// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the server-side session lifecycle and the
one-shot flash message channel.

A session correlates the client-held cookie with a resolved user identity
and transient flash messages. Records live in Redis under a TTL equal to
the remaining absolute session lifetime, so natural expiry is simply store
eviction.

# State Machine

	Anonymous ──(login/register)──▶ Authenticated
	Authenticated ──(logout, expiry)──▶ Anonymous

# Touch Semantics

Expiry is extended lazily: a request only rewrites the session record when
the time since the last persisted touch exceeds a configured threshold.
Requests inside the window are served from the loaded record with no store
write, bounding write amplification against Redis.
*/
package session

import (
	"time"

	"github.com/taibuivan/wanderstay/internal/platform/constants"
)

// # Session Record

// Record is the persisted session state, stored as JSON in Redis under
// the key "session:<id>".
type Record struct {
	// ID is the session identifier; it is the Redis key suffix and is
	// not serialized into the record body.
	ID string `json:"-"`

	// IdentityToken is the opaque serialized User reference. Empty for
	// anonymous sessions. It is signed server-side and never exposed to
	// the client.
	IdentityToken string `json:"identity_token,omitempty"`

	// CreatedAt marks session issuance; the cookie's absolute expiry is
	// derived from it.
	CreatedAt time.Time `json:"created_at"`

	// LastTouch is the time of the last persisted expiry renewal.
	LastTouch time.Time `json:"last_touch"`

	// ExpiresAt is the rolling expiry deadline.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAuthenticated reports whether an identity is attached to the session.
func (record *Record) IsAuthenticated() bool {
	return record.IdentityToken != ""
}

// IsExpired reports whether the record has passed its expiry deadline.
// Redis normally evicts expired records first, but the deadline is also
// enforced here in case a record is read just before eviction.
func (record *Record) IsExpired(now time.Time) bool {
	return !record.ExpiresAt.After(now)
}

// # Flash Messages

// FlashKind discriminates the two recognized flash message slots.
type FlashKind string

const (
	// FlashSuccess marks a positive outcome notice.
	FlashSuccess FlashKind = "success"

	// FlashError marks a failure notice.
	FlashError FlashKind = "error"
)

// FlashMessages holds the drained flash queues, keyed by slot.
// Empty slots are omitted from the JSON representation.
type FlashMessages struct {
	Success []string `json:"success,omitempty"`
	Error   []string `json:"error,omitempty"`
}

// IsEmpty reports whether both slots are empty.
func (messages FlashMessages) IsEmpty() bool {
	return len(messages.Success) == 0 && len(messages.Error) == 0
}

// # Constants

const (
	// sessionIDLength is the byte length of the random session identifier.
	sessionIDLength = 32

	// TTL is the absolute session lifetime.
	TTL = constants.SessionTTL
)
