// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/ctxkey"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
)

// # Session Manager

// Manager orchestrates the session lifecycle: creation, identity resolution,
// lazy expiry renewal, and teardown.
//
// # Failure Policy
//
// Read-path store failures (resolution, touch) are logged and degrade the
// request to anonymous — they never abort request handling. Write-path
// failures on explicit transitions (login, logout) are surfaced to the
// caller, because silently dropping them would leave the client cookie and
// the store out of sync.
type Manager struct {
	store      Store
	codec      *sec.TokenCodec
	touchAfter time.Duration
	logger     *slog.Logger

	// now is swappable so touch-threshold behavior is testable without sleeping.
	now func() time.Time
}

// NewManager constructs a [Manager].
//
// touchAfter is the minimum dwell time between persisted expiry renewals.
func NewManager(store Store, codec *sec.TokenCodec, touchAfter time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		store:      store,
		codec:      codec,
		touchAfter: touchAfter,
		logger:     logger,
		now:        time.Now,
	}
}

// Handle is the request-scoped view of one session.
//
// It carries the resolved identity and gives handlers access to the flash
// channel without reaching into ambient global state.
type Handle struct {
	record    *Record
	identity  *sec.Identity
	manager   *Manager
	persisted bool
	refreshed bool
}

// ID returns the session identifier (the cookie value).
func (handle *Handle) ID() string { return handle.record.ID }

// Identity returns the resolved identity, or nil for anonymous sessions.
func (handle *Handle) Identity() *sec.Identity { return handle.identity }

// ExpiresAt returns the session's rolling expiry deadline.
func (handle *Handle) ExpiresAt() time.Time { return handle.record.ExpiresAt }

// Refreshed reports whether the session cookie should be (re)written on
// this response: true for brand-new sessions and after a persisted touch.
func (handle *Handle) Refreshed() bool { return handle.refreshed }

/*
Start creates and persists a fresh anonymous session.

Description: Invoked on the first request without a valid session cookie.
If the store is unreachable, the returned handle is ephemeral: the request
proceeds anonymously and nothing is persisted.

Parameters:
  - context: context.Context

Returns:
  - *Handle: Always non-nil
*/
func (manager *Manager) Start(context context.Context) *Handle {
	currentTime := manager.now()

	id, err := sec.GenerateSecureToken(sessionIDLength)
	if err != nil {
		// Entropy exhaustion is not survivable in any meaningful way.
		panic("session: failed to generate session id: " + err.Error())
	}

	record := &Record{
		ID:        id,
		CreatedAt: currentTime,
		LastTouch: currentTime,
		ExpiresAt: currentTime.Add(TTL),
	}

	handle := &Handle{record: record, manager: manager, refreshed: true}

	if err := manager.store.Save(context, record); err != nil {
		manager.logger.Error("session_start_save_failed", slog.Any("error", err))
		return handle
	}

	handle.persisted = true
	return handle
}

/*
Resolve loads the session named by the cookie and reconstructs its identity.

Description: The single entry point for per-request session resolution.
Missing or expired records roll over into a fresh anonymous session. Store
connectivity failures degrade to an ephemeral anonymous handle rather than
failing the request (mutations are still blocked downstream, because no
identity gets resolved).

Parameters:
  - context: context.Context
  - id: string (session ID from the cookie)

Returns:
  - *Handle: Always non-nil
*/
func (manager *Manager) Resolve(context context.Context, id string) *Handle {
	record, err := manager.store.Get(context, id)

	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			// Cookie references an evicted or forged session. Issue a new one.
			return manager.Start(context)
		}

		// Store unreachable: fail-safe, not fail-open. The request runs
		// anonymously against the client's existing cookie.
		manager.logger.Error("session_resolve_degraded", slog.Any("error", err))
		currentTime := manager.now()
		return &Handle{
			record: &Record{
				ID:        id,
				CreatedAt: currentTime,
				LastTouch: currentTime,
				ExpiresAt: currentTime.Add(TTL),
			},
			manager: manager,
		}
	}

	if record.IsExpired(manager.now()) {
		_ = manager.store.Delete(context, record.ID)
		return manager.Start(context)
	}

	handle := &Handle{record: record, manager: manager, persisted: true}

	// Reconstruct the identity from the signed token inside the record.
	if record.IsAuthenticated() {
		identity, err := manager.codec.Deserialize(record.IdentityToken)
		if err != nil {
			manager.logger.Warn("session_identity_rejected",
				slog.String("session_id", record.ID),
				slog.Any("error", err),
			)
		} else {
			handle.identity = identity
		}
	}

	manager.touch(context, handle)
	return handle
}

// touch extends the session expiry, but only once the configured dwell time
// has elapsed since the last persisted touch. Failures are logged and
// swallowed: a missed renewal costs nothing until the absolute expiry nears.
func (manager *Manager) touch(context context.Context, handle *Handle) {
	currentTime := manager.now()

	if currentTime.Sub(handle.record.LastTouch) <= manager.touchAfter {
		return
	}

	handle.record.LastTouch = currentTime
	handle.record.ExpiresAt = currentTime.Add(TTL)

	if err := manager.store.Save(context, handle.record); err != nil {
		manager.logger.Error("session_touch_failed",
			slog.String("session_id", handle.record.ID),
			slog.Any("error", err),
		)
		return
	}

	handle.refreshed = true
}

/*
Attach binds an identity to the session, transitioning Anonymous → Authenticated.

Description: The session ID is regenerated on privilege elevation so a
pre-login cookie value can never be replayed into an authenticated session
(fixation defense). The old record is discarded best-effort.

Parameters:
  - context: context.Context
  - handle: *Handle (the current, usually anonymous, session)
  - identity: sec.Identity

Returns:
  - *Handle: The replacement authenticated handle
  - error: Token signing or store write failures (surfaced, not swallowed)
*/
func (manager *Manager) Attach(context context.Context, handle *Handle, identity sec.Identity) (*Handle, error) {
	currentTime := manager.now()

	token, err := manager.codec.Serialize(identity, TTL)
	if err != nil {
		return nil, err
	}

	id, err := sec.GenerateSecureToken(sessionIDLength)
	if err != nil {
		return nil, err
	}

	record := &Record{
		ID:            id,
		IdentityToken: token,
		CreatedAt:     currentTime,
		LastTouch:     currentTime,
		ExpiresAt:     currentTime.Add(TTL),
	}

	if err := manager.store.Save(context, record); err != nil {
		return nil, err
	}

	// Drop the superseded record. Its flash queue dies with it, which is
	// acceptable: login/register handlers push their flash after Attach.
	if handle.persisted {
		if err := manager.store.Delete(context, handle.record.ID); err != nil {
			manager.logger.Warn("session_attach_cleanup_failed",
				slog.String("old_session_id", handle.record.ID),
				slog.Any("error", err),
			)
		}
	}

	return &Handle{
		record:    record,
		identity:  &identity,
		manager:   manager,
		persisted: true,
		refreshed: true,
	}, nil
}

/*
Clear detaches the identity, transitioning Authenticated → Anonymous.

Description: The session record itself survives logout so the flash queue
can still deliver a "logged out" notice to the next response.

Parameters:
  - context: context.Context
  - handle: *Handle

Returns:
  - error: Store write failures (surfaced — logout is a mutation)
*/
func (manager *Manager) Clear(context context.Context, handle *Handle) error {
	if !handle.record.IsAuthenticated() && handle.identity == nil {
		return nil
	}

	handle.record.IdentityToken = ""
	handle.identity = nil

	if err := manager.store.Save(context, handle.record); err != nil {
		return err
	}

	return nil
}

// # Flash Channel

// PushFlash appends a one-shot message to the session's queue.
//
// Flash is best-effort by design: a failed push is logged and dropped
// rather than failing the mutation it decorates.
func (handle *Handle) PushFlash(context context.Context, kind FlashKind, message string) {
	if err := handle.manager.store.PushFlash(context, handle.record.ID, kind, message); err != nil {
		handle.manager.logger.Warn("flash_push_failed",
			slog.String("session_id", handle.record.ID),
			slog.Any("error", err),
		)
	}
}

// DrainFlash atomically empties the session's flash queues and returns
// their prior contents. Each message is delivered at most once.
func (handle *Handle) DrainFlash(context context.Context) (FlashMessages, error) {
	return handle.manager.store.DrainFlash(context, handle.record.ID)
}

// # Context Plumbing

// NewContext returns a context carrying the request-scoped session handle.
func NewContext(ctx context.Context, handle *Handle) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, handle)
}

// FromContext retrieves the session handle, or nil when the session
// middleware did not run.
func FromContext(ctx context.Context) *Handle {
	handle, ok := ctx.Value(ctxkey.KeySession).(*Handle)
	if !ok {
		return nil
	}
	return handle
}
