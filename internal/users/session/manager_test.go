// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// The tests live inside the package so they can pin the manager's clock.
package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
)

// fakeStore is an in-memory Store double.
type fakeStore struct {
	records map[string]*Record
	flash   map[string]*FlashMessages

	saveCount int
	getErr    error
	saveErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]*Record),
		flash:   make(map[string]*FlashMessages),
	}
}

func (store *fakeStore) Get(_ context.Context, id string) (*Record, error) {
	if store.getErr != nil {
		return nil, store.getErr
	}
	record, ok := store.records[id]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	copied := *record
	return &copied, nil
}

func (store *fakeStore) Save(_ context.Context, record *Record) error {
	if store.saveErr != nil {
		return store.saveErr
	}
	store.saveCount++
	copied := *record
	store.records[record.ID] = &copied
	return nil
}

func (store *fakeStore) Delete(_ context.Context, id string) error {
	delete(store.records, id)
	delete(store.flash, id)
	return nil
}

func (store *fakeStore) PushFlash(_ context.Context, id string, kind FlashKind, message string) error {
	queue, ok := store.flash[id]
	if !ok {
		queue = &FlashMessages{}
		store.flash[id] = queue
	}
	if kind == FlashError {
		queue.Error = append(queue.Error, message)
	} else {
		queue.Success = append(queue.Success, message)
	}
	return nil
}

func (store *fakeStore) DrainFlash(_ context.Context, id string) (FlashMessages, error) {
	queue, ok := store.flash[id]
	if !ok {
		return FlashMessages{}, nil
	}
	delete(store.flash, id)
	return *queue, nil
}

// newTestManager wires a manager around the fake store with a fixed clock.
func newTestManager(t *testing.T, store Store, touchAfter time.Duration) (*Manager, *time.Time) {
	t.Helper()

	codec, err := sec.NewTokenCodec("a-test-secret-at-least-16-bytes", "wanderstay-test")
	require.NoError(t, err)

	clock := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	manager := NewManager(store, codec, touchAfter, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	manager.now = func() time.Time { return clock }

	return manager, &clock
}

/*
TestManager_StartAndResolve tests fresh session issuance and round-trip resolution.
*/
func TestManager_StartAndResolve(t *testing.T) {
	store := newFakeStore()
	manager, _ := newTestManager(t, store, time.Minute)
	ctx := context.Background()

	started := manager.Start(ctx)
	require.NotNil(t, started)
	assert.NotEmpty(t, started.ID())
	assert.True(t, started.Refreshed())
	assert.Nil(t, started.Identity())

	resolved := manager.Resolve(ctx, started.ID())
	assert.Equal(t, started.ID(), resolved.ID())
	assert.Nil(t, resolved.Identity())
}

/*
TestManager_Resolve_UnknownID tests that a forged or evicted cookie rolls over
into a brand-new session.
*/
func TestManager_Resolve_UnknownID(t *testing.T) {
	store := newFakeStore()
	manager, _ := newTestManager(t, store, time.Minute)

	handle := manager.Resolve(context.Background(), "no-such-session")
	require.NotNil(t, handle)
	assert.NotEqual(t, "no-such-session", handle.ID())
	assert.True(t, handle.Refreshed())
	assert.Nil(t, handle.Identity())
}

/*
TestManager_Resolve_StoreDown tests the fail-safe degradation path: the request
proceeds anonymously and nothing is persisted.
*/
func TestManager_Resolve_StoreDown(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	manager, _ := newTestManager(t, store, time.Minute)

	handle := manager.Resolve(context.Background(), "existing-cookie")
	require.NotNil(t, handle)
	assert.Equal(t, "existing-cookie", handle.ID())
	assert.Nil(t, handle.Identity())
	assert.False(t, handle.Refreshed())
	assert.Zero(t, store.saveCount)
}

/*
TestManager_TouchBounding tests that expiry renewal is only persisted after the
configured dwell time, bounding write amplification.
*/
func TestManager_TouchBounding(t *testing.T) {
	store := newFakeStore()
	manager, clock := newTestManager(t, store, 10*time.Minute)
	ctx := context.Background()

	handle := manager.Start(ctx)
	require.Equal(t, 1, store.saveCount)
	originalExpiry := handle.ExpiresAt()

	// Within the dwell window: no write, no cookie refresh
	*clock = clock.Add(5 * time.Minute)
	inside := manager.Resolve(ctx, handle.ID())
	assert.Equal(t, 1, store.saveCount)
	assert.False(t, inside.Refreshed())

	// Past the dwell window: one write, expiry slides forward
	*clock = clock.Add(6 * time.Minute)
	outside := manager.Resolve(ctx, handle.ID())
	assert.Equal(t, 2, store.saveCount)
	assert.True(t, outside.Refreshed())
	assert.True(t, outside.ExpiresAt().After(originalExpiry))
}

/*
TestManager_Resolve_Expired tests that a session past its deadline is evicted
and replaced by a fresh anonymous one.
*/
func TestManager_Resolve_Expired(t *testing.T) {
	store := newFakeStore()
	manager, clock := newTestManager(t, store, time.Minute)
	ctx := context.Background()

	handle := manager.Start(ctx)
	oldID := handle.ID()

	*clock = clock.Add(TTL + time.Second)
	replacement := manager.Resolve(ctx, oldID)

	assert.NotEqual(t, oldID, replacement.ID())
	assert.Nil(t, replacement.Identity())

	_, exists := store.records[oldID]
	assert.False(t, exists, "expired record should be deleted")
}

/*
TestManager_Attach tests the Anonymous → Authenticated transition, including
session ID regeneration (fixation defense).
*/
func TestManager_Attach(t *testing.T) {
	store := newFakeStore()
	manager, _ := newTestManager(t, store, time.Minute)
	ctx := context.Background()

	anonymous := manager.Start(ctx)
	oldID := anonymous.ID()

	authenticated, err := manager.Attach(ctx, anonymous, sec.Identity{UserID: "user-1", Username: "tai"})
	require.NoError(t, err)

	// A pre-login cookie value must never name an authenticated session
	assert.NotEqual(t, oldID, authenticated.ID())
	assert.True(t, authenticated.Refreshed())

	require.NotNil(t, authenticated.Identity())
	assert.Equal(t, "user-1", authenticated.Identity().UserID)

	// The superseded record is gone, the new one resolves with identity intact
	_, exists := store.records[oldID]
	assert.False(t, exists)

	resolved := manager.Resolve(ctx, authenticated.ID())
	require.NotNil(t, resolved.Identity())
	assert.Equal(t, "tai", resolved.Identity().Username)
}

/*
TestManager_Attach_SaveFailure tests that login surfaces store write failures
instead of handing back a session the store never accepted.
*/
func TestManager_Attach_SaveFailure(t *testing.T) {
	store := newFakeStore()
	manager, _ := newTestManager(t, store, time.Minute)
	ctx := context.Background()

	anonymous := manager.Start(ctx)

	store.saveErr = errors.New("write failed")
	authenticated, err := manager.Attach(ctx, anonymous, sec.Identity{UserID: "user-1", Username: "tai"})
	assert.Error(t, err)
	assert.Nil(t, authenticated)
}

/*
TestManager_Clear tests logout: the identity detaches but the record survives
so queued flash messages can still be delivered.
*/
func TestManager_Clear(t *testing.T) {
	store := newFakeStore()
	manager, _ := newTestManager(t, store, time.Minute)
	ctx := context.Background()

	handle, err := manager.Attach(ctx, manager.Start(ctx), sec.Identity{UserID: "user-1", Username: "tai"})
	require.NoError(t, err)

	require.NoError(t, manager.Clear(ctx, handle))
	assert.Nil(t, handle.Identity())

	// The record still exists, now anonymous
	stored, exists := store.records[handle.ID()]
	require.True(t, exists)
	assert.False(t, stored.IsAuthenticated())

	// Clearing an already-anonymous session is a no-op
	assert.NoError(t, manager.Clear(ctx, handle))
}

/*
TestHandle_Flash tests the one-shot flash channel: each message is delivered
exactly once.
*/
func TestHandle_Flash(t *testing.T) {
	store := newFakeStore()
	manager, _ := newTestManager(t, store, time.Minute)
	ctx := context.Background()

	handle := manager.Start(ctx)
	handle.PushFlash(ctx, FlashSuccess, "Welcome to Wanderstay!")
	handle.PushFlash(ctx, FlashError, "Something went wrong")

	drained, err := handle.DrainFlash(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Welcome to Wanderstay!"}, drained.Success)
	assert.Equal(t, []string{"Something went wrong"}, drained.Error)
	assert.False(t, drained.IsEmpty())

	// Second drain finds nothing
	again, err := handle.DrainFlash(ctx)
	require.NoError(t, err)
	assert.True(t, again.IsEmpty())
}
