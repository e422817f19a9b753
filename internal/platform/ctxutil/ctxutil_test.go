// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/wanderstay/internal/platform/ctxutil"
	"github.com/taibuivan/wanderstay/internal/platform/sec"
)

/*
TestContext_RequestID tests storing and retrieving the request ID.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	// Empty context returns empty string
	assert.Equal(t, "", ctxutil.GetRequestID(ctx))

	// Stored value round-trips
	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger tests the logger fallback behavior.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()

	// Empty context falls back to the global default
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// Stored logger is returned as-is
	custom := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Equal(t, custom, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity tests actor resolution from the context.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()

	// Anonymous request: no identity attached
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	identity := &sec.Identity{UserID: "user-1", Username: "tai"}
	ctx = ctxutil.WithIdentity(ctx, identity)

	resolved := ctxutil.GetIdentity(ctx)
	require.NotNil(t, resolved)
	assert.Equal(t, "user-1", resolved.UserID)
	assert.Equal(t, "tai", resolved.Username)
}
