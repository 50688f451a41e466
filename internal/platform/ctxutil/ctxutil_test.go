// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steph2pro/millearnia/internal/platform/ctxutil"
	"github.com/steph2pro/millearnia/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// Empty context yields an empty ID, never panics.
	assert.Equal(t, "", ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestLogger_FallbackToDefault(t *testing.T) {
	ctx := context.Background()

	// No logger in context: must return the process-wide default.
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	custom := slog.Default().With(slog.String("scope", "test"))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Equal(t, custom, ctxutil.GetLogger(ctx))
}

func TestAuthUser_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// Anonymous context yields nil claims.
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	claims := &sec.AuthClaims{UserID: "user-1", Role: string(sec.RoleUser)}
	ctx = ctxutil.WithAuthUser(ctx, claims)

	got := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
}
