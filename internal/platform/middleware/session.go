// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/ctxutil"
	"github.com/taibuivan/wanderstay/internal/platform/respond"
	"github.com/taibuivan/wanderstay/internal/users/session"
)

// Session resolves the session cookie into a request-scoped handle and
// identity.
//
// # Flow
//  1. Read the session cookie; start a fresh anonymous session when absent.
//  2. Resolve the cookie into a session record (lazy expiry touch applies).
//  3. Inject the handle and the resolved [*sec.Identity] into the context.
//  4. Rewrite the cookie whenever the session was created or renewed.
//
// Store failures never abort the request here; they degrade the session to
// anonymous, and the mutation guard downstream still refuses write access
// without a concretely resolved identity.
func Session(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			var handle *session.Handle
			if id := session.ReadCookie(request); id != "" {
				handle = manager.Resolve(request.Context(), id)
			} else {
				handle = manager.Start(request.Context())
			}

			if handle.Refreshed() {
				session.WriteCookie(writer, handle)
			}

			ctx := session.NewContext(request.Context(), handle)
			ctx = ctxutil.WithIdentity(ctx, handle.Identity())

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that carry no resolved identity.
//
// # Usage
//
// Must be registered in the router AFTER [Session].
//
// # Flow
//  1. Check if a [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
