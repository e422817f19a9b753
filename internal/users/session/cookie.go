// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"
	"time"

	"github.com/taibuivan/wanderstay/internal/platform/constants"
)

// # Cookie Helpers

// WriteCookie sets the session cookie for the given handle.
//
// The cookie carries both an absolute Expires (7 days from issuance,
// rolling forward on touch) and a matching Max-Age, and is HttpOnly so
// scripts can never read the session ID.
func WriteCookie(writer http.ResponseWriter, handle *Handle) {
	expiresAt := handle.ExpiresAt()

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    handle.ID(),
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt) / time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie extracts the session ID from the request cookie.
// Returns an empty string when no session cookie is present.
func ReadCookie(request *http.Request) string {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}
