// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/respond"
)

// Handler exposes the session-scoped HTTP surface: the flash channel.
type Handler struct{}

// NewHandler constructs a new session [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a [chi.Router] with session routes.
//
// # Endpoints
//   - GET /flash : Drains and returns the pending flash messages.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/flash", handler.drainFlash)
	return router
}

/*
drainFlash returns the pending one-shot messages for the caller's session.

GET /api/v1/session/flash

Description: Atomically empties both flash slots. Messages are delivered
at most once: a second immediate call returns empty slots. When two
requests race, only one of them receives each message.

Response:
  - 200: FlashMessages: {"success": [...], "error": [...]} (slots omitted when empty)
  - 503: OperationFailed: Session store unreachable
*/
func (handler *Handler) drainFlash(writer http.ResponseWriter, request *http.Request) {
	handle := FromContext(request.Context())
	if handle == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	messages, err := handle.DrainFlash(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messages)
}
