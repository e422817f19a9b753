// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import "context"

// # Session Data Access

// Store defines the data access contract for session records and their
// per-session flash queues.
type Store interface {

	/*
		Get returns the session record with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Record: Hydrated session record
		  - error: apperr.NotFound when absent or evicted, store failures otherwise
	*/
	Get(context context.Context, id string) (*Record, error)

	/*
		Save writes the record under a TTL derived from its ExpiresAt.

		Parameters:
		  - context: context.Context
		  - record: *Record

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, record *Record) error

	/*
		Delete removes the session record and its flash queues.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		PushFlash appends a message to one of the session's flash slots.

		Parameters:
		  - context: context.Context
		  - id: string (session ID)
		  - kind: FlashKind
		  - message: string

		Returns:
		  - error: Persistence failures
	*/
	PushFlash(context context.Context, id string, kind FlashKind, message string) error

	/*
		DrainFlash atomically empties both flash slots and returns their
		prior contents. Two concurrent drains on the same session never
		both observe the same message.

		Parameters:
		  - context: context.Context
		  - id: string (session ID)

		Returns:
		  - FlashMessages: Prior queue contents, possibly empty
		  - error: Store failures
	*/
	DrainFlash(context context.Context, id string) (FlashMessages, error)
}
