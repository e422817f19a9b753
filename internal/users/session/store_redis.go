// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/wanderstay/internal/platform/apperr"
	"github.com/taibuivan/wanderstay/internal/platform/constants"
)

// RedisStore implements [Store] using Redis.
//
// Session records are JSON values with a TTL; flash slots are plain lists
// keyed alongside the record. Keys are naturally partitioned per session ID,
// so there is no cross-session contention.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed session [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

/*
Get retrieves and unmarshals a session record.

Description: Returns apperr.NotFound if the record is absent or already evicted.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Record: Hydrated session record
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisStore) Get(context context.Context, id string) (*Record, error) {
	key := constants.RedisPrefixSession + id

	payload, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, apperr.OperationFailed(fmt.Errorf("redis_session_get_failed: %w", err))
	}

	record := &Record{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	record.ID = id
	return record, nil
}

/*
Save marshals and writes a session record with its remaining TTL.

Description: The Redis TTL mirrors the record's rolling expiry, so natural
session expiry is handled by store eviction with no background timer.

Parameters:
  - context: context.Context
  - record: *Record

Returns:
  - error: Persistence failures
*/
func (store *RedisStore) Save(context context.Context, record *Record) error {
	key := constants.RedisPrefixSession + record.ID

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	timeToLive := time.Until(record.ExpiresAt)
	if timeToLive <= 0 {
		// Already past expiry; persisting would resurrect a dead session.
		return store.Delete(context, record.ID)
	}

	if err := store.client.Set(context, key, payload, timeToLive).Err(); err != nil {
		return apperr.OperationFailed(fmt.Errorf("redis_session_set_failed: %w", err))
	}

	return nil
}

/*
Delete removes the session record together with both flash slots.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Delete(context context.Context, id string) error {
	keys := []string{
		constants.RedisPrefixSession + id,
		constants.RedisPrefixFlashSuccess + id,
		constants.RedisPrefixFlashError + id,
	}

	if err := store.client.Del(context, keys...).Err(); err != nil {
		return apperr.OperationFailed(fmt.Errorf("redis_session_delete_failed: %w", err))
	}

	return nil
}

/*
PushFlash appends a message to the session's success or error slot.

Description: Flash lists expire with the session lifetime so orphaned
queues cannot accumulate.

Parameters:
  - context: context.Context
  - id: string
  - kind: FlashKind
  - message: string

Returns:
  - error: Persistence failures
*/
func (store *RedisStore) PushFlash(context context.Context, id string, kind FlashKind, message string) error {
	key := flashKey(id, kind)

	pipe := store.client.TxPipeline()
	pipe.RPush(context, key, message)
	pipe.Expire(context, key, TTL)

	if _, err := pipe.Exec(context); err != nil {
		return apperr.OperationFailed(fmt.Errorf("redis_flash_push_failed: %w", err))
	}

	return nil
}

/*
DrainFlash atomically reads and clears both flash slots.

Description: LRANGE and DEL execute inside a single MULTI/EXEC block, so two
requests racing to drain the same session cannot both observe a message —
the last reader of the committed state wins and the loser sees empty slots.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - FlashMessages: Prior contents of both slots
  - error: Store failures
*/
func (store *RedisStore) DrainFlash(context context.Context, id string) (FlashMessages, error) {
	successKey := flashKey(id, FlashSuccess)
	errorKey := flashKey(id, FlashError)

	pipe := store.client.TxPipeline()
	successCmd := pipe.LRange(context, successKey, 0, -1)
	errorCmd := pipe.LRange(context, errorKey, 0, -1)
	pipe.Del(context, successKey, errorKey)

	if _, err := pipe.Exec(context); err != nil {
		return FlashMessages{}, apperr.OperationFailed(fmt.Errorf("redis_flash_drain_failed: %w", err))
	}

	return FlashMessages{
		Success: successCmd.Val(),
		Error:   errorCmd.Val(),
	}, nil
}

// flashKey maps a session ID and slot kind to its Redis key.
func flashKey(id string, kind FlashKind) string {
	if kind == FlashError {
		return constants.RedisPrefixFlashError + id
	}
	return constants.RedisPrefixFlashSuccess + id
}
