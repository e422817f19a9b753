// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/wanderstay/internal/platform/sec"
)

const testSecret = "a-test-secret-at-least-16-bytes"

/*
TestTokenCodec_RoundTrip tests that a serialized identity deserializes back intact.
*/
func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, err := sec.NewTokenCodec(testSecret, "wanderstay-test")
	require.NoError(t, err)

	identity := sec.Identity{UserID: "user-1", Username: "tai"}

	token, err := codec.Serialize(identity, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	restored, err := codec.Deserialize(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", restored.UserID)
	assert.Equal(t, "tai", restored.Username)
}

/*
TestTokenCodec_WrongSecret tests that tokens signed with another key are rejected.
*/
func TestTokenCodec_WrongSecret(t *testing.T) {
	signer, err := sec.NewTokenCodec(testSecret, "wanderstay-test")
	require.NoError(t, err)

	verifier, err := sec.NewTokenCodec("another-secret-16-bytes-long", "wanderstay-test")
	require.NoError(t, err)

	token, err := signer.Serialize(sec.Identity{UserID: "user-1", Username: "tai"}, time.Hour)
	require.NoError(t, err)

	restored, err := verifier.Deserialize(token)
	assert.Error(t, err)
	assert.Nil(t, restored)
}

/*
TestTokenCodec_Expired tests that an expired identity token no longer verifies.
*/
func TestTokenCodec_Expired(t *testing.T) {
	codec, err := sec.NewTokenCodec(testSecret, "wanderstay-test")
	require.NoError(t, err)

	token, err := codec.Serialize(sec.Identity{UserID: "user-1", Username: "tai"}, -time.Minute)
	require.NoError(t, err)

	restored, err := codec.Deserialize(token)
	assert.Error(t, err)
	assert.Nil(t, restored)
}

/*
TestNewTokenCodec_ShortSecret tests that weak signing secrets are refused at startup.
*/
func TestNewTokenCodec_ShortSecret(t *testing.T) {
	codec, err := sec.NewTokenCodec("too-short", "wanderstay-test")
	assert.Error(t, err)
	assert.Nil(t, codec)
}

/*
TestTokenCodec_Garbage tests that malformed token strings are rejected.
*/
func TestTokenCodec_Garbage(t *testing.T) {
	codec, err := sec.NewTokenCodec(testSecret, "wanderstay-test")
	require.NoError(t, err)

	for _, tokenString := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		restored, err := codec.Deserialize(tokenString)
		assert.Error(t, err)
		assert.Nil(t, restored)
	}
}
