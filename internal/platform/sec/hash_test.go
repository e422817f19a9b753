// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/wanderstay/internal/platform/sec"
)

/*
TestPasswordHashing tests the bcrypt hash and verify pair.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The digest never contains the plain text
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestBurnPasswordCheck tests that the timing-equalization comparison never succeeds.
*/
func TestBurnPasswordCheck(t *testing.T) {
	assert.False(t, sec.BurnPasswordCheck("anything"))
	assert.False(t, sec.BurnPasswordCheck(""))
}
