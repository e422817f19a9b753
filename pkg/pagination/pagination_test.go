// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/wanderstay/pkg/pagination"
)

/*
TestFromRequest tests query parsing and clamping of page/limit parameters.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", "/listings", 1, 20},
		{"explicit", "/listings?page=3&limit=50", 3, 50},
		{"zero_page_clamped", "/listings?page=0", 1, 20},
		{"negative_limit_clamped", "/listings?limit=-5", 1, 20},
		{"excessive_limit_clamped", "/listings?limit=5000", 1, 20},
		{"garbage_ignored", "/listings?page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.target, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.expectedPage, params.Page)
			assert.Equal(t, tt.expectedLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset tests the page → SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

/*
TestNewMeta tests total page derivation, including partial last pages.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 45)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	// Empty result set
	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)

	// Zero limit must not divide by zero
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 45).TotalPages)
}
