// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stockroom/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"?page=3&limit=50", pagination.Params{Page: 3, Limit: 50}},
		{"?page=-2&limit=0", pagination.Params{Page: 1, Limit: 20}},
		{"?page=abc&limit=xyz", pagination.Params{Page: 1, Limit: 20}},
		{"?limit=5000", pagination.Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/items"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.New(1, 10).Offset())
	assert.Equal(t, 20, pagination.New(3, 10).Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	meta = pagination.NewMeta(3, 10, 25)
	assert.False(t, meta.HasNext)

	assert.Zero(t, pagination.NewMeta(1, 10, 0).TotalPages)
}
