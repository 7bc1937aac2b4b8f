// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination turns page/limit query parameters into SQL
// LIMIT/OFFSET values and builds the meta block of list responses.
package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit caps a single page. Larger requests are cut down to it.
	MaxLimit = 100
	// DefaultPage is the first page. Pages are 1-indexed.
	DefaultPage = 1
)

// Params holds the page and limit of a list request.
type Params struct {
	Page  int
	Limit int
}

// New returns params clamped into the accepted range.
func New(page, limit int) Params {
	return Params{Page: page, Limit: limit}.Clamp()
}

// Clamp replaces an unusable page with [DefaultPage], a missing limit with
// [DefaultLimit] and caps the limit at [MaxLimit].
func (p Params) Clamp() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the SQL OFFSET for the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block of list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta builds the meta block for one page out of total rows.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// FromRequest reads "page" and "limit" from the query string. Values that
// do not parse fall back to the defaults; the rest goes through [Params.Clamp].
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()
	return New(atoi(query.Get("page")), atoi(query.Get("limit")))
}

func atoi(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
