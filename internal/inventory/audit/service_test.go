// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/sec"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

type fakeRepository struct {
	entries    []*audit.Entry
	err        error
	lastFilter audit.Filter
	lastLimit  int
	lastOffset int
}

func (repo *fakeRepository) Insert(_ context.Context, entry *audit.Entry) error {
	if repo.err != nil {
		return repo.err
	}
	entry.ID = int64(len(repo.entries) + 1)
	repo.entries = append(repo.entries, entry)
	return nil
}

func (repo *fakeRepository) List(_ context.Context, filter audit.Filter, limit, offset int) (repository.Page[audit.Entry], error) {
	repo.lastFilter, repo.lastLimit, repo.lastOffset = filter, limit, offset
	return repository.Page[audit.Entry]{Items: repo.entries, Total: len(repo.entries)}, nil
}

/*
TestService_Record verifies actor and client address come from the context.
*/
func TestService_Record(t *testing.T) {
	repo := &fakeRepository{}
	service := audit.NewService(repo, testutil.Logger())

	// 1. Authenticated request
	ctx := ctxutil.WithIdentity(context.Background(), &sec.Identity{ID: "42", SubjectID: 42, Role: sec.RoleManager})
	ctx = ctxutil.WithClientIP(ctx, "198.51.100.4")
	service.Record(ctx, audit.ActionCreate, audit.EntityProduct, 9, map[string]any{"sku": "SKU-1"})

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, int64(42), *entry.ActorID)
	require.NotNil(t, entry.EntityID)
	assert.Equal(t, int64(9), *entry.EntityID)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "198.51.100.4", *entry.IPAddress)
	assert.Equal(t, "SKU-1", entry.Details["sku"])

	// 2. Anonymous request without a target row
	service.Record(context.Background(), audit.ActionRegister, audit.EntityUser, 0, nil)

	require.Len(t, repo.entries, 2)
	assert.Nil(t, repo.entries[1].ActorID)
	assert.Nil(t, repo.entries[1].EntityID)
	assert.Nil(t, repo.entries[1].IPAddress)
}

/*
TestService_RecordSwallowsErrors verifies a storage failure never reaches the caller.
*/
func TestService_RecordSwallowsErrors(t *testing.T) {
	repo := &fakeRepository{err: errors.New("audit table unavailable")}
	service := audit.NewService(repo, testutil.Logger())

	assert.NotPanics(t, func() {
		service.Record(context.Background(), audit.ActionDelete, audit.EntityCategory, 1, nil)
	})
	assert.Empty(t, repo.entries)
}

/*
TestService_List verifies pagination parameters reach the repository.
*/
func TestService_List(t *testing.T) {
	repo := &fakeRepository{}
	service := audit.NewService(repo, testutil.Logger())

	filter := audit.Filter{EntityType: audit.EntityProduct, EntityID: 3}
	_, err := service.List(context.Background(), filter, pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, filter, repo.lastFilter)
	assert.Equal(t, 10, repo.lastLimit)
	assert.Equal(t, 20, repo.lastOffset)
}
