// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movement_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/inventory/movement"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/middleware"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/sec"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
	"github.com/taibuivan/stockroom/pkg/pagination"
	"github.com/taibuivan/stockroom/pkg/pointer"
)

// # Fakes

// fakeRepository keeps stock in memory. InTx works on a copy that is only
// kept when fn succeeds, mirroring commit and rollback.
type fakeRepository struct {
	mu         sync.Mutex
	stock      map[int64]movement.Stock
	ledger     []*movement.Movement
	lastFilter movement.Filter
}

func newFakeRepository(stock ...movement.Stock) *fakeRepository {
	repo := &fakeRepository{stock: map[int64]movement.Stock{}}
	for _, item := range stock {
		repo.stock[item.ProductID] = item
	}
	return repo
}

func (repo *fakeRepository) FindByReference(_ context.Context, ref string) (*movement.Movement, error) {
	for _, item := range repo.ledger {
		if item.Reference == ref {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Movement")
}

func (repo *fakeRepository) List(_ context.Context, filter movement.Filter, _, _ int) (repository.Page[movement.Movement], error) {
	repo.lastFilter = filter
	return repository.Page[movement.Movement]{Items: repo.ledger, Total: len(repo.ledger)}, nil
}

func (repo *fakeRepository) InTx(ctx context.Context, fn func(ledger movement.Ledger) error) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	tx := &fakeLedger{stock: map[int64]movement.Stock{}}
	for id, item := range repo.stock {
		tx.stock[id] = item
	}
	if err := fn(tx); err != nil {
		return err
	}

	repo.stock = tx.stock
	for _, item := range tx.inserted {
		item.ID = int64(len(repo.ledger) + 1)
		repo.ledger = append(repo.ledger, item)
	}
	return nil
}

func (repo *fakeRepository) quantity(productID int64) int {
	return repo.stock[productID].Quantity
}

type fakeLedger struct {
	stock    map[int64]movement.Stock
	inserted []*movement.Movement
}

func (ledger *fakeLedger) LockStock(_ context.Context, productID int64) (*movement.Stock, error) {
	item, ok := ledger.stock[productID]
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	return &item, nil
}

func (ledger *fakeLedger) UpdateStock(_ context.Context, productID int64, quantity int, locationID *int64) error {
	item := ledger.stock[productID]
	item.Quantity = quantity
	item.LocationID = locationID
	ledger.stock[productID] = item
	return nil
}

func (ledger *fakeLedger) Insert(_ context.Context, item *movement.Movement) error {
	ledger.inserted = append(ledger.inserted, item)
	return nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (recorder *fakeRecorder) Record(_ context.Context, action, _ string, _ int64, _ map[string]any) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.actions = append(recorder.actions, action)
}

func asClerk() context.Context {
	return ctxutil.WithIdentity(context.Background(), &sec.Identity{ID: "9", SubjectID: 9, Role: sec.RoleUser})
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an application error, got %v", err)
	assert.Equal(t, status, appError.HTTPStatus)
}

// # Tests

/*
TestService_Record walks one product through every movement type.
*/
func TestService_Record(t *testing.T) {
	shelf := int64(1)
	repo := newFakeRepository(movement.Stock{ProductID: 10, LocationID: &shelf, IsActive: true})
	recorder := &fakeRecorder{}
	service := movement.NewService(repo, recorder, testutil.Logger())
	ctx := asClerk()

	// 1. Receive
	in, err := service.Record(ctx, movement.Input{ProductID: 10, Type: "in", Quantity: 20})
	require.NoError(t, err)
	assert.Equal(t, movement.TypeIn, in.Type)
	assert.Equal(t, 0, in.QuantityBefore)
	assert.Equal(t, 20, in.QuantityAfter)
	assert.Equal(t, &shelf, in.ToLocationID)
	assert.Equal(t, int64(9), in.CreatedBy)
	assert.True(t, strings.HasPrefix(in.Reference, "MV-"))

	// 2. Issue
	out, err := service.Record(ctx, movement.Input{ProductID: 10, Type: movement.TypeOut, Quantity: 5, Note: pointer.To("  order 118 ")})
	require.NoError(t, err)
	assert.Equal(t, 15, out.QuantityAfter)
	assert.Equal(t, "order 118", *out.Note)

	// 3. Stock-take correction
	adjustment, err := service.Record(ctx, movement.Input{ProductID: 10, Type: movement.TypeAdjustment, Quantity: -3})
	require.NoError(t, err)
	assert.Equal(t, 12, adjustment.QuantityAfter)

	// 4. Transfer moves everything
	dock := int64(2)
	moved, err := service.Record(ctx, movement.Input{ProductID: 10, Type: movement.TypeTransfer, ToLocationID: &dock})
	require.NoError(t, err)
	assert.Equal(t, 12, moved.Quantity)
	assert.Equal(t, 12, moved.QuantityAfter)
	assert.Equal(t, &shelf, moved.FromLocationID)
	assert.Equal(t, &dock, repo.stock[10].LocationID)

	assert.Equal(t, 12, repo.quantity(10))
	assert.Len(t, repo.ledger, 4)
	assert.NotEqual(t, in.Reference, out.Reference)
	assert.Equal(t, []string{"MOVEMENT", "MOVEMENT", "MOVEMENT", "MOVEMENT"}, recorder.actions)
}

/*
TestService_Record_Rejections verifies failed movements leave stock and ledger untouched.
*/
func TestService_Record_Rejections(t *testing.T) {
	shelf, dock := int64(1), int64(2)

	tests := []struct {
		name   string
		stock  movement.Stock
		input  movement.Input
		status int
	}{
		{"overdraw", movement.Stock{Quantity: 4, IsActive: true},
			movement.Input{Type: movement.TypeOut, Quantity: 5}, http.StatusUnprocessableEntity},
		{"negative adjustment", movement.Stock{Quantity: 4, IsActive: true},
			movement.Input{Type: movement.TypeAdjustment, Quantity: -5}, http.StatusUnprocessableEntity},
		{"inactive product", movement.Stock{Quantity: 4},
			movement.Input{Type: movement.TypeIn, Quantity: 1}, http.StatusUnprocessableEntity},
		{"partial transfer", movement.Stock{Quantity: 4, LocationID: &shelf, IsActive: true},
			movement.Input{Type: movement.TypeTransfer, Quantity: 2, ToLocationID: &dock}, http.StatusUnprocessableEntity},
		{"transfer to same location", movement.Stock{Quantity: 4, LocationID: &shelf, IsActive: true},
			movement.Input{Type: movement.TypeTransfer, ToLocationID: &shelf}, http.StatusUnprocessableEntity},
		{"transfer of empty product", movement.Stock{IsActive: true},
			movement.Input{Type: movement.TypeTransfer, ToLocationID: &dock}, http.StatusUnprocessableEntity},
		{"zero quantity", movement.Stock{IsActive: true},
			movement.Input{Type: movement.TypeIn}, http.StatusBadRequest},
		{"negative receipt", movement.Stock{IsActive: true},
			movement.Input{Type: movement.TypeIn, Quantity: -1}, http.StatusBadRequest},
		{"zero adjustment", movement.Stock{IsActive: true},
			movement.Input{Type: movement.TypeAdjustment}, http.StatusBadRequest},
		{"transfer without destination", movement.Stock{Quantity: 4, IsActive: true},
			movement.Input{Type: movement.TypeTransfer}, http.StatusBadRequest},
		{"destination on receipt", movement.Stock{IsActive: true},
			movement.Input{Type: movement.TypeIn, Quantity: 1, ToLocationID: &dock}, http.StatusBadRequest},
		{"unknown type", movement.Stock{IsActive: true},
			movement.Input{Type: "RETURN", Quantity: 1}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.stock.ProductID = 10
			tt.input.ProductID = 10
			repo := newFakeRepository(tt.stock)
			service := movement.NewService(repo, &fakeRecorder{}, testutil.Logger())

			_, err := service.Record(asClerk(), tt.input)
			assertStatus(t, err, tt.status)

			assert.Equal(t, tt.stock.Quantity, repo.quantity(10))
			assert.Empty(t, repo.ledger)
		})
	}
}

/*
TestService_Record_Preconditions verifies the caller and product must exist.
*/
func TestService_Record_Preconditions(t *testing.T) {
	service := movement.NewService(newFakeRepository(), &fakeRecorder{}, testutil.Logger())
	input := movement.Input{ProductID: 77, Type: movement.TypeIn, Quantity: 1}

	_, err := service.Record(context.Background(), input)
	assertStatus(t, err, http.StatusUnauthorized)

	_, err = service.Record(asClerk(), input)
	assertStatus(t, err, http.StatusNotFound)
}

/*
TestService_Record_Concurrent verifies concurrent issues never overdraw stock.
*/
func TestService_Record_Concurrent(t *testing.T) {
	repo := newFakeRepository(movement.Stock{ProductID: 10, Quantity: 10, IsActive: true})
	service := movement.NewService(repo, &fakeRecorder{}, testutil.Logger())

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.Record(asClerk(), movement.Input{ProductID: 10, Type: movement.TypeOut, Quantity: 1}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Zero(t, repo.quantity(10))
}

/*
TestHandler_Routes verifies guards, filters and the type check on listing.
*/
func TestHandler_Routes(t *testing.T) {
	repo := newFakeRepository(movement.Stock{ProductID: 10, IsActive: true})
	service := movement.NewService(repo, &fakeRecorder{}, testutil.Logger())
	router := movement.NewHandler(service, middleware.NewGuards(nil)).Routes()

	serve := func(role sec.UserRole, method, target, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, target, strings.NewReader(body))
		if role != "" {
			identity := &sec.Identity{ID: "3", SubjectID: 3, Role: role}
			request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	body := `{"product_id":10,"type":"IN","quantity":3}`

	// 1. Guards
	assert.Equal(t, http.StatusUnauthorized, serve("", http.MethodPost, "/", body).Code)
	assert.Equal(t, http.StatusForbidden, serve(sec.RoleViewer, http.MethodPost, "/", body).Code)

	response := serve(sec.RoleUser, http.MethodPost, "/", body)
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())
	assert.Contains(t, response.Body.String(), `"quantity_after":3`)

	// 2. Lookup by reference
	reference := repo.ledger[0].Reference
	assert.Equal(t, http.StatusOK, serve(sec.RoleViewer, http.MethodGet, "/"+reference, "").Code)
	assert.Equal(t, http.StatusOK, serve(sec.RoleViewer, http.MethodGet, "/"+strings.ToLower(reference), "").Code)
	assert.Equal(t, http.StatusNotFound, serve(sec.RoleViewer, http.MethodGet, "/MV-NOPE", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(sec.RoleViewer, http.MethodGet, "/XX-"+strings.TrimPrefix(reference, "MV-"), "").Code)

	// 3. Filters
	assert.Equal(t, http.StatusOK, serve(sec.RoleAuditor, http.MethodGet, "/?product_id=10&type=out", "").Code)
	assert.Equal(t, movement.Filter{ProductID: 10, Type: movement.TypeOut}, repo.lastFilter)
	assert.Equal(t, http.StatusBadRequest, serve(sec.RoleAuditor, http.MethodGet, "/?type=lost", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(sec.RoleAuditor, http.MethodGet, "/?product_id=x", "").Code)
}

func TestService_List(t *testing.T) {
	repo := newFakeRepository()
	service := movement.NewService(repo, &fakeRecorder{}, testutil.Logger())

	_, err := service.List(context.Background(), movement.Filter{Type: " adjustment "}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, movement.TypeAdjustment, repo.lastFilter.Type)
}
