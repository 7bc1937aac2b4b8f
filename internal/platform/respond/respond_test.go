// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

/*
TestError verifies application errors keep their status and internal errors
are hidden behind a generic message.
*/
func TestError(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithRequestID(request.Context(), "req-42"))

	// 1. Application error with details
	recorder := httptest.NewRecorder()
	respond.Error(recorder, request, apperr.ValidationError("Invalid input", apperr.FieldError{Field: "sku", Message: "This field is required"}))

	var body respond.ErrorEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "req-42", body.RequestID)
	require.Len(t, body.Details, 1)

	// 2. Plain error
	recorder = httptest.NewRecorder()
	respond.Error(recorder, request, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection reset")
	assert.Contains(t, recorder.Body.String(), `"code":"INTERNAL_ERROR"`)
}

func TestPaginated_EmptyList(t *testing.T) {
	recorder := httptest.NewRecorder()
	var items []*struct{ ID int }

	respond.Paginated(recorder, items, pagination.NewMeta(1, 20, 0))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"data":[]`)
}
