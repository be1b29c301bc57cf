package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-order-console/internal/model"
	"go-order-console/pkg/apierror"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()

	var body model.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.False(t, body.Success)
	require.NotNil(t, body.Error)
	return body
}

func TestWriteError_SentinelMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"order not found", model.ErrOrderNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"trash item not found", model.ErrTrashItemNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"no ids", model.ErrNoIDsProvided, http.StatusBadRequest, "BAD_REQUEST"},
		{"invalid format", model.ErrInvalidExportFormat, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown field", model.ErrUnknownExportField, http.StatusBadRequest, "BAD_REQUEST"},
		{"scan blocked", model.ErrScanBlocked, http.StatusConflict, "CONFLICT"},
		{"backend unavailable", model.ErrBackendUnavailable, http.StatusBadGateway, "BACKEND_UNAVAILABLE"},
		{"backend rejected", model.ErrBackendRejected, http.StatusBadGateway, "BACKEND_REJECTED"},
		{"unclassified", errors.New("mystery"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestWriteError_WrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("list orders: %w: connection refused", model.ErrBackendUnavailable))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "BACKEND_UNAVAILABLE", body.Error.Code)
	assert.Contains(t, body.Error.Details, "connection refused")
}

func TestWriteError_APIErrorPassthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apierror.BadRequest("id must be a positive integer", "abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	assert.Equal(t, "id must be a positive integer", body.Error.Message)
	assert.Equal(t, "abc", body.Error.Details)
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusCreated, map[string]int{"id": 3}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body model.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
}
